package services

import (
	"context"

	"github.com/atakan/campusadmin/internal/app/models"
)

// StudentStore is the persistence surface the student service depends on
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	StudentIDExists(ctx context.Context, studentID string, excludeID int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, student *models.Student, addCourseIDs, removeCourseIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// CourseStore is the persistence surface the course service depends on
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error)
	CodeExists(ctx context.Context, courseCode string, excludeID int64) (bool, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentStore maintains the student/course pairing atomically
type EnrollmentStore interface {
	Enroll(ctx context.Context, studentID, courseID int64) error
	Unenroll(ctx context.Context, studentID, courseID int64) error
	AddStudentToCourses(ctx context.Context, studentID int64, courseIDs []int64) error
	CourseIDsForStudent(ctx context.Context, studentID int64) ([]int64, error)
}

// UserStore is the persistence surface the auth service depends on
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
