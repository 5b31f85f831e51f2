package services

import (
	"context"
	"strings"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/app/models/dto"
	"github.com/atakan/campusadmin/internal/pkg/apperrors"
	"github.com/atakan/campusadmin/internal/pkg/validation"
)

// StudentService handles student-related operations
type StudentService interface {
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	EnrollStudent(ctx context.Context, studentID, courseID int64) (*models.Student, error)
	UnenrollStudent(ctx context.Context, studentID, courseID int64) (*models.Student, error)
}

type studentService struct {
	students    StudentStore
	enrollments EnrollmentStore
}

// NewStudentService creates a new student service instance
func NewStudentService(students StudentStore, enrollments EnrollmentStore) StudentService {
	return &studentService{
		students:    students,
		enrollments: enrollments,
	}
}

// ListStudents retrieves students matching the filter
func (s *studentService) ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	return s.students.List(ctx, filter)
}

// GetStudentByID retrieves a single student with enrolled courses populated
func (s *studentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// CreateStudent creates a student after uniqueness checks and set-adds any
// initial enrollments. Course ids that don't resolve are skipped silently
// and capacity is not enforced on this path; the enroll endpoint is the
// strict one.
func (s *studentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		StudentID:   strings.TrimSpace(req.StudentID),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		DateOfBirth: req.DateOfBirth,
		Class:       strings.TrimSpace(req.Class),
		Section:     req.Section,
		Address:     req.Address,
		Status:      models.StudentStatus(req.Status),
	}
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}

	if err := validation.Struct(student); err != nil {
		return nil, err
	}

	exists, err := s.students.StudentIDExists(ctx, student.StudentID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrStudentIDAlreadyExists
	}

	exists, err = s.students.EmailExists(ctx, student.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	if err := s.enrollments.AddStudentToCourses(ctx, student.ID, req.EnrolledCourses); err != nil {
		return nil, err
	}

	return s.students.GetByID(ctx, student.ID)
}

// UpdateStudent merges the partial update onto the stored record,
// re-validates the result and applies the enrollment diff.
func (s *studentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mergeStudent(student, req)

	if err := validation.Struct(student); err != nil {
		return nil, err
	}

	exists, err := s.students.StudentIDExists(ctx, student.StudentID, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrStudentIDAlreadyExists
	}

	exists, err = s.students.EmailExists(ctx, student.Email, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	var addIDs, removeIDs []int64
	if req.EnrolledCourses != nil {
		current, err := s.enrollments.CourseIDsForStudent(ctx, id)
		if err != nil {
			return nil, err
		}
		addIDs, removeIDs = diffCourseIDs(current, *req.EnrolledCourses)
	}

	if err := s.students.Update(ctx, student, addIDs, removeIDs); err != nil {
		return nil, err
	}

	return s.students.GetByID(ctx, id)
}

// DeleteStudent removes the student and purges all enrollment pairings
func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.students.Delete(ctx, id)
}

// EnrollStudent adds the student to a course and returns the updated student
func (s *studentService) EnrollStudent(ctx context.Context, studentID, courseID int64) (*models.Student, error) {
	if err := s.enrollments.Enroll(ctx, studentID, courseID); err != nil {
		return nil, err
	}
	return s.students.GetByID(ctx, studentID)
}

// UnenrollStudent removes the student from a course and returns the updated
// student. Removing an absent pairing is a no-op.
func (s *studentService) UnenrollStudent(ctx context.Context, studentID, courseID int64) (*models.Student, error) {
	if err := s.enrollments.Unenroll(ctx, studentID, courseID); err != nil {
		return nil, err
	}
	return s.students.GetByID(ctx, studentID)
}

// mergeStudent applies non-nil request fields onto the stored record
func mergeStudent(student *models.Student, req *dto.UpdateStudentRequest) {
	if req.StudentID != nil {
		student.StudentID = strings.TrimSpace(*req.StudentID)
	}
	if req.FirstName != nil {
		student.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		student.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		student.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		student.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.DateOfBirth != nil {
		student.DateOfBirth = *req.DateOfBirth
	}
	if req.Class != nil {
		student.Class = strings.TrimSpace(*req.Class)
	}
	if req.Section != nil {
		student.Section = req.Section
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.Status != nil {
		student.Status = models.StudentStatus(*req.Status)
	}
}

// diffCourseIDs computes the set difference between the current and desired
// course lists. Courses in both sets are untouched; duplicates in desired
// collapse.
func diffCourseIDs(current, desired []int64) (add, remove []int64) {
	currentSet := make(map[int64]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}

	desiredSet := make(map[int64]bool, len(desired))
	for _, id := range desired {
		if desiredSet[id] {
			continue
		}
		desiredSet[id] = true
		if !currentSet[id] {
			add = append(add, id)
		}
	}

	for _, id := range current {
		if !desiredSet[id] {
			remove = append(remove, id)
		}
	}

	return add, remove
}
