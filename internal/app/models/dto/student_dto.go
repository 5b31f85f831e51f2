package dto

import "github.com/atakan/campusadmin/internal/app/models"

// CreateStudentRequest represents a request to create a student record.
// EnrolledCourses may carry initial course ids; unresolvable ids are skipped.
type CreateStudentRequest struct {
	StudentID       string         `json:"studentId" binding:"required"`
	FirstName       string         `json:"firstName" binding:"required"`
	LastName        string         `json:"lastName" binding:"required"`
	Email           string         `json:"email" binding:"required,email"`
	Phone           string         `json:"phone" binding:"required"`
	DateOfBirth     string         `json:"dateOfBirth" binding:"required"`
	Class           string         `json:"class" binding:"required"`
	Section         *string        `json:"section"`
	Address         models.Address `json:"address"`
	EnrolledCourses []int64        `json:"enrolledCourses"`
	Status          string         `json:"status" binding:"omitempty,oneof=active inactive graduated"`
}

// UpdateStudentRequest represents a partial student update. Only non-nil
// fields are merged onto the stored record; a non-nil EnrolledCourses
// replaces the student's course set via an add/remove diff.
type UpdateStudentRequest struct {
	StudentID       *string         `json:"studentId"`
	FirstName       *string         `json:"firstName"`
	LastName        *string         `json:"lastName"`
	Email           *string         `json:"email"`
	Phone           *string         `json:"phone"`
	DateOfBirth     *string         `json:"dateOfBirth"`
	Class           *string         `json:"class"`
	Section         *string         `json:"section"`
	Address         *models.Address `json:"address"`
	EnrolledCourses *[]int64        `json:"enrolledCourses"`
	Status          *string         `json:"status"`
}

// EnrollRequest carries the course id for enroll/unenroll operations
type EnrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required"`
}
