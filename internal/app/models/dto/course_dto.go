package dto

import "github.com/atakan/campusadmin/internal/app/models"

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	CourseCode   string          `json:"courseCode" binding:"required"`
	CourseName   string          `json:"courseName" binding:"required"`
	Description  *string         `json:"description"`
	Credits      int             `json:"credits" binding:"required,min=1"`
	Instructor   *string         `json:"instructor"`
	Department   string          `json:"department" binding:"required"`
	Schedule     models.Schedule `json:"schedule"`
	Capacity     int             `json:"capacity" binding:"omitempty,min=1"`
	Semester     *string         `json:"semester"`
	AcademicYear *string         `json:"academicYear"`
	Status       string          `json:"status" binding:"omitempty,oneof=active inactive completed"`
}

// UpdateCourseRequest represents a partial course update. Only non-nil
// fields are merged onto the stored record.
type UpdateCourseRequest struct {
	CourseCode   *string          `json:"courseCode"`
	CourseName   *string          `json:"courseName"`
	Description  *string          `json:"description"`
	Credits      *int             `json:"credits"`
	Instructor   *string          `json:"instructor"`
	Department   *string          `json:"department"`
	Schedule     *models.Schedule `json:"schedule"`
	Capacity     *int             `json:"capacity"`
	Semester     *string          `json:"semester"`
	AcademicYear *string          `json:"academicYear"`
	Status       *string          `json:"status"`
}
