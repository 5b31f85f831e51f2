package models

import "time"

// CourseStatus defines the lifecycle state of a course
type CourseStatus string

const (
	CourseStatusActive    CourseStatus = "active"
	CourseStatusInactive  CourseStatus = "inactive"
	CourseStatusCompleted CourseStatus = "completed"
)

// DefaultCourseCapacity is applied when a course is created without one
const DefaultCourseCapacity = 30

// Schedule holds the weekly meeting pattern of a course
type Schedule struct {
	Days []string `json:"days"`
	Time string   `json:"time,omitempty"`
}

// Course represents a course offered by a department.
type Course struct {
	ID           int64        `json:"id" db:"id"`
	CourseCode   string       `json:"courseCode" db:"course_code" validate:"required,uppercase"` // Normalized to uppercase
	CourseName   string       `json:"courseName" db:"course_name" validate:"required"`
	Description  *string      `json:"description,omitempty" db:"description"` // Nullable
	Credits      int          `json:"credits" db:"credits" validate:"required,min=1"`
	Instructor   *string      `json:"instructor,omitempty" db:"instructor"` // Nullable
	Department   string       `json:"department" db:"department" validate:"required"`
	Schedule     Schedule     `json:"schedule"`
	Capacity     int          `json:"capacity" db:"capacity" validate:"min=1"`
	Semester     *string      `json:"semester,omitempty" db:"semester"`          // Nullable
	AcademicYear *string      `json:"academicYear,omitempty" db:"academic_year"` // Nullable
	Status       CourseStatus `json:"status" db:"status" validate:"required,oneof=active inactive completed"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	EnrolledStudents []StudentSummary `json:"enrolledStudents"`
}

// CourseSummary is the compact course shape embedded in student responses
type CourseSummary struct {
	ID         int64  `json:"id"`
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
}

// CourseFilter holds the supported list query parameters for courses
type CourseFilter struct {
	Search     string // case-insensitive substring over name, code and department
	Department string
	Status     string
	Semester   string
}
