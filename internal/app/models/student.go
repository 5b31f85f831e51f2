package models

import "time"

// StudentStatus defines the lifecycle state of a student record
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "active"
	StudentStatusInactive  StudentStatus = "inactive"
	StudentStatusGraduated StudentStatus = "graduated"
)

// Address holds a student's structured postal address
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// Student defines the student model based on the 'students' table
type Student struct {
	ID          int64         `json:"id" db:"id"`
	StudentID   string        `json:"studentId" db:"student_id" validate:"required"` // Unique student number
	FirstName   string        `json:"firstName" db:"first_name" validate:"required"`
	LastName    string        `json:"lastName" db:"last_name" validate:"required"`
	Email       string        `json:"email" db:"email" validate:"required,email"`
	Phone       string        `json:"phone" db:"phone" validate:"required"`
	DateOfBirth string        `json:"dateOfBirth" db:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Class       string        `json:"class" db:"class" validate:"required"`
	Section     *string       `json:"section,omitempty" db:"section"` // Nullable
	Address     Address       `json:"address"`
	Status      StudentStatus `json:"status" db:"status" validate:"required,oneof=active inactive graduated"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	EnrolledCourses []CourseSummary `json:"enrolledCourses"`
}

// StudentSummary is the compact student shape embedded in course responses
type StudentSummary struct {
	ID        int64  `json:"id"`
	StudentID string `json:"studentId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Class     string `json:"class"`
}

// StudentFilter holds the supported list query parameters for students
type StudentFilter struct {
	Search   string // case-insensitive substring over first/last name, student number and class
	Class    string
	CourseID int64 // only students enrolled in this course
	Status   string
}
