package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances for dependency wiring
type Repositories struct {
	StudentRepository    *StudentRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	UserRepository       *UserRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:    NewStudentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		UserRepository:       NewUserRepository(db),
	}
}
