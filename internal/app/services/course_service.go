package services

import (
	"context"
	"strings"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/app/models/dto"
	"github.com/atakan/campusadmin/internal/pkg/apperrors"
	"github.com/atakan/campusadmin/internal/pkg/validation"
)

// CourseService handles course-related operations
type CourseService interface {
	ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

type courseService struct {
	courses CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courses CourseStore) CourseService {
	return &courseService{
		courses: courses,
	}
}

// ListCourses retrieves courses matching the filter
func (s *courseService) ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error) {
	return s.courses.List(ctx, filter)
}

// GetCourseByID retrieves a single course with enrolled students populated
func (s *courseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// CreateCourse creates a course after normalizing its code and checking
// uniqueness. Codes are uppercased, which makes the unique check
// case-insensitive.
func (s *courseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		CourseCode:   normalizeCourseCode(req.CourseCode),
		CourseName:   strings.TrimSpace(req.CourseName),
		Description:  req.Description,
		Credits:      req.Credits,
		Instructor:   req.Instructor,
		Department:   strings.TrimSpace(req.Department),
		Schedule:     req.Schedule,
		Capacity:     req.Capacity,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		Status:       models.CourseStatus(req.Status),
	}
	if course.Capacity == 0 {
		course.Capacity = models.DefaultCourseCapacity
	}
	if course.Status == "" {
		course.Status = models.CourseStatusActive
	}

	if err := validation.Struct(course); err != nil {
		return nil, err
	}

	exists, err := s.courses.CodeExists(ctx, course.CourseCode, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCourseCodeAlreadyExists
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	return s.courses.GetByID(ctx, course.ID)
}

// UpdateCourse merges the partial update onto the stored record and
// re-validates the result
func (s *courseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mergeCourse(course, req)

	if err := validation.Struct(course); err != nil {
		return nil, err
	}

	exists, err := s.courses.CodeExists(ctx, course.CourseCode, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCourseCodeAlreadyExists
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courses.GetByID(ctx, id)
}

// DeleteCourse removes the course and purges all enrollment pairings
func (s *courseService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courses.Delete(ctx, id)
}

// mergeCourse applies non-nil request fields onto the stored record
func mergeCourse(course *models.Course, req *dto.UpdateCourseRequest) {
	if req.CourseCode != nil {
		course.CourseCode = normalizeCourseCode(*req.CourseCode)
	}
	if req.CourseName != nil {
		course.CourseName = strings.TrimSpace(*req.CourseName)
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Instructor != nil {
		course.Instructor = req.Instructor
	}
	if req.Department != nil {
		course.Department = strings.TrimSpace(*req.Department)
	}
	if req.Schedule != nil {
		course.Schedule = *req.Schedule
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}
	if req.Semester != nil {
		course.Semester = req.Semester
	}
	if req.AcademicYear != nil {
		course.AcademicYear = req.AcademicYear
	}
	if req.Status != nil {
		course.Status = models.CourseStatus(*req.Status)
	}
}

// normalizeCourseCode uppercases and trims a course code
func normalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
