package services

import (
	"context"
	"sort"
	"strings"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/pkg/apperrors"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories. It
// mirrors their behavior closely enough to exercise the services: sentinel
// errors for missing rows, capacity and duplicate checks on enroll, set
// semantics for the pairing table and cascades on delete.
type memStore struct {
	nextID      int64
	students    map[int64]*models.Student
	courses     map[int64]*models.Course
	enrollments map[int64]map[int64]bool // student id -> set of course ids
	users       map[int64]*models.User
}

func newMemStore() *memStore {
	return &memStore{
		students:    make(map[int64]*models.Student),
		courses:     make(map[int64]*models.Course),
		enrollments: make(map[int64]map[int64]bool),
		users:       make(map[int64]*models.User),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// --- StudentStore ---

func (m *memStore) Create(ctx context.Context, student *models.Student) error {
	student.ID = m.id()
	copied := *student
	m.students[student.ID] = &copied
	m.enrollments[student.ID] = make(map[int64]bool)
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	stored, ok := m.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	student := *stored
	student.EnrolledCourses = m.courseSummaries(id)
	return &student, nil
}

func (m *memStore) List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	var out []*models.Student
	for id, stored := range m.students {
		if !matchStudent(stored, filter, m.enrollments[id]) {
			continue
		}
		student := *stored
		student.EnrolledCourses = m.courseSummaries(id)
		out = append(out, &student)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matchStudent(s *models.Student, f models.StudentFilter, enrolled map[int64]bool) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		hay := strings.ToLower(s.FirstName + " " + s.LastName + " " + s.StudentID + " " + s.Class)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if f.Class != "" && s.Class != f.Class {
		return false
	}
	if f.Status != "" && string(s.Status) != f.Status {
		return false
	}
	if f.CourseID != 0 && !enrolled[f.CourseID] {
		return false
	}
	return true
}

func (m *memStore) StudentIDExists(ctx context.Context, studentID string, excludeID int64) (bool, error) {
	for _, s := range m.students {
		if s.StudentID == studentID && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, s := range m.students {
		if s.Email == email && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Update(ctx context.Context, student *models.Student, addCourseIDs, removeCourseIDs []int64) error {
	stored, ok := m.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	copied.CreatedAt = stored.CreatedAt
	m.students[student.ID] = &copied
	for _, courseID := range removeCourseIDs {
		delete(m.enrollments[student.ID], courseID)
	}
	for _, courseID := range addCourseIDs {
		if _, ok := m.courses[courseID]; ok {
			m.enrollments[student.ID][courseID] = true
		}
	}
	return nil
}

func (m *memStore) Delete(ctx context.Context, id int64) error {
	if _, ok := m.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(m.students, id)
	delete(m.enrollments, id)
	return nil
}

func (m *memStore) courseSummaries(studentID int64) []models.CourseSummary {
	summaries := []models.CourseSummary{}
	for courseID := range m.enrollments[studentID] {
		course := m.courses[courseID]
		summaries = append(summaries, models.CourseSummary{
			ID:         course.ID,
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}

// --- EnrollmentStore ---

func (m *memStore) Enroll(ctx context.Context, studentID, courseID int64) error {
	course, ok := m.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if _, ok := m.students[studentID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	if m.enrollments[studentID][courseID] {
		return apperrors.ErrAlreadyEnrolled
	}
	if m.enrolledCount(courseID) >= course.Capacity {
		return apperrors.ErrCourseFull
	}
	m.enrollments[studentID][courseID] = true
	return nil
}

func (m *memStore) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if _, ok := m.students[studentID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	if _, ok := m.courses[courseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(m.enrollments[studentID], courseID)
	return nil
}

func (m *memStore) AddStudentToCourses(ctx context.Context, studentID int64, courseIDs []int64) error {
	for _, courseID := range courseIDs {
		if _, ok := m.courses[courseID]; ok {
			m.enrollments[studentID][courseID] = true
		}
	}
	return nil
}

func (m *memStore) CourseIDsForStudent(ctx context.Context, studentID int64) ([]int64, error) {
	var ids []int64
	for courseID := range m.enrollments[studentID] {
		ids = append(ids, courseID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memStore) enrolledCount(courseID int64) int {
	count := 0
	for _, set := range m.enrollments {
		if set[courseID] {
			count++
		}
	}
	return count
}

// courseStore adapts memStore to the CourseStore interface; the method set
// collides with StudentStore on names so a thin wrapper keeps both usable.
type courseStore struct {
	m *memStore
}

func (c courseStore) Create(ctx context.Context, course *models.Course) error {
	course.ID = c.m.id()
	copied := *course
	c.m.courses[course.ID] = &copied
	return nil
}

func (c courseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	stored, ok := c.m.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	course := *stored
	course.EnrolledStudents = c.studentSummaries(id)
	return &course, nil
}

func (c courseStore) List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error) {
	var out []*models.Course
	for id, stored := range c.m.courses {
		if !matchCourse(stored, filter) {
			continue
		}
		course := *stored
		course.EnrolledStudents = c.studentSummaries(id)
		out = append(out, &course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matchCourse(course *models.Course, f models.CourseFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		hay := strings.ToLower(course.CourseName + " " + course.CourseCode + " " + course.Department)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if f.Department != "" && course.Department != f.Department {
		return false
	}
	if f.Status != "" && string(course.Status) != f.Status {
		return false
	}
	if f.Semester != "" && (course.Semester == nil || *course.Semester != f.Semester) {
		return false
	}
	return true
}

func (c courseStore) CodeExists(ctx context.Context, courseCode string, excludeID int64) (bool, error) {
	for _, course := range c.m.courses {
		if course.CourseCode == courseCode && course.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (c courseStore) Update(ctx context.Context, course *models.Course) error {
	stored, ok := c.m.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	copied := *course
	copied.CreatedAt = stored.CreatedAt
	c.m.courses[course.ID] = &copied
	return nil
}

func (c courseStore) Delete(ctx context.Context, id int64) error {
	if _, ok := c.m.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(c.m.courses, id)
	for _, set := range c.m.enrollments {
		delete(set, id)
	}
	return nil
}

func (c courseStore) studentSummaries(courseID int64) []models.StudentSummary {
	summaries := []models.StudentSummary{}
	for studentID, set := range c.m.enrollments {
		if !set[courseID] {
			continue
		}
		student := c.m.students[studentID]
		summaries = append(summaries, models.StudentSummary{
			ID:        student.ID,
			StudentID: student.StudentID,
			FirstName: student.FirstName,
			LastName:  student.LastName,
			Email:     student.Email,
			Class:     student.Class,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}

// userStore adapts memStore to the UserStore interface.
type userStore struct {
	m *memStore
}

func (u userStore) Create(ctx context.Context, user *models.User) error {
	for _, existing := range u.m.users {
		if existing.Email == user.Email {
			return apperrors.ErrUserAlreadyExists
		}
	}
	user.ID = u.m.id()
	copied := *user
	u.m.users[user.ID] = &copied
	return nil
}

func (u userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range u.m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (u userStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := u.m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (u userStore) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, user := range u.m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}
