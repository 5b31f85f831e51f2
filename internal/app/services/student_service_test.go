package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/app/models/dto"
	"github.com/atakan/campusadmin/internal/pkg/apperrors"
)

func newStudentFixture(t *testing.T) (*memStore, StudentService, CourseService) {
	t.Helper()
	store := newMemStore()
	return store, NewStudentService(store, store), NewCourseService(courseStore{store})
}

func createCourseForTest(t *testing.T, svc CourseService, code string, capacity int) *models.Course {
	t.Helper()
	course, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		CourseCode: code,
		CourseName: code + " Lecture",
		Credits:    3,
		Department: "Computer Science",
		Capacity:   capacity,
	})
	require.NoError(t, err)
	return course
}

func validCreateStudentRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		StudentID:   "S1001",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Phone:       "555-0100",
		DateOfBirth: "2001-12-10",
		Class:       "Sophomore",
	}
}

func TestCreateStudentDefaultsStatusToActive(t *testing.T) {
	_, students, _ := newStudentFixture(t)

	student, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StudentStatusActive, student.Status)
	assert.NotZero(t, student.ID)
	assert.Empty(t, student.EnrolledCourses)
}

func TestCreateStudentSkipsUnknownInitialCourses(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	course := createCourseForTest(t, courses, "CS101", 30)

	req := validCreateStudentRequest()
	req.EnrolledCourses = []int64{course.ID, 9999}

	student, err := students.CreateStudent(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, student.EnrolledCourses, 1)
	assert.Equal(t, course.ID, student.EnrolledCourses[0].ID)
}

func TestCreateStudentDuplicateStudentID(t *testing.T) {
	_, students, _ := newStudentFixture(t)

	_, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	dup := validCreateStudentRequest()
	dup.Email = "other@example.com"
	_, err = students.CreateStudent(context.Background(), dup)
	assert.ErrorIs(t, err, apperrors.ErrStudentIDAlreadyExists)
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	_, students, _ := newStudentFixture(t)

	_, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	dup := validCreateStudentRequest()
	dup.StudentID = "S1002"
	_, err = students.CreateStudent(context.Background(), dup)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestCreateStudentRejectsInvalidData(t *testing.T) {
	_, students, _ := newStudentFixture(t)

	req := validCreateStudentRequest()
	req.Email = "not-an-email"
	_, err := students.CreateStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = validCreateStudentRequest()
	req.DateOfBirth = "10/12/2001"
	_, err = students.CreateStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEnrollStudentUpdatesBothSides(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	course := createCourseForTest(t, courses, "CS101", 30)

	created, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	student, err := students.EnrollStudent(context.Background(), created.ID, course.ID)
	require.NoError(t, err)
	require.Len(t, student.EnrolledCourses, 1)
	assert.Equal(t, "CS101", student.EnrolledCourses[0].CourseCode)

	reloaded, err := courses.GetCourseByID(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.EnrolledStudents, 1)
	assert.Equal(t, created.ID, reloaded.EnrolledStudents[0].ID)
}

func TestEnrollStudentTwiceFails(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	course := createCourseForTest(t, courses, "CS101", 30)

	created, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	_, err = students.EnrollStudent(context.Background(), created.ID, course.ID)
	require.NoError(t, err)

	_, err = students.EnrollStudent(context.Background(), created.ID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnrollStudentRespectsCapacity(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	course := createCourseForTest(t, courses, "CS101", 1)

	first, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	second := validCreateStudentRequest()
	second.StudentID = "S1002"
	second.Email = "grace@example.com"
	other, err := students.CreateStudent(context.Background(), second)
	require.NoError(t, err)

	_, err = students.EnrollStudent(context.Background(), first.ID, course.ID)
	require.NoError(t, err)

	_, err = students.EnrollStudent(context.Background(), other.ID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseFull)
}

func TestEnrollStudentMissingEntities(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	course := createCourseForTest(t, courses, "CS101", 30)

	created, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	_, err = students.EnrollStudent(context.Background(), created.ID, 9999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = students.EnrollStudent(context.Background(), 9999, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUnenrollStudentIsIdempotent(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	course := createCourseForTest(t, courses, "CS101", 30)

	created, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	_, err = students.EnrollStudent(context.Background(), created.ID, course.ID)
	require.NoError(t, err)

	student, err := students.UnenrollStudent(context.Background(), created.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, student.EnrolledCourses)

	// Removing an absent pairing still succeeds
	student, err = students.UnenrollStudent(context.Background(), created.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, student.EnrolledCourses)
}

func TestUnenrollStudentMissingCourse(t *testing.T) {
	_, students, _ := newStudentFixture(t)

	created, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	_, err = students.UnenrollStudent(context.Background(), created.ID, 9999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestUpdateStudentMergesPartialFields(t *testing.T) {
	_, students, _ := newStudentFixture(t)

	created, err := students.CreateStudent(context.Background(), validCreateStudentRequest())
	require.NoError(t, err)

	newClass := "Junior"
	updated, err := students.UpdateStudent(context.Background(), created.ID, &dto.UpdateStudentRequest{
		Class: &newClass,
	})
	require.NoError(t, err)

	assert.Equal(t, "Junior", updated.Class)
	assert.Equal(t, created.StudentID, updated.StudentID)
	assert.Equal(t, created.Email, updated.Email)
}

func TestUpdateStudentReplacesEnrollmentSet(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	courseA := createCourseForTest(t, courses, "CS101", 30)
	courseB := createCourseForTest(t, courses, "CS102", 30)
	courseC := createCourseForTest(t, courses, "CS103", 30)

	req := validCreateStudentRequest()
	req.EnrolledCourses = []int64{courseA.ID, courseB.ID}
	created, err := students.CreateStudent(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, created.EnrolledCourses, 2)

	desired := []int64{courseB.ID, courseC.ID}
	updated, err := students.UpdateStudent(context.Background(), created.ID, &dto.UpdateStudentRequest{
		EnrolledCourses: &desired,
	})
	require.NoError(t, err)

	require.Len(t, updated.EnrolledCourses, 2)
	assert.Equal(t, courseB.ID, updated.EnrolledCourses[0].ID)
	assert.Equal(t, courseC.ID, updated.EnrolledCourses[1].ID)

	// The dropped course no longer lists the student
	reloaded, err := courses.GetCourseByID(context.Background(), courseA.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.EnrolledStudents)
}

func TestUpdateStudentWithoutEnrollmentsLeavesSetUntouched(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	course := createCourseForTest(t, courses, "CS101", 30)

	req := validCreateStudentRequest()
	req.EnrolledCourses = []int64{course.ID}
	created, err := students.CreateStudent(context.Background(), req)
	require.NoError(t, err)

	newPhone := "555-0199"
	updated, err := students.UpdateStudent(context.Background(), created.ID, &dto.UpdateStudentRequest{
		Phone: &newPhone,
	})
	require.NoError(t, err)

	require.Len(t, updated.EnrolledCourses, 1)
	assert.Equal(t, course.ID, updated.EnrolledCourses[0].ID)
}

func TestUpdateStudentNotFound(t *testing.T) {
	_, students, _ := newStudentFixture(t)

	name := "Ada"
	_, err := students.UpdateStudent(context.Background(), 42, &dto.UpdateStudentRequest{FirstName: &name})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudentCascadesEnrollments(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	course := createCourseForTest(t, courses, "CS101", 30)

	req := validCreateStudentRequest()
	req.EnrolledCourses = []int64{course.ID}
	created, err := students.CreateStudent(context.Background(), req)
	require.NoError(t, err)

	require.NoError(t, students.DeleteStudent(context.Background(), created.ID))

	_, err = students.GetStudentByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	reloaded, err := courses.GetCourseByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.EnrolledStudents)
}

func TestListStudentsFilters(t *testing.T) {
	_, students, courses := newStudentFixture(t)
	course := createCourseForTest(t, courses, "CS101", 30)

	first := validCreateStudentRequest()
	first.EnrolledCourses = []int64{course.ID}
	_, err := students.CreateStudent(context.Background(), first)
	require.NoError(t, err)

	second := validCreateStudentRequest()
	second.StudentID = "S1002"
	second.Email = "grace@example.com"
	second.FirstName = "Grace"
	second.Class = "Senior"
	_, err = students.CreateStudent(context.Background(), second)
	require.NoError(t, err)

	byCourse, err := students.ListStudents(context.Background(), models.StudentFilter{CourseID: course.ID})
	require.NoError(t, err)
	require.Len(t, byCourse, 1)
	assert.Equal(t, "S1001", byCourse[0].StudentID)

	bySearch, err := students.ListStudents(context.Background(), models.StudentFilter{Search: "grace"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "S1002", bySearch[0].StudentID)

	byClass, err := students.ListStudents(context.Background(), models.StudentFilter{Class: "Senior"})
	require.NoError(t, err)
	require.Len(t, byClass, 1)
}

func TestDiffCourseIDs(t *testing.T) {
	tests := []struct {
		name       string
		current    []int64
		desired    []int64
		wantAdd    []int64
		wantRemove []int64
	}{
		{
			name:       "replace one",
			current:    []int64{1, 2},
			desired:    []int64{2, 3},
			wantAdd:    []int64{3},
			wantRemove: []int64{1},
		},
		{
			name:       "clear all",
			current:    []int64{1, 2},
			desired:    []int64{},
			wantRemove: []int64{1, 2},
		},
		{
			name:    "duplicates collapse",
			current: []int64{1},
			desired: []int64{1, 1, 2, 2},
			wantAdd: []int64{2},
		},
		{
			name:    "no change",
			current: []int64{1, 2},
			desired: []int64{2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add, remove := diffCourseIDs(tt.current, tt.desired)
			assert.Equal(t, tt.wantAdd, add)
			assert.Equal(t, tt.wantRemove, remove)
		})
	}
}
