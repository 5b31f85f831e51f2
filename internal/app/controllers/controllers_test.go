package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/app/models/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubStudentService lets each test plug in just the behavior it needs.
type stubStudentService struct {
	listFn     func(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	getFn      func(ctx context.Context, id int64) (*models.Student, error)
	createFn   func(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	updateFn   func(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	deleteFn   func(ctx context.Context, id int64) error
	enrollFn   func(ctx context.Context, studentID, courseID int64) (*models.Student, error)
	unenrollFn func(ctx context.Context, studentID, courseID int64) (*models.Student, error)
}

func (s *stubStudentService) ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	return s.listFn(ctx, filter)
}

func (s *stubStudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.getFn(ctx, id)
}

func (s *stubStudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	return s.createFn(ctx, req)
}

func (s *stubStudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubStudentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubStudentService) EnrollStudent(ctx context.Context, studentID, courseID int64) (*models.Student, error) {
	return s.enrollFn(ctx, studentID, courseID)
}

func (s *stubStudentService) UnenrollStudent(ctx context.Context, studentID, courseID int64) (*models.Student, error) {
	return s.unenrollFn(ctx, studentID, courseID)
}

type stubCourseService struct {
	listFn   func(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error)
	getFn    func(ctx context.Context, id int64) (*models.Course, error)
	createFn func(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	updateFn func(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubCourseService) ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.getFn(ctx, id)
}

func (s *stubCourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	return s.createFn(ctx, req)
}

func (s *stubCourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubCourseService) DeleteCourse(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
