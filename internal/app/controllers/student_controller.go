package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/app/models/dto"
	"github.com/atakan/campusadmin/internal/app/services"
	"github.com/atakan/campusadmin/internal/middleware"
)

// StudentController handles student-related endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// ListStudents handles GET /students with search and filter parameters
func (c *StudentController) ListStudents(ctx *gin.Context) {
	filter := models.StudentFilter{
		Search: ctx.Query("search"),
		Class:  ctx.Query("class"),
		Status: ctx.Query("status"),
	}
	if courseStr := ctx.Query("course"); courseStr != "" {
		courseID, err := strconv.ParseInt(courseStr, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid course filter"))
			return
		}
		filter.CourseID = courseID
	}

	students, err := c.studentService.ListStudents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if students == nil {
		students = []*models.Student{}
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(len(students), students))
}

// GetStudentByID handles GET /students/:id
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid student ID")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(student))
}

// CreateStudent handles POST /students, optionally with initial enrollments
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Please provide all required fields"))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Student created successfully", student))
}

// UpdateStudent handles PUT /students/:id as a partial merge
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid student ID")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student data"))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student updated successfully", student))
}

// DeleteStudent handles DELETE /students/:id with enrollment cascade
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid student ID")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student deleted successfully", nil))
}

// EnrollStudent handles POST /students/:id/enroll
func (c *StudentController) EnrollStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid student ID")
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Course ID is required"))
		return
	}

	student, err := c.studentService.EnrollStudent(ctx, id, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student enrolled successfully", student))
}

// UnenrollStudent handles POST /students/:id/unenroll
func (c *StudentController) UnenrollStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid student ID")
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Course ID is required"))
		return
	}

	student, err := c.studentService.UnenrollStudent(ctx, id, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student unenrolled successfully", student))
}

// parseIDParam parses the :id path parameter, writing a 400 on failure
func parseIDParam(ctx *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
		return 0, false
	}
	return id, true
}
