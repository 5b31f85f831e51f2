package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/app/models/dto"
	"github.com/atakan/campusadmin/internal/app/services"
	"github.com/atakan/campusadmin/internal/middleware"
)

// CourseController handles course-related endpoints
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// ListCourses handles GET /courses with search and filter parameters
func (c *CourseController) ListCourses(ctx *gin.Context) {
	filter := models.CourseFilter{
		Search:     ctx.Query("search"),
		Department: ctx.Query("department"),
		Status:     ctx.Query("status"),
		Semester:   ctx.Query("semester"),
	}

	courses, err := c.courseService.ListCourses(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(len(courses), courses))
}

// GetCourseByID handles GET /courses/:id
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid course ID")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(course))
}

// CreateCourse handles POST /courses
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Please provide all required fields"))
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Course created successfully", course))
}

// UpdateCourse handles PUT /courses/:id as a partial merge
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid course ID")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid course data"))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course updated successfully", course))
}

// DeleteCourse handles DELETE /courses/:id with enrollment cascade
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid course ID")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted successfully", nil))
}
