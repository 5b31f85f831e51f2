package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atakan/campusadmin/internal/app/controllers"
	"github.com/atakan/campusadmin/internal/app/models/dto"
	"github.com/atakan/campusadmin/internal/middleware"
)

// Controllers aggregates the handlers wired into the router.
type Controllers struct {
	Auth    *controllers.AuthController
	Student *controllers.StudentController
	Course  *controllers.CourseController
}

// RegisterRoutes attaches all API routes to the router.
func RegisterRoutes(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/", indexHandler)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.GET("/me", authMiddleware.RequireAuth(), ctrl.Auth.Me)
	}

	students := api.Group("/students", authMiddleware.RequireAuth())
	{
		students.GET("", ctrl.Student.ListStudents)
		students.GET("/:id", ctrl.Student.GetStudentByID)
		students.POST("", ctrl.Student.CreateStudent)
		students.PUT("/:id", ctrl.Student.UpdateStudent)
		students.DELETE("/:id", ctrl.Student.DeleteStudent)
		students.POST("/:id/enroll", ctrl.Student.EnrollStudent)
		students.POST("/:id/unenroll", ctrl.Student.UnenrollStudent)
	}

	courses := api.Group("/courses", authMiddleware.RequireAuth())
	{
		courses.GET("", ctrl.Course.ListCourses)
		courses.GET("/:id", ctrl.Course.GetCourseByID)
		courses.POST("", ctrl.Course.CreateCourse)
		courses.PUT("/:id", ctrl.Course.UpdateCourse)
		courses.DELETE("/:id", ctrl.Course.DeleteCourse)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Route not found"))
	})
}

func indexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Campus Administration API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth":     "/api/auth",
			"students": "/api/students",
			"courses":  "/api/courses",
		},
	})
}
