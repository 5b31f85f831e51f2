package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atakan/campusadmin/internal/app/models/dto"
	"github.com/atakan/campusadmin/internal/pkg/apperrors"
	"github.com/atakan/campusadmin/internal/pkg/logger"
)

// HandleAPIError translates service errors into the API error contract.
// Every handler funnels its failures through here so the status/message
// mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Student not found"))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Course not found"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("User not found"))
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Student already enrolled in this course"))
	case errors.Is(err, apperrors.ErrCourseFull):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Course is full"))
	case errors.Is(err, apperrors.ErrStudentIDAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Student ID already exists"))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email already exists"))
	case errors.Is(err, apperrors.ErrCourseCodeAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Course code already exists"))
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email already exists"))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid credentials"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid token"))
	default:
		// Unexpected errors are logged with detail and surfaced generically
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
	}
}
