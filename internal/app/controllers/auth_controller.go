package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atakan/campusadmin/internal/app/models/dto"
	"github.com/atakan/campusadmin/internal/app/services"
	"github.com/atakan/campusadmin/internal/middleware"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /auth/register
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Please provide name, email and password"))
		return
	}

	user, err := c.authService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("User registered successfully", user))
}

// Login handles POST /auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Please provide email and password"))
		return
	}

	tokenData, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(tokenData))
}

// Me handles GET /auth/me for the authenticated user
func (c *AuthController) Me(ctx *gin.Context) {
	userID, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	user, err := c.authService.GetUserByID(ctx, userID.(int64))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(user))
}
