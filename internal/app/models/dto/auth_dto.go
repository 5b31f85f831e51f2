package dto

import "github.com/atakan/campusadmin/internal/app/models"

// RegisterRequest represents a staff account registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenData carries the issued credential and the authenticated identity
type TokenData struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
	User      *models.User `json:"user"`
}
