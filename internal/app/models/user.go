package models

import "time"

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "admin"
)

// User represents a staff account that can authenticate against the API
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" validate:"required"`
	Email        string    `json:"email" db:"email" validate:"required,email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         RoleType  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
