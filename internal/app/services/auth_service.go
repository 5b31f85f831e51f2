package services

import (
	"context"
	"errors"
	"strings"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/app/models/dto"
	"github.com/atakan/campusadmin/internal/pkg/apperrors"
	"github.com/atakan/campusadmin/internal/pkg/auth"
)

// AuthService handles staff account registration and authentication
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type authService struct {
	users UserStore
	jwt   *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(users UserStore, jwt *auth.JWTService) AuthService {
	return &authService{
		users: users,
		jwt:   jwt,
	}
}

// Register creates a new staff account with a bcrypt-hashed password
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUserAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a signed token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.TokenData{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user,
	}, nil
}

// GetUserByID returns the account behind an authenticated request
func (s *authService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
