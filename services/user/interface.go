package user

import (
	"context"
	"errors"
	"time"

	inquiryRepo "facestudio/database/repository/inquiry"
	userRepo "facestudio/database/repository/user"
	"facestudio/models"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrUserExists         = errors.New("a user with this username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
)

// ValidationError names the offending registration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

type UserService interface {
	Register(ctx context.Context, req models.RegistrationRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// Admin.
	ListUsers(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, id int64, role string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Emails   inquiryRepo.InquiryRepository
	TokenTTL time.Duration
	Logger   *zap.Logger
}
