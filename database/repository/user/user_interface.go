package userRepo

import (
	"context"
	"errors"

	"facestudio/models"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("a user with this username or email already exists")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByLogin matches identifier against username or email, case-insensitively.
	GetByLogin(ctx context.Context, identifier string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, id int64, role string) error
}
