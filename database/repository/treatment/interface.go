package treatmentRepo

import (
	"context"
	"errors"

	"facestudio/models"
)

var (
	ErrNotFound      = errors.New("treatment not found")
	ErrDuplicateSlug = errors.New("treatment slug already in use")
)

type TreatmentRepository interface {
	// ListActive returns one newest-first page of active treatments and the active total.
	ListActive(ctx context.Context, limit, offset int) ([]models.Treatment, int, error)
	ListAll(ctx context.Context) ([]models.Treatment, error)
	GetByID(ctx context.Context, id int64) (*models.Treatment, error)
	// GetActiveBySlug looks the slug up in the column of lang.
	GetActiveBySlug(ctx context.Context, lang, slug string) (*models.Treatment, error)
	Create(ctx context.Context, t *models.Treatment) error
	Update(ctx context.Context, t *models.Treatment) error
	Delete(ctx context.Context, id int64) error
}
