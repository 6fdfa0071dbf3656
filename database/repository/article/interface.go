package articleRepo

import (
	"context"
	"errors"

	"facestudio/models"
)

var (
	ErrNotFound      = errors.New("article not found")
	ErrDuplicateSlug = errors.New("article slug already in use")
)

// ArticleRepository stores blog posts and education courses. Every call is scoped to one kind.
type ArticleRepository interface {
	ListActive(ctx context.Context, kind models.ArticleKind, limit, offset int) ([]models.Article, int, error)
	ListAll(ctx context.Context, kind models.ArticleKind) ([]models.Article, error)
	GetByID(ctx context.Context, kind models.ArticleKind, id int64) (*models.Article, error)
	GetActiveBySlug(ctx context.Context, kind models.ArticleKind, lang, slug string) (*models.Article, error)
	Create(ctx context.Context, a *models.Article) error
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, kind models.ArticleKind, id int64) error
}
