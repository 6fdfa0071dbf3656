package content

import (
	"context"
	"errors"
	"io"
	"time"

	articleRepo "facestudio/database/repository/article"
	treatmentRepo "facestudio/database/repository/treatment"
	"facestudio/models"
	"facestudio/services/storage"

	"go.uber.org/zap"
)

const (
	TreatmentPageSize = 4
	ArticlePageSize   = 6
)

var (
	ErrTreatmentNotFound = errors.New("treatment not found")
	ErrArticleNotFound   = errors.New("article not found")
	ErrDuplicateSlug     = errors.New("slug already in use")
	ErrInvalidKind       = errors.New("unknown article kind")
	ErrNoStorage         = errors.New("media storage is not configured")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

type ContentService interface {
	// Treatments, public.
	ListTreatments(ctx context.Context, lang string, page int) (*models.Page[models.TreatmentView], error)
	GetTreatment(ctx context.Context, lang, slug string) (*models.TreatmentView, error)
	// Treatments, admin.
	ListAllTreatments(ctx context.Context) ([]models.Treatment, error)
	GetTreatmentByID(ctx context.Context, id int64) (*models.Treatment, error)
	CreateTreatment(ctx context.Context, t *models.Treatment) error
	UpdateTreatment(ctx context.Context, t *models.Treatment) error
	DeleteTreatment(ctx context.Context, id int64) error
	SetTreatmentThumbnail(ctx context.Context, id int64, file io.Reader, filename string) (*models.Treatment, error)

	// Blog posts and education courses, public.
	ListArticles(ctx context.Context, kind models.ArticleKind, lang string, page int) (*models.Page[models.ArticleView], error)
	GetArticle(ctx context.Context, kind models.ArticleKind, lang, slug string) (*models.ArticleView, error)
	// Articles, admin.
	ListAllArticles(ctx context.Context, kind models.ArticleKind) ([]models.Article, error)
	GetArticleByID(ctx context.Context, kind models.ArticleKind, id int64) (*models.Article, error)
	CreateArticle(ctx context.Context, a *models.Article) error
	UpdateArticle(ctx context.Context, a *models.Article) error
	DeleteArticle(ctx context.Context, kind models.ArticleKind, id int64) error
	SetArticleThumbnail(ctx context.Context, kind models.ArticleKind, id int64, file io.Reader, filename string) (*models.Article, error)

	// UploadImage stores an image for the rich-text editor and returns its URL.
	UploadImage(ctx context.Context, file io.Reader, filename string) (*storage.UploadResult, error)
}

// DefaultContentService implements ContentService. Cache and Storage may be nil.
type DefaultContentService struct {
	Treatments  treatmentRepo.TreatmentRepository
	Articles    articleRepo.ArticleRepository
	Storage     storage.StorageService
	Cache       Cache
	CacheTTL    time.Duration
	MediaFolder string
	Logger      *zap.Logger
}
