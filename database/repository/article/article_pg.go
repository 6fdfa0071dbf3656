package articleRepo

import (
	"context"
	"errors"
	"fmt"

	"facestudio/database"
	"facestudio/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgArticleRepo struct {
	pool *pgxpool.Pool
}

func NewPgArticleRepo(pool *pgxpool.Pool) *PgArticleRepo {
	return &PgArticleRepo{pool: pool}
}

const articleColumns = `
	id, kind, title_hr, title_en, slug_hr, slug_en,
	short_description_hr, short_description_en,
	full_description_hr, full_description_en,
	meta_description_hr, meta_description_en,
	price_cents, thumbnail_public_id, thumbnail_url, is_active,
	created_at, updated_at`

func scanArticle(row pgx.Row) (*models.Article, error) {
	var (
		a    models.Article
		kind string
	)
	err := row.Scan(
		&a.ID,
		&kind,
		&a.Title.HR, &a.Title.EN,
		&a.Slug.HR, &a.Slug.EN,
		&a.ShortDescription.HR, &a.ShortDescription.EN,
		&a.FullDescription.HR, &a.FullDescription.EN,
		&a.MetaDescription.HR, &a.MetaDescription.EN,
		&a.PriceCents,
		&a.ThumbnailPublicID,
		&a.ThumbnailURL,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Kind = models.ArticleKind(kind)
	return &a, nil
}

func collect(rows pgx.Rows) ([]models.Article, error) {
	defer rows.Close()
	out := []models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *PgArticleRepo) ListActive(ctx context.Context, kind models.ArticleKind, limit, offset int) ([]models.Article, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM articles WHERE kind = $1 AND is_active`, string(kind),
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s articles: %w", kind, err)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+articleColumns+`
		FROM articles
		WHERE kind = $1 AND is_active
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, string(kind), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s articles: %w", kind, err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s articles: %w", kind, err)
	}
	return items, total, nil
}

func (r *PgArticleRepo) ListAll(ctx context.Context, kind models.ArticleKind) ([]models.Article, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+articleColumns+`
		FROM articles WHERE kind = $1
		ORDER BY created_at DESC, id DESC`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list all %s articles: %w", kind, err)
	}
	return collect(rows)
}

func (r *PgArticleRepo) GetByID(ctx context.Context, kind models.ArticleKind, id int64) (*models.Article, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+articleColumns+`
		FROM articles WHERE kind = $1 AND id = $2`, string(kind), id)
	return scanArticle(row)
}

func (r *PgArticleRepo) GetActiveBySlug(ctx context.Context, kind models.ArticleKind, lang, slug string) (*models.Article, error) {
	column := "slug_hr"
	if models.NormalizeLang(lang) == models.LangEN {
		column = "slug_en"
	}
	row := r.pool.QueryRow(ctx, `SELECT `+articleColumns+`
		FROM articles WHERE kind = $1 AND `+column+` = $2 AND is_active`, string(kind), slug)
	return scanArticle(row)
}

func (r *PgArticleRepo) Create(ctx context.Context, a *models.Article) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO articles (
			kind, title_hr, title_en, slug_hr, slug_en,
			short_description_hr, short_description_en,
			full_description_hr, full_description_en,
			meta_description_hr, meta_description_en,
			price_cents, thumbnail_public_id, thumbnail_url, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`,
		string(a.Kind), a.Title.HR, a.Title.EN, a.Slug.HR, a.Slug.EN,
		a.ShortDescription.HR, a.ShortDescription.EN,
		a.FullDescription.HR, a.FullDescription.EN,
		a.MetaDescription.HR, a.MetaDescription.EN,
		a.PriceCents, a.ThumbnailPublicID, a.ThumbnailURL, a.IsActive,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "") {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *PgArticleRepo) Update(ctx context.Context, a *models.Article) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE articles SET
			title_hr = $3, title_en = $4, slug_hr = $5, slug_en = $6,
			short_description_hr = $7, short_description_en = $8,
			full_description_hr = $9, full_description_en = $10,
			meta_description_hr = $11, meta_description_en = $12,
			price_cents = $13, thumbnail_public_id = $14, thumbnail_url = $15,
			is_active = $16, updated_at = now()
		WHERE kind = $1 AND id = $2
		RETURNING updated_at`,
		string(a.Kind), a.ID,
		a.Title.HR, a.Title.EN, a.Slug.HR, a.Slug.EN,
		a.ShortDescription.HR, a.ShortDescription.EN,
		a.FullDescription.HR, a.FullDescription.EN,
		a.MetaDescription.HR, a.MetaDescription.EN,
		a.PriceCents, a.ThumbnailPublicID, a.ThumbnailURL, a.IsActive,
	).Scan(&a.UpdatedAt)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case database.IsUniqueViolation(err, ""):
		return ErrDuplicateSlug
	}
	return fmt.Errorf("update article: %w", err)
}

func (r *PgArticleRepo) Delete(ctx context.Context, kind models.ArticleKind, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
