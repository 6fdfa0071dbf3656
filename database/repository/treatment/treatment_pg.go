package treatmentRepo

import (
	"context"
	"errors"
	"fmt"

	"facestudio/database"
	"facestudio/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgTreatmentRepo struct {
	pool *pgxpool.Pool
}

func NewPgTreatmentRepo(pool *pgxpool.Pool) *PgTreatmentRepo {
	return &PgTreatmentRepo{pool: pool}
}

const treatmentColumns = `
	id, title_hr, title_en, slug_hr, slug_en,
	short_description_hr, short_description_en,
	full_description_hr, full_description_en,
	meta_description_hr, meta_description_en,
	duration_hours, duration_minutes, pause_hours, pause_minutes,
	price_cents, thumbnail_public_id, thumbnail_url, is_active,
	created_at, updated_at`

func scanTreatment(row pgx.Row) (*models.Treatment, error) {
	var t models.Treatment
	err := row.Scan(
		&t.ID,
		&t.Title.HR, &t.Title.EN,
		&t.Slug.HR, &t.Slug.EN,
		&t.ShortDescription.HR, &t.ShortDescription.EN,
		&t.FullDescription.HR, &t.FullDescription.EN,
		&t.MetaDescription.HR, &t.MetaDescription.EN,
		&t.DurationHours, &t.DurationMinutes,
		&t.PauseHours, &t.PauseMinutes,
		&t.PriceCents,
		&t.ThumbnailPublicID,
		&t.ThumbnailURL,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func collect(rows pgx.Rows) ([]models.Treatment, error) {
	defer rows.Close()
	out := []models.Treatment{}
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *PgTreatmentRepo) ListActive(ctx context.Context, limit, offset int) ([]models.Treatment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM treatments WHERE is_active`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count treatments: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+treatmentColumns+`
		FROM treatments
		WHERE is_active
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list treatments: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list treatments: %w", err)
	}
	return items, total, nil
}

func (r *PgTreatmentRepo) ListAll(ctx context.Context) ([]models.Treatment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+treatmentColumns+`
		FROM treatments ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all treatments: %w", err)
	}
	return collect(rows)
}

func (r *PgTreatmentRepo) GetByID(ctx context.Context, id int64) (*models.Treatment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+treatmentColumns+` FROM treatments WHERE id = $1`, id)
	return scanTreatment(row)
}

func (r *PgTreatmentRepo) GetActiveBySlug(ctx context.Context, lang, slug string) (*models.Treatment, error) {
	column := "slug_hr"
	if models.NormalizeLang(lang) == models.LangEN {
		column = "slug_en"
	}
	row := r.pool.QueryRow(ctx, `SELECT `+treatmentColumns+`
		FROM treatments WHERE `+column+` = $1 AND is_active`, slug)
	return scanTreatment(row)
}

func (r *PgTreatmentRepo) Create(ctx context.Context, t *models.Treatment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO treatments (
			title_hr, title_en, slug_hr, slug_en,
			short_description_hr, short_description_en,
			full_description_hr, full_description_en,
			meta_description_hr, meta_description_en,
			duration_hours, duration_minutes, pause_hours, pause_minutes,
			price_cents, thumbnail_public_id, thumbnail_url, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at`,
		t.Title.HR, t.Title.EN, t.Slug.HR, t.Slug.EN,
		t.ShortDescription.HR, t.ShortDescription.EN,
		t.FullDescription.HR, t.FullDescription.EN,
		t.MetaDescription.HR, t.MetaDescription.EN,
		t.DurationHours, t.DurationMinutes, t.PauseHours, t.PauseMinutes,
		t.PriceCents, t.ThumbnailPublicID, t.ThumbnailURL, t.IsActive,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "") {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert treatment: %w", err)
	}
	return nil
}

func (r *PgTreatmentRepo) Update(ctx context.Context, t *models.Treatment) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE treatments SET
			title_hr = $2, title_en = $3, slug_hr = $4, slug_en = $5,
			short_description_hr = $6, short_description_en = $7,
			full_description_hr = $8, full_description_en = $9,
			meta_description_hr = $10, meta_description_en = $11,
			duration_hours = $12, duration_minutes = $13,
			pause_hours = $14, pause_minutes = $15,
			price_cents = $16, thumbnail_public_id = $17, thumbnail_url = $18,
			is_active = $19, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		t.ID,
		t.Title.HR, t.Title.EN, t.Slug.HR, t.Slug.EN,
		t.ShortDescription.HR, t.ShortDescription.EN,
		t.FullDescription.HR, t.FullDescription.EN,
		t.MetaDescription.HR, t.MetaDescription.EN,
		t.DurationHours, t.DurationMinutes, t.PauseHours, t.PauseMinutes,
		t.PriceCents, t.ThumbnailPublicID, t.ThumbnailURL, t.IsActive,
	).Scan(&t.UpdatedAt)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case database.IsUniqueViolation(err, ""):
		return ErrDuplicateSlug
	}
	return fmt.Errorf("update treatment: %w", err)
}

func (r *PgTreatmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete treatment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
