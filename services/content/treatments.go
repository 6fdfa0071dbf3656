package content

import (
	"context"
	"errors"
	"fmt"
	"io"

	treatmentRepo "facestudio/database/repository/treatment"
	"facestudio/models"

	"go.uber.org/zap"
)

const treatmentPrefix = "content:treatments:"

// ListTreatments returns one page of active treatments, newest first, in lang.
func (s *DefaultContentService) ListTreatments(ctx context.Context, lang string, page int) (*models.Page[models.TreatmentView], error) {
	lang = models.NormalizeLang(lang)
	if page < 1 {
		page = 1
	}
	return cached(ctx, s, treatmentKey("list:", lang, ":", page), func() (*models.Page[models.TreatmentView], error) {
		// The total is only known after the first query, so an out-of-range page costs a second one.
		p, offset := pageBounds(page, TreatmentPageSize, 0)
		items, total, err := s.Treatments.ListActive(ctx, TreatmentPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list treatments: %w", err)
		}
		if len(items) == 0 && total > 0 {
			p, offset = pageBounds(page, TreatmentPageSize, total)
			if items, total, err = s.Treatments.ListActive(ctx, TreatmentPageSize, offset); err != nil {
				return nil, fmt.Errorf("list treatments: %w", err)
			}
		}

		views := make([]models.TreatmentView, 0, len(items))
		for i := range items {
			views = append(views, items[i].View(lang, false))
		}
		out := models.NewPage(views, p, TreatmentPageSize, total)
		return &out, nil
	})
}

func (s *DefaultContentService) GetTreatment(ctx context.Context, lang, slug string) (*models.TreatmentView, error) {
	lang = models.NormalizeLang(lang)
	return cached(ctx, s, treatmentKey("slug:", lang, ":", slug), func() (*models.TreatmentView, error) {
		t, err := s.Treatments.GetActiveBySlug(ctx, lang, slug)
		if errors.Is(err, treatmentRepo.ErrNotFound) {
			return nil, ErrTreatmentNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("get treatment %q: %w", slug, err)
		}
		v := t.View(lang, true)
		return &v, nil
	})
}

func (s *DefaultContentService) ListAllTreatments(ctx context.Context) ([]models.Treatment, error) {
	return s.Treatments.ListAll(ctx)
}

func (s *DefaultContentService) GetTreatmentByID(ctx context.Context, id int64) (*models.Treatment, error) {
	t, err := s.Treatments.GetByID(ctx, id)
	if errors.Is(err, treatmentRepo.ErrNotFound) {
		return nil, ErrTreatmentNotFound
	}
	return t, err
}

func treatmentWriteErr(err error) error {
	switch {
	case errors.Is(err, treatmentRepo.ErrDuplicateSlug):
		return ErrDuplicateSlug
	case errors.Is(err, treatmentRepo.ErrNotFound):
		return ErrTreatmentNotFound
	}
	return err
}

func (s *DefaultContentService) CreateTreatment(ctx context.Context, t *models.Treatment) error {
	if err := validateTreatment(t); err != nil {
		return err
	}
	if err := s.Treatments.Create(ctx, t); err != nil {
		return treatmentWriteErr(err)
	}
	s.logger().Info("Treatment created", zap.Int64("id", t.ID), zap.String("slug", t.Slug.HR))
	s.invalidate(ctx, treatmentPrefix)
	return nil
}

// UpdateTreatment saves the editable fields and releases images the new
// descriptions no longer reference. The thumbnail is managed by SetTreatmentThumbnail.
func (s *DefaultContentService) UpdateTreatment(ctx context.Context, t *models.Treatment) error {
	if err := validateTreatment(t); err != nil {
		return err
	}
	old, err := s.GetTreatmentByID(ctx, t.ID)
	if err != nil {
		return err
	}
	t.ThumbnailPublicID = old.ThumbnailPublicID
	t.ThumbnailURL = old.ThumbnailURL
	if err := s.Treatments.Update(ctx, t); err != nil {
		return treatmentWriteErr(err)
	}

	s.releaseMedia(ctx, mediaRefs(old.ThumbnailPublicID, old.FullDescription), mediaRefs(t.ThumbnailPublicID, t.FullDescription))
	s.invalidate(ctx, treatmentPrefix)
	return nil
}

func (s *DefaultContentService) DeleteTreatment(ctx context.Context, id int64) error {
	old, err := s.GetTreatmentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Treatments.Delete(ctx, id); err != nil {
		return treatmentWriteErr(err)
	}
	s.logger().Info("Treatment deleted", zap.Int64("id", id))
	s.releaseMedia(ctx, mediaRefs(old.ThumbnailPublicID, old.FullDescription), nil)
	s.invalidate(ctx, treatmentPrefix)
	return nil
}

func (s *DefaultContentService) SetTreatmentThumbnail(ctx context.Context, id int64, file io.Reader, filename string) (*models.Treatment, error) {
	t, err := s.GetTreatmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.upload(ctx, file, "treatments", filename)
	if err != nil {
		return nil, err
	}

	previous := t.ThumbnailPublicID
	t.ThumbnailPublicID, t.ThumbnailURL = res.PublicID, res.URL
	if err := s.Treatments.Update(ctx, t); err != nil {
		s.releaseMedia(ctx, map[string]struct{}{res.PublicID: {}}, nil)
		return nil, treatmentWriteErr(err)
	}
	if previous != "" && previous != res.PublicID {
		s.releaseMedia(ctx, map[string]struct{}{previous: {}}, nil)
	}
	s.invalidate(ctx, treatmentPrefix)
	return t, nil
}
