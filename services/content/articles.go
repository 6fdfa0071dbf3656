package content

import (
	"context"
	"errors"
	"fmt"
	"io"

	articleRepo "facestudio/database/repository/article"
	"facestudio/models"

	"go.uber.org/zap"
)

func articlePrefix(kind models.ArticleKind) string {
	return articleKey(string(kind))
}

// ListArticles returns one page of active posts of kind, newest first, in lang.
func (s *DefaultContentService) ListArticles(ctx context.Context, kind models.ArticleKind, lang string, page int) (*models.Page[models.ArticleView], error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	lang = models.NormalizeLang(lang)
	if page < 1 {
		page = 1
	}
	return cached(ctx, s, articleKey(string(kind), "list:", lang, ":", page), func() (*models.Page[models.ArticleView], error) {
		p, offset := pageBounds(page, ArticlePageSize, 0)
		items, total, err := s.Articles.ListActive(ctx, kind, ArticlePageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		if len(items) == 0 && total > 0 {
			p, offset = pageBounds(page, ArticlePageSize, total)
			if items, total, err = s.Articles.ListActive(ctx, kind, ArticlePageSize, offset); err != nil {
				return nil, fmt.Errorf("list %s: %w", kind, err)
			}
		}

		views := make([]models.ArticleView, 0, len(items))
		for i := range items {
			views = append(views, items[i].View(lang, false))
		}
		out := models.NewPage(views, p, ArticlePageSize, total)
		return &out, nil
	})
}

func (s *DefaultContentService) GetArticle(ctx context.Context, kind models.ArticleKind, lang, slug string) (*models.ArticleView, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	lang = models.NormalizeLang(lang)
	return cached(ctx, s, articleKey(string(kind), "slug:", lang, ":", slug), func() (*models.ArticleView, error) {
		a, err := s.Articles.GetActiveBySlug(ctx, kind, lang, slug)
		if errors.Is(err, articleRepo.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("get %s %q: %w", kind, slug, err)
		}
		v := a.View(lang, true)
		return &v, nil
	})
}

func (s *DefaultContentService) ListAllArticles(ctx context.Context, kind models.ArticleKind) ([]models.Article, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	return s.Articles.ListAll(ctx, kind)
}

func (s *DefaultContentService) GetArticleByID(ctx context.Context, kind models.ArticleKind, id int64) (*models.Article, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	a, err := s.Articles.GetByID(ctx, kind, id)
	if errors.Is(err, articleRepo.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	return a, err
}

func articleWriteErr(err error) error {
	switch {
	case errors.Is(err, articleRepo.ErrDuplicateSlug):
		return ErrDuplicateSlug
	case errors.Is(err, articleRepo.ErrNotFound):
		return ErrArticleNotFound
	}
	return err
}

func (s *DefaultContentService) CreateArticle(ctx context.Context, a *models.Article) error {
	if err := validateArticle(a); err != nil {
		return err
	}
	if err := s.Articles.Create(ctx, a); err != nil {
		return articleWriteErr(err)
	}
	s.logger().Info("Article created", zap.String("kind", string(a.Kind)), zap.Int64("id", a.ID))
	s.invalidate(ctx, articlePrefix(a.Kind))
	return nil
}

func (s *DefaultContentService) UpdateArticle(ctx context.Context, a *models.Article) error {
	if err := validateArticle(a); err != nil {
		return err
	}
	old, err := s.GetArticleByID(ctx, a.Kind, a.ID)
	if err != nil {
		return err
	}
	a.ThumbnailPublicID = old.ThumbnailPublicID
	a.ThumbnailURL = old.ThumbnailURL
	if err := s.Articles.Update(ctx, a); err != nil {
		return articleWriteErr(err)
	}

	s.releaseMedia(ctx, mediaRefs(old.ThumbnailPublicID, old.FullDescription), mediaRefs(a.ThumbnailPublicID, a.FullDescription))
	s.invalidate(ctx, articlePrefix(a.Kind))
	return nil
}

func (s *DefaultContentService) DeleteArticle(ctx context.Context, kind models.ArticleKind, id int64) error {
	old, err := s.GetArticleByID(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := s.Articles.Delete(ctx, kind, id); err != nil {
		return articleWriteErr(err)
	}
	s.logger().Info("Article deleted", zap.String("kind", string(kind)), zap.Int64("id", id))
	s.releaseMedia(ctx, mediaRefs(old.ThumbnailPublicID, old.FullDescription), nil)
	s.invalidate(ctx, articlePrefix(kind))
	return nil
}

func (s *DefaultContentService) SetArticleThumbnail(ctx context.Context, kind models.ArticleKind, id int64, file io.Reader, filename string) (*models.Article, error) {
	a, err := s.GetArticleByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	res, err := s.upload(ctx, file, string(kind), filename)
	if err != nil {
		return nil, err
	}

	previous := a.ThumbnailPublicID
	a.ThumbnailPublicID, a.ThumbnailURL = res.PublicID, res.URL
	if err := s.Articles.Update(ctx, a); err != nil {
		s.releaseMedia(ctx, map[string]struct{}{res.PublicID: {}}, nil)
		return nil, articleWriteErr(err)
	}
	if previous != "" && previous != res.PublicID {
		s.releaseMedia(ctx, map[string]struct{}{previous: {}}, nil)
	}
	s.invalidate(ctx, articlePrefix(kind))
	return a, nil
}
