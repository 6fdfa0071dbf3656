package models

import "time"

// ArticleKind separates blog posts from education courses; both share one table.
type ArticleKind string

const (
	KindBlog      ArticleKind = "blog"
	KindEducation ArticleKind = "education"
)

func (k ArticleKind) Valid() bool {
	return k == KindBlog || k == KindEducation
}

// Article is a blog post or an education course.
type Article struct {
	ID               int64       `json:"id"`
	Kind             ArticleKind `json:"kind"`
	Title            Localized   `json:"title"`
	Slug             Localized   `json:"slug"`
	ShortDescription Localized   `json:"short_description"`
	FullDescription  Localized   `json:"full_description"`
	MetaDescription  Localized   `json:"meta_description"`

	// PriceCents is only set for education courses.
	PriceCents *int64 `json:"price_cents,omitempty"`

	ThumbnailPublicID string    `json:"thumbnail_public_id,omitempty"`
	ThumbnailURL      string    `json:"thumbnail_url,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ArticleView struct {
	ID               int64       `json:"id"`
	Kind             ArticleKind `json:"kind"`
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	ShortDescription string      `json:"short_description"`
	FullDescription  string      `json:"full_description,omitempty"`
	MetaDescription  string      `json:"meta_description"`
	Price            string      `json:"price,omitempty"`
	ThumbnailURL     string      `json:"thumbnail_url,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

func (a *Article) View(lang string, full bool) ArticleView {
	v := ArticleView{
		ID:               a.ID,
		Kind:             a.Kind,
		Title:            a.Title.In(lang),
		Slug:             a.Slug.In(lang),
		ShortDescription: a.ShortDescription.In(lang),
		MetaDescription:  a.MetaDescription.In(lang),
		ThumbnailURL:     a.ThumbnailURL,
		CreatedAt:        a.CreatedAt,
	}
	if v.MetaDescription == "" {
		v.MetaDescription = v.ShortDescription
	}
	if a.PriceCents != nil {
		v.Price = FormatPrice(*a.PriceCents)
	}
	if full {
		v.FullDescription = a.FullDescription.In(lang)
	}
	return v
}
