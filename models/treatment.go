package models

import (
	"fmt"
	"strings"
	"time"
)

// Treatment is a bookable studio service.
type Treatment struct {
	ID               int64     `json:"id"`
	Title            Localized `json:"title"`
	Slug             Localized `json:"slug"`
	ShortDescription Localized `json:"short_description"`
	FullDescription  Localized `json:"full_description"`
	MetaDescription  Localized `json:"meta_description"`

	DurationHours   int `json:"duration_hours"`
	DurationMinutes int `json:"duration_minutes"`
	// Pause is rest time after the treatment. It is shown to staff only.
	PauseHours   int `json:"pause_hours"`
	PauseMinutes int `json:"pause_minutes"`

	PriceCents        int64     `json:"price_cents"`
	ThumbnailPublicID string    `json:"thumbnail_public_id,omitempty"`
	ThumbnailURL      string    `json:"thumbnail_url,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TotalMinutes is the bookable length of the treatment.
func (t *Treatment) TotalMinutes() int {
	return t.DurationHours*60 + t.DurationMinutes
}

// Duration is TotalMinutes as a time.Duration.
func (t *Treatment) Duration() time.Duration {
	return time.Duration(t.TotalMinutes()) * time.Minute
}

func (t *Treatment) TotalPauseMinutes() int {
	return t.PauseHours*60 + t.PauseMinutes
}

// DurationDisplay renders the duration as "1h 30min".
func (t *Treatment) DurationDisplay() string {
	var parts []string
	if t.DurationHours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", t.DurationHours))
	}
	if t.DurationMinutes > 0 {
		parts = append(parts, fmt.Sprintf("%dmin", t.DurationMinutes))
	}
	if len(parts) == 0 {
		return "0min"
	}
	return strings.Join(parts, " ")
}

// TreatmentView is a treatment rendered in one language for public pages.
type TreatmentView struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"short_description"`
	FullDescription  string    `json:"full_description,omitempty"`
	MetaDescription  string    `json:"meta_description"`
	Duration         string    `json:"duration"`
	DurationMinutes  int       `json:"duration_minutes"`
	Price            string    `json:"price"`
	ThumbnailURL     string    `json:"thumbnail_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// View localizes the treatment. Full descriptions are only included when full is set.
func (t *Treatment) View(lang string, full bool) TreatmentView {
	v := TreatmentView{
		ID:               t.ID,
		Title:            t.Title.In(lang),
		Slug:             t.Slug.In(lang),
		ShortDescription: t.ShortDescription.In(lang),
		MetaDescription:  t.MetaDescription.In(lang),
		Duration:         t.DurationDisplay(),
		DurationMinutes:  t.TotalMinutes(),
		Price:            FormatPrice(t.PriceCents),
		ThumbnailURL:     t.ThumbnailURL,
		CreatedAt:        t.CreatedAt,
	}
	if v.MetaDescription == "" {
		v.MetaDescription = v.ShortDescription
	}
	if full {
		v.FullDescription = t.FullDescription.In(lang)
	}
	return v
}

// FormatPrice renders cents as "45.00 €".
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d €", cents/100, cents%100)
}
