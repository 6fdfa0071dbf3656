package content

import (
	"regexp"
	"strings"

	"facestudio/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func trimLocalized(l models.Localized) models.Localized {
	return models.Localized{HR: strings.TrimSpace(l.HR), EN: strings.TrimSpace(l.EN)}
}

func requireLocalized(field string, l models.Localized) error {
	if l.HR == "" {
		return invalid(field+"_hr", "is required")
	}
	if l.EN == "" {
		return invalid(field+"_en", "is required")
	}
	return nil
}

func validateSlugs(slug models.Localized) error {
	if err := requireLocalized("slug", slug); err != nil {
		return err
	}
	if !slugPattern.MatchString(slug.HR) {
		return invalid("slug_hr", "may only contain lowercase letters, digits and hyphens")
	}
	if !slugPattern.MatchString(slug.EN) {
		return invalid("slug_en", "may only contain lowercase letters, digits and hyphens")
	}
	return nil
}

func validateTreatment(t *models.Treatment) error {
	t.Title = trimLocalized(t.Title)
	t.Slug = trimLocalized(t.Slug)
	if err := requireLocalized("title", t.Title); err != nil {
		return err
	}
	if err := validateSlugs(t.Slug); err != nil {
		return err
	}
	if t.DurationHours < 0 || t.DurationMinutes < 0 || t.DurationMinutes > 59 {
		return invalid("duration", "hours must be non-negative and minutes between 0 and 59")
	}
	if t.TotalMinutes() <= 0 {
		return invalid("duration", "must be longer than zero")
	}
	if t.PauseHours < 0 || t.PauseMinutes < 0 || t.PauseMinutes > 59 {
		return invalid("pause", "hours must be non-negative and minutes between 0 and 59")
	}
	if t.PriceCents < 0 {
		return invalid("price_cents", "must not be negative")
	}
	return nil
}

func validateArticle(a *models.Article) error {
	if !a.Kind.Valid() {
		return ErrInvalidKind
	}
	a.Title = trimLocalized(a.Title)
	a.Slug = trimLocalized(a.Slug)
	if err := requireLocalized("title", a.Title); err != nil {
		return err
	}
	if err := validateSlugs(a.Slug); err != nil {
		return err
	}
	if a.Kind != models.KindEducation {
		a.PriceCents = nil
	}
	if a.PriceCents != nil && *a.PriceCents < 0 {
		return invalid("price_cents", "must not be negative")
	}
	return nil
}
