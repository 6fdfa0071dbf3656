package models

// Supported site languages. Croatian is the default and the fallback for missing translations.
const (
	LangHR = "hr"
	LangEN = "en"
)

// NormalizeLang maps anything unsupported to Croatian.
func NormalizeLang(lang string) string {
	if lang == LangEN {
		return LangEN
	}
	return LangHR
}

// Localized holds one text in both site languages.
type Localized struct {
	HR string `json:"hr"`
	EN string `json:"en"`
}

// In returns the text for lang, falling back to Croatian when the English text is empty.
func (l Localized) In(lang string) string {
	if NormalizeLang(lang) == LangEN && l.EN != "" {
		return l.EN
	}
	return l.HR
}

// Page is one page of a newest-first listing.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	HasNext  bool `json:"has_next"`
}

// NewPage wraps items, clamping page to at least 1.
func NewPage[T any](items []T, page, pageSize, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	if page < 1 {
		page = 1
	}
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		HasNext:  page*pageSize < total,
	}
}
