package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:45")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(9*60+45), c)
	assert.Equal(t, "09:45", c.String())

	_, err = ParseClock("9.45")
	assert.Error(t, err)
	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestClockTimeJSON(t *testing.T) {
	b, err := json.Marshal(ClockTime(17 * 60))
	require.NoError(t, err)
	assert.JSONEq(t, `"17:00"`, string(b))

	var c ClockTime
	require.NoError(t, json.Unmarshal([]byte(`"12:15"`), &c))
	assert.Equal(t, ClockTime(12*60+15), c)
}

func TestClockTimeOnUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Zagreb")
	require.NoError(t, err)

	day := time.Date(2026, time.July, 14, 0, 0, 0, 0, time.UTC)
	got := ClockTime(9 * 60).On(day, loc)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 14, got.Day())
	assert.Equal(t, loc, got.Location())
}

func TestLocalizedFallsBackToCroatian(t *testing.T) {
	l := Localized{HR: "Tretman lica"}
	assert.Equal(t, "Tretman lica", l.In("en"))
	assert.Equal(t, "Tretman lica", l.In("de"))

	l.EN = "Facial"
	assert.Equal(t, "Facial", l.In("en"))
}

func TestTreatmentDuration(t *testing.T) {
	tr := Treatment{DurationHours: 1, DurationMinutes: 30}
	assert.Equal(t, 90, tr.TotalMinutes())
	assert.Equal(t, 90*time.Minute, tr.Duration())
	assert.Equal(t, "1h 30min", tr.DurationDisplay())
	assert.Equal(t, "0min", (&Treatment{}).DurationDisplay())
}

func TestTreatmentViewMetaFallback(t *testing.T) {
	tr := Treatment{
		Title:            Localized{HR: "Piling", EN: "Peel"},
		ShortDescription: Localized{HR: "Kratko", EN: "Short"},
		PriceCents:       4550,
	}
	v := tr.View(LangEN, false)
	assert.Equal(t, "Peel", v.Title)
	assert.Equal(t, "Short", v.MetaDescription)
	assert.Equal(t, "45.50 €", v.Price)
	assert.Empty(t, v.FullDescription)
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2, 3, 4}, 1, 4, 9)
	assert.True(t, p.HasNext)

	last := NewPage[int](nil, 3, 4, 9)
	assert.False(t, last.HasNext)
	assert.NotNil(t, last.Items)
}

func TestGiftVoucherDeliveryEmail(t *testing.T) {
	g := GiftVoucher{EmailOption: DeliverToRecipient, PurchaserEmail: "p@example.com"}
	assert.Equal(t, "p@example.com", g.DeliveryEmail())
	g.RecipientEmail = "r@example.com"
	assert.Equal(t, "r@example.com", g.DeliveryEmail())
}
