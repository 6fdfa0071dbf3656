package booking

import (
	"testing"
	"time"

	"facestudio/config"
	"facestudio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBusinessHoursDefaults(t *testing.T) {
	hours, err := ParseBusinessHours(config.DefaultBusinessHours)
	require.NoError(t, err)

	w, ok := hours.For(time.Tuesday)
	require.True(t, ok)
	assert.Equal(t, "09:00", w.Open.String())
	assert.Equal(t, "17:00", w.Close.String())

	w, ok = hours.For(time.Monday)
	require.True(t, ok)
	assert.Equal(t, models.ClockTime(12*60), w.Open)

	_, ok = hours.For(time.Saturday)
	assert.False(t, ok)
	_, ok = hours.For(time.Sunday)
	assert.False(t, ok)
}

func TestParseBusinessHoursErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown weekday": {"funday": "09:00-17:00"},
		"no separator":    {"monday": "09:00"},
		"bad clock":       {"monday": "9am-5pm"},
		"inverted window": {"monday": "17:00-09:00"},
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBusinessHours(raw)
			assert.Error(t, err)
		})
	}
}

func TestParseBusinessHoursIgnoresCaseAndSpace(t *testing.T) {
	hours, err := ParseBusinessHours(map[string]string{" Friday ": " 10:00 - 14:30 ", "sunday": "Closed"})
	require.NoError(t, err)

	w, ok := hours.For(time.Friday)
	require.True(t, ok)
	assert.Equal(t, "14:30", w.Close.String())
	_, ok = hours.For(time.Sunday)
	assert.False(t, ok)
	_, ok = hours.For(time.Monday)
	assert.False(t, ok)
}
