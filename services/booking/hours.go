package booking

import (
	"fmt"
	"strings"
	"time"

	"facestudio/models"
)

// Window is one day's opening interval, [Open, Close).
type Window struct {
	Open  models.ClockTime
	Close models.ClockTime
}

// BusinessHours maps a weekday to its window. A missing weekday is closed.
type BusinessHours map[time.Weekday]Window

// For returns the window of the weekday and whether the studio is open at all.
func (h BusinessHours) For(day time.Weekday) (Window, bool) {
	w, ok := h[day]
	return w, ok
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseBusinessHours reads the config form: weekday name to "HH:MM-HH:MM" or "closed".
// Weekdays not listed are closed.
func ParseBusinessHours(raw map[string]string) (BusinessHours, error) {
	hours := make(BusinessHours, len(raw))
	for name, spec := range raw {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("business hours: unknown weekday %q", name)
		}
		spec = strings.TrimSpace(spec)
		if spec == "" || strings.EqualFold(spec, "closed") {
			continue
		}
		open, close, found := strings.Cut(spec, "-")
		if !found {
			return nil, fmt.Errorf("business hours: %s: expected HH:MM-HH:MM, got %q", name, spec)
		}
		o, err := models.ParseClock(strings.TrimSpace(open))
		if err != nil {
			return nil, fmt.Errorf("business hours: %s: %w", name, err)
		}
		c, err := models.ParseClock(strings.TrimSpace(close))
		if err != nil {
			return nil, fmt.Errorf("business hours: %s: %w", name, err)
		}
		if c <= o {
			return nil, fmt.Errorf("business hours: %s closes before it opens", name)
		}
		hours[day] = Window{Open: o, Close: c}
	}
	return hours, nil
}
