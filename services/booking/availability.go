package booking

import (
	"time"

	"facestudio/models"
)

const (
	// SlotStep is the spacing between candidate start times.
	SlotStep = 15 * time.Minute
	// LeadTime is how far ahead of now a same-day booking must start.
	LeadTime = time.Hour
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps is the half-open test: touching intervals do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Slot renders the interval in wall-clock form.
func (a Interval) Slot() models.Slot {
	return models.Slot{Start: a.Start.Format("15:04"), End: a.End.Format("15:04")}
}

// Calculator computes bookable slots. It holds no clock of its own: callers pass now.
type Calculator struct {
	Hours    BusinessHours
	Location *time.Location
}

func NewCalculator(hours BusinessHours, loc *time.Location) Calculator {
	return Calculator{Hours: hours, Location: loc}
}

func (c Calculator) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// dayBounds resolves the open and close instants for the calendar date of day.
func (c Calculator) dayBounds(day time.Time) (open, close time.Time, ok bool) {
	loc := c.loc()
	y, m, d := day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
	w, ok := c.Hours.For(midnight.Weekday())
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return w.Open.On(midnight, loc), w.Close.On(midnight, loc), true
}

// EarliestStart is now plus the lead time, rounded up to the next step boundary on the wall clock.
func (c Calculator) EarliestStart(now time.Time) time.Time {
	t := now.In(c.loc()).Add(LeadTime)
	step := int(SlotStep / time.Minute)
	mins := t.Hour()*60 + t.Minute()
	if t.Second() > 0 || t.Nanosecond() > 0 {
		mins++
	}
	if r := mins % step; r != 0 {
		mins += step - r
	}
	y, m, d := t.Date()
	// time.Date normalizes minute overflow into the next hour or day.
	return time.Date(y, m, d, 0, mins, 0, 0, c.loc())
}

// relativeDay compares the calendar date of day against the studio-local date of now.
func (c Calculator) relativeDay(day, now time.Time) int {
	y, m, d := day.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ny, nm, nd := now.In(c.loc()).Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	switch {
	case target.Before(today):
		return -1
	case target.After(today):
		return 1
	}
	return 0
}

// Slots lists every free interval of length duration on the calendar date of day,
// earliest first. Only day's calendar fields are used. booked holds the date's
// non-cancelled reservations. A closed or past day yields an empty list.
func (c Calculator) Slots(day time.Time, duration time.Duration, booked []Interval, now time.Time) ([]Interval, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	slots := []Interval{}

	open, close, ok := c.dayBounds(day)
	if !ok {
		return slots, nil
	}

	start := open
	switch c.relativeDay(day, now) {
	case -1:
		return slots, nil
	case 0:
		if earliest := c.EarliestStart(now); earliest.After(start) {
			start = earliest
		}
	}

	for s := start; !s.Add(duration).After(close); s = s.Add(SlotStep) {
		candidate := Interval{Start: s, End: s.Add(duration)}
		if !overlapsAny(candidate, booked) {
			slots = append(slots, candidate)
		}
	}
	return slots, nil
}

func overlapsAny(candidate Interval, booked []Interval) bool {
	for _, b := range booked {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// ReservationInterval places a stored reservation on the studio clock.
func (c Calculator) ReservationInterval(r models.Reservation) Interval {
	return Interval{
		Start: r.StartTime.On(r.Date, c.loc()),
		End:   r.EndTime.On(r.Date, c.loc()),
	}
}

// Intervals converts the reservations that still hold a slot.
func (c Calculator) Intervals(reservations []models.Reservation) []Interval {
	out := make([]Interval, 0, len(reservations))
	for _, r := range reservations {
		if !r.Active() {
			continue
		}
		out = append(out, c.ReservationInterval(r))
	}
	return out
}
