package booking

import (
	"time"
)

// Validate is the creation guard. It re-checks the candidate against the day's
// opening hours, the lead time and every non-cancelled reservation, independent
// of any slot list the caller saw earlier.
func (c Calculator) Validate(candidate Interval, booked []Interval, now time.Time) error {
	if !candidate.End.After(candidate.Start) {
		return ErrInvalidDuration
	}

	open, close, ok := c.dayBounds(candidate.Start.In(c.loc()))
	if !ok {
		return ErrClosedDay
	}
	if candidate.Start.Before(open) || !candidate.Start.Before(close) {
		return ErrOutsideBusinessHours
	}
	if candidate.End.After(close) {
		return ErrOutsideBusinessHours
	}

	switch c.relativeDay(candidate.Start.In(c.loc()), now) {
	case -1:
		return ErrPastDate
	case 0:
		if candidate.Start.Before(c.EarliestStart(now)) {
			return ErrTooSoon
		}
	}

	if overlapsAny(candidate, booked) {
		return ErrSlotUnavailable
	}
	return nil
}

// CheckOverlap is the overlap half of Validate, used when an existing
// reservation is reactivated and its time is already fixed.
func CheckOverlap(candidate Interval, booked []Interval) error {
	if overlapsAny(candidate, booked) {
		return ErrSlotUnavailable
	}
	return nil
}
