package booking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDuration      = errors.New("treatment duration must be positive")
	ErrClosedDay            = errors.New("the studio is closed on the selected day")
	ErrOutsideBusinessHours = errors.New("the selected time is outside business hours")
	ErrPastDate             = errors.New("the selected date is in the past")
	ErrTooSoon              = errors.New("reservations must start at least one hour from now")
	ErrSlotUnavailable      = errors.New("time slot is not available")

	ErrTreatmentNotFound   = errors.New("treatment not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAlreadyCancelled    = errors.New("reservation already cancelled")
	ErrNotCancellable      = errors.New("only upcoming reservations can be cancelled")
	ErrInvalidStatus       = errors.New("invalid reservation status")
)

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsRejection reports whether err means the requested time cannot be booked,
// as opposed to a malformed request or an infrastructure failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrClosedDay) ||
		errors.Is(err, ErrOutsideBusinessHours) ||
		errors.Is(err, ErrPastDate) ||
		errors.Is(err, ErrTooSoon) ||
		errors.Is(err, ErrSlotUnavailable)
}
