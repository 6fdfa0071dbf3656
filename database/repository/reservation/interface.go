package reservationRepo

import (
	"context"
	"errors"
	"time"

	"facestudio/models"
)

var (
	ErrNotFound = errors.New("reservation not found")
	// ErrSlotTaken means the insert lost against an overlapping live reservation.
	ErrSlotTaken = errors.New("reservation slot taken")
	// ErrNotCancelled means a reactivation found the reservation already live.
	ErrNotCancelled = errors.New("reservation is not cancelled")
)

type ReservationRepository interface {
	// ListActiveByDate returns every non-cancelled reservation on the calendar date.
	ListActiveByDate(ctx context.Context, date time.Time) ([]models.Reservation, error)
	// CreateIfAvailable inserts r only if no live reservation on the same date overlaps it.
	CreateIfAvailable(ctx context.Context, r *models.Reservation) error
	GetByID(ctx context.Context, id int64) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status models.ReservationStatus) error
	// ReactivateIfAvailable moves a cancelled reservation back to status only if
	// no other live reservation on its date overlaps it.
	ReactivateIfAvailable(ctx context.Context, r *models.Reservation, status models.ReservationStatus) error
	// CompleteEndedBefore marks pending and confirmed reservations that ended by the given
	// date and time as completed, returning their IDs.
	CompleteEndedBefore(ctx context.Context, date time.Time, at models.ClockTime) ([]int64, error)
}
