package activityRepo

import (
	"context"

	"facestudio/models"
)

// ActivityRepository is the append-only audit trail of reservations and emails.
type ActivityRepository interface {
	Record(ctx context.Context, event models.ActivityEvent) error
	ListByReservation(ctx context.Context, reservationID int64) ([]models.ActivityEvent, error)
}
