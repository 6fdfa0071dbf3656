package notification

import (
	"context"

	"facestudio/models"
)

// NotificationService renders and queues the studio's transactional emails.
// Every method returns an error for logging only; callers never fail a request on it.
type NotificationService interface {
	ReservationCreated(ctx context.Context, r *models.Reservation, t *models.Treatment) error
	ReservationCancelled(ctx context.Context, r *models.Reservation) error
	ReservationReminder(ctx context.Context, r *models.Reservation) error
	ContactReceived(ctx context.Context, c *models.ContactSubmission) error
	VoucherOrdered(ctx context.Context, v *models.GiftVoucher, lang string) error
}
