package booking

import (
	"context"
	"time"

	activityRepo "facestudio/database/repository/activity"
	inquiryRepo "facestudio/database/repository/inquiry"
	reservationRepo "facestudio/database/repository/reservation"
	treatmentRepo "facestudio/database/repository/treatment"
	"facestudio/models"
	"facestudio/services/notification"

	"go.uber.org/zap"
)

// ReservationService is the booking workflow around the calculator and validator.
type ReservationService interface {
	GetAvailableSlots(ctx context.Context, treatmentID int64, date string) ([]models.Slot, error)
	CreateReservation(ctx context.Context, userID int64, lang string, req models.ReservationRequest) (*models.Reservation, error)
	ListUserReservations(ctx context.Context, userID int64) ([]models.Reservation, error)
	CancelReservation(ctx context.Context, userID, reservationID int64) (*models.Reservation, error)

	// Admin.
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status models.ReservationStatus) (*models.Reservation, error)

	// Scheduled jobs.
	CompletePastReservations(ctx context.Context) (int, error)
	SendReminders(ctx context.Context) (int, error)
}

// DefaultReservationService implements ReservationService. Activity, Emails and
// Notifier are side channels; their failures are logged and never returned.
type DefaultReservationService struct {
	Calculator   Calculator
	Reservations reservationRepo.ReservationRepository
	Treatments   treatmentRepo.TreatmentRepository
	Emails       inquiryRepo.InquiryRepository
	Activity     activityRepo.ActivityRepository
	Notifier     notification.NotificationService
	Logger       *zap.Logger
	// Now is the clock; tests replace it.
	Now func() time.Time
}
