package inquiry

import (
	"context"
	"errors"

	inquiryRepo "facestudio/database/repository/inquiry"
	treatmentRepo "facestudio/database/repository/treatment"
	"facestudio/models"
	"facestudio/services/notification"

	"go.uber.org/zap"
)

var (
	// ErrSpam is returned when the honeypot field was filled in.
	ErrSpam              = errors.New("submission rejected")
	ErrTreatmentNotFound = errors.New("treatment not found")
	ErrNotFound          = errors.New("record not found")
)

// ValidationError names the offending form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

type InquiryService interface {
	SubmitContact(ctx context.Context, req models.ContactRequest) (*models.ContactSubmission, error)
	OrderVoucher(ctx context.Context, lang string, req models.GiftVoucherRequest) (*models.GiftVoucher, error)

	// Admin.
	ListContacts(ctx context.Context, unreadOnly bool) ([]models.ContactSubmission, error)
	MarkContactRead(ctx context.Context, id int64) error
	ListVouchers(ctx context.Context) ([]models.GiftVoucher, error)
	ListEmails(ctx context.Context) ([]models.CollectedEmail, error)
}

// DefaultInquiryService handles the public contact and gift voucher forms.
type DefaultInquiryService struct {
	Repo       inquiryRepo.InquiryRepository
	Treatments treatmentRepo.TreatmentRepository
	Notifier   notification.NotificationService
	Logger     *zap.Logger
}
