package inquiryRepo

import (
	"context"
	"errors"

	"facestudio/models"
)

var ErrNotFound = errors.New("record not found")

// InquiryRepository stores contact form submissions, gift voucher orders and the email collection.
type InquiryRepository interface {
	CreateContact(ctx context.Context, c *models.ContactSubmission) error
	ListContacts(ctx context.Context, unreadOnly bool) ([]models.ContactSubmission, error)
	MarkContactRead(ctx context.Context, id int64) error

	CreateVoucher(ctx context.Context, v *models.GiftVoucher) error
	MarkVoucherSent(ctx context.Context, id int64) error
	ListVouchers(ctx context.Context) ([]models.GiftVoucher, error)

	// CollectEmail stores the address unless it is already known. It reports whether a row was added.
	CollectEmail(ctx context.Context, e *models.CollectedEmail) (bool, error)
	ListEmails(ctx context.Context) ([]models.CollectedEmail, error)
}
