package models

import "time"

type ContactSubmission struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Mobile    string    `json:"mobile"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactRequest carries the form fields. Website is a honeypot and must stay empty.
type ContactRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Mobile    string `json:"mobile" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Message   string `json:"message" binding:"required"`
	Website   string `json:"website"`
}

const (
	DeliverToPurchaser = "purchaser"
	DeliverToRecipient = "recipient"
)

type GiftVoucher struct {
	ID                  int64     `json:"id"`
	TreatmentID         int64     `json:"treatment_id"`
	EmailOption         string    `json:"email_option"`
	RecipientName       string    `json:"recipient_name"`
	PersonalisedMessage string    `json:"personalised_message"`
	FromName            string    `json:"from_name"`
	PurchaserFirstName  string    `json:"purchaser_first_name"`
	PurchaserLastName   string    `json:"purchaser_last_name"`
	PurchaserEmail      string    `json:"purchaser_email"`
	PurchaserMobile     string    `json:"purchaser_mobile"`
	RecipientEmail      string    `json:"recipient_email,omitempty"`
	IsSent              bool      `json:"is_sent"`
	CreatedAt           time.Time `json:"created_at"`

	TreatmentTitle Localized `json:"treatment_title"`
}

// DeliveryEmail is where the voucher itself goes.
func (g *GiftVoucher) DeliveryEmail() string {
	if g.EmailOption == DeliverToRecipient && g.RecipientEmail != "" {
		return g.RecipientEmail
	}
	return g.PurchaserEmail
}

// GiftVoucherRequest is the voucher order form. RecipientEmail is only
// required when the voucher is delivered to the recipient.
type GiftVoucherRequest struct {
	TreatmentID         int64  `json:"treatment_id" binding:"required,gt=0"`
	EmailOption         string `json:"email_option" binding:"required,oneof=purchaser recipient"`
	RecipientName       string `json:"recipient_name" binding:"required"`
	PersonalisedMessage string `json:"personalised_message"`
	FromName            string `json:"from_name" binding:"required"`
	PurchaserFirstName  string `json:"purchaser_first_name" binding:"required"`
	PurchaserLastName   string `json:"purchaser_last_name" binding:"required"`
	PurchaserEmail      string `json:"purchaser_email" binding:"required,email"`
	PurchaserMobile     string `json:"purchaser_mobile" binding:"required"`
	RecipientEmail      string `json:"recipient_email" binding:"omitempty,email"`
	Website             string `json:"website"`
}

// Email collection sources.
const (
	SourceRegistration = "Registration"
	SourceReservation  = "Reservation"
	SourceContactForm  = "Contact Form"
	SourceGiftVoucher  = "Gift Voucher Form"
)

// CollectedEmail is one entry of the marketing address book. Entries are never overwritten.
type CollectedEmail struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	UserID    *int64    `json:"user_id,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Mobile    string    `json:"mobile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
