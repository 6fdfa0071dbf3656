package models

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Reservation is a booked appointment. EndTime is always StartTime plus the
// treatment duration and is never set by callers.
type Reservation struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	TreatmentID int64             `json:"treatment_id"`
	Date        time.Time         `json:"-"`
	StartTime   ClockTime         `json:"start_time"`
	EndTime     ClockTime         `json:"end_time"`
	Status      ReservationStatus `json:"status"`
	Notes       string            `json:"notes"`
	// Language is the site language the booking was made in; emails follow it.
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by listing queries that join treatments and users.
	TreatmentTitle Localized `json:"treatment_title"`
	CustomerName   string    `json:"customer_name,omitempty"`
	CustomerEmail  string    `json:"customer_email,omitempty"`
	CustomerMobile string    `json:"customer_mobile,omitempty"`
}

// DateString is the calendar date as YYYY-MM-DD.
func (r *Reservation) DateString() string {
	return r.Date.Format(DateLayout)
}

// Active reports whether the reservation still occupies its slot.
func (r *Reservation) Active() bool {
	return r.Status != StatusCancelled
}

// ReservationRequest is the customer's booking input.
type ReservationRequest struct {
	TreatmentID int64  `json:"treatment_id" binding:"required,gt=0"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	Notes       string `json:"notes"`
}

// ReservationFilter narrows the admin listing; zero values match everything.
type ReservationFilter struct {
	From   *time.Time
	To     *time.Time
	Status ReservationStatus
	Limit  int
	Offset int
}

// Slot is a bookable interval in "HH:MM" form.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
