package models

import "time"

// EmailMessage is a rendered email ready for delivery.
type EmailMessage struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
	// Kind names the template, for logs and the activity trail.
	Kind          string `json:"kind"`
	ReservationID int64  `json:"reservation_id,omitempty"`
}

// Activity event types.
const (
	ActivityReservationCreated   = "reservation.created"
	ActivityReservationCancelled = "reservation.cancelled"
	ActivityReservationCompleted = "reservation.completed"
	ActivityReservationStatus    = "reservation.status_changed"
	ActivityEmailFailed          = "email.failed"
	ActivityEmailSent            = "email.sent"
)

// ActivityEvent is an append-only audit record kept in MongoDB.
type ActivityEvent struct {
	Type          string         `bson:"type" json:"type"`
	ReservationID int64          `bson:"reservation_id,omitempty" json:"reservation_id,omitempty"`
	UserID        int64          `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Payload       map[string]any `bson:"payload,omitempty" json:"payload,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
}
