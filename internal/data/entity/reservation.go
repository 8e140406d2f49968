package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// Reservation status is an open string; only pending and cancelled are set by the system.
type Reservation struct {
	Base
	UserID          *uuid.UUID `db:"user_id"`
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	Phone           string     `db:"phone"`
	Date            time.Time  `db:"date"`
	Time            string     `db:"time"` // HH:MM:SS
	Guests          int        `db:"guests"`
	TableNumber     *string    `db:"table_number"`
	Status          string     `db:"status"`
	SpecialRequests string     `db:"special_requests"`
	UserEmail       *string    `db:"user_email"` // joined
}

// IsOwnedBy reports whether userID created the reservation.
func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID != nil && *r.UserID == userID
}

type ReservationFilter struct {
	Status   string
	Date     *time.Time
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}
