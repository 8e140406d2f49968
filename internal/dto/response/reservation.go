package response

import (
	"time"

	"smart-dine/internal/data/entity"
)

type ReservationResponse struct {
	ID              string    `json:"id"`
	UserID          *string   `json:"user"`
	UserEmail       *string   `json:"user_email"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Guests          int       `json:"guests"`
	TableNumber     *string   `json:"table_number"`
	Status          string    `json:"status"`
	SpecialRequests string    `json:"special_requests"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ReservationStatusResponse struct {
	Status      string  `json:"status"`
	TableNumber *string `json:"table_number"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID.String(),
		UserID:          uuidString(r.UserID),
		UserEmail:       r.UserEmail,
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Date:            r.Date.Format(time.DateOnly),
		Time:            r.Time,
		Guests:          r.Guests,
		TableNumber:     r.TableNumber,
		Status:          r.Status,
		SpecialRequests: r.SpecialRequests,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func ReservationsToResponse(reservations []*entity.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, ReservationToResponse(r))
	}
	return out
}
