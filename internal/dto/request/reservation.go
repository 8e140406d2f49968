package request

// CreateReservationRequest keeps date and time as strings so each gets
// its own parse error.
type CreateReservationRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"max=20"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	Guests          *int   `json:"guests,omitempty" validate:"omitempty,gte=1,lte=20"`
	SpecialRequests string `json:"special_requests"`

	// staff only
	Status      string  `json:"status,omitempty" validate:"omitempty,max=20"`
	TableNumber *string `json:"table_number,omitempty" validate:"omitempty,max=20"`
}

type UpdateReservationRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	Guests          *int    `json:"guests,omitempty" validate:"omitempty,gte=1,lte=20"`
	TableNumber     *string `json:"table_number,omitempty" validate:"omitempty,max=20"`
	Status          *string `json:"status,omitempty" validate:"omitempty,max=20"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

type UpdateReservationStatusRequest struct {
	Status      string `json:"status" validate:"omitempty,max=20"`
	TableNumber string `json:"table_number" validate:"omitempty,max=20"`
}
