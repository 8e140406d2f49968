package request

import "github.com/shopspring/decimal"

const (
	PaymentForFood        = "food_order"
	PaymentForReservation = "table_reservation"
)

type CheckoutItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type CheckoutSessionRequest struct {
	OrderType   string          `json:"order_type" validate:"omitempty,oneof=food_order table_reservation"`
	Items       []CheckoutItem  `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Name        string          `json:"name"`
	TableName   string          `json:"table_name"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Guests      *int            `json:"guests,omitempty"`
}

type PaymentIntentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	OrderType string          `json:"order_type"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
}
