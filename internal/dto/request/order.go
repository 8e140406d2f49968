package request

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	CustomerName        string             `json:"customer_name" validate:"required,max=200"`
	CustomerEmail       string             `json:"customer_email" validate:"required,email"`
	CustomerPhone       string             `json:"customer_phone" validate:"max=20"`
	CustomerAddress     string             `json:"customer_address" validate:"required_if=OrderType delivery"`
	OrderType           string             `json:"order_type" validate:"required,oneof=delivery pickup dine_in"`
	PaymentStatus       string             `json:"payment_status" validate:"omitempty,oneof=pending paid"`
	StripePaymentID     string             `json:"stripe_payment_id" validate:"max=255"`
	SpecialInstructions string             `json:"special_instructions"`
	Items               []OrderItemRequest `json:"items" validate:"dive"`
}

// OrderItemRequest names a catalog item by id, or carries its own name and price.
type OrderItemRequest struct {
	MenuItemID *string         `json:"menu_item_id,omitempty" validate:"omitempty,uuid"`
	Name       string          `json:"name" validate:"max=200"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity" validate:"gte=1,lte=100"`
}

type UpdateOrderRequest struct {
	CustomerName        *string `json:"customer_name,omitempty" validate:"omitempty,min=1,max=200"`
	CustomerEmail       *string `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone       *string `json:"customer_phone,omitempty" validate:"omitempty,max=20"`
	CustomerAddress     *string `json:"customer_address,omitempty"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
	StripePaymentID     *string `json:"stripe_payment_id,omitempty" validate:"omitempty,max=255"`
}

type UpdateOrderStatusRequest struct {
	Status        string `json:"status" validate:"omitempty,max=20"`
	PaymentStatus string `json:"payment_status" validate:"omitempty,oneof=pending paid refunded"`
}
