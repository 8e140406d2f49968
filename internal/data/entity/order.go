package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDineIn   OrderType = "dine_in"
)

// Order status values produced or recognised by the system. Staff may store others.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

type Order struct {
	Base
	UserID              *uuid.UUID      `db:"user_id"`
	CustomerName        string          `db:"customer_name"`
	CustomerEmail       string          `db:"customer_email"`
	CustomerPhone       string          `db:"customer_phone"`
	CustomerAddress     string          `db:"customer_address"`
	OrderType           OrderType       `db:"order_type"`
	Status              string          `db:"status"`
	PaymentStatus       string          `db:"payment_status"`
	Subtotal            decimal.Decimal `db:"subtotal"`
	Tax                 decimal.Decimal `db:"tax"`
	DeliveryFee         decimal.Decimal `db:"delivery_fee"`
	Total               decimal.Decimal `db:"total"`
	SpecialInstructions string          `db:"special_instructions"`
	StripePaymentID     string          `db:"stripe_payment_id"`
	UserEmail           *string         `db:"user_email"` // joined
	Items               []*OrderItem
}

// ApplyStatus sets the order status and the payment side effects tied to it:
// delivering an unpaid order settles it, cancelling a paid order refunds it.
func (o *Order) ApplyStatus(status string) {
	o.Status = status
	switch {
	case status == OrderStatusDelivered && o.PaymentStatus == PaymentStatusPending:
		o.PaymentStatus = PaymentStatusPaid
	case status == OrderStatusCancelled && o.PaymentStatus == PaymentStatusPaid:
		o.PaymentStatus = PaymentStatusRefunded
	}
}

// OrderItem snapshots the catalog name and price at order time.
type OrderItem struct {
	BaseSimple
	OrderID    uuid.UUID       `db:"order_id"`
	MenuItemID *uuid.UUID      `db:"menu_item_id"`
	ItemName   string          `db:"item_name"`
	ItemPrice  decimal.Decimal `db:"item_price"`
	Quantity   int             `db:"quantity"`
	Subtotal   decimal.Decimal `db:"subtotal"`
}

// OrderFilter narrows admin order listings. Zero values mean "any".
type OrderFilter struct {
	Status        string
	PaymentStatus string
	OrderType     string
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
}
