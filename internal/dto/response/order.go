package response

import (
	"time"

	"smart-dine/internal/data/entity"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ID         string  `json:"id"`
	MenuItemID *string `json:"menu_item"`
	ItemName   string  `json:"item_name"`
	ItemPrice  string  `json:"item_price"`
	Quantity   int     `json:"quantity"`
	Subtotal   string  `json:"subtotal"`
}

type OrderResponse struct {
	ID                  string              `json:"id"`
	UserID              *string             `json:"user"`
	UserEmail           *string             `json:"user_email"`
	CustomerName        string              `json:"customer_name"`
	CustomerEmail       string              `json:"customer_email"`
	CustomerPhone       string              `json:"customer_phone"`
	CustomerAddress     string              `json:"customer_address"`
	OrderType           string              `json:"order_type"`
	Status              string              `json:"status"`
	PaymentStatus       string              `json:"payment_status"`
	Subtotal            string              `json:"subtotal"`
	Tax                 string              `json:"tax"`
	DeliveryFee         string              `json:"delivery_fee"`
	Total               string              `json:"total"`
	SpecialInstructions string              `json:"special_instructions"`
	StripePaymentID     string              `json:"stripe_payment_id"`
	Items               []OrderItemResponse `json:"items"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// OrderTrackResponse is the public tracking view; it omits contact details.
type OrderTrackResponse struct {
	ID            string              `json:"id"`
	OrderType     string              `json:"order_type"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	Total         string              `json:"total"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type OrderStatusResponse struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func orderItemsToResponse(items []*entity.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemResponse{
			ID:         it.ID.String(),
			MenuItemID: uuidString(it.MenuItemID),
			ItemName:   it.ItemName,
			ItemPrice:  it.ItemPrice.StringFixed(2),
			Quantity:   it.Quantity,
			Subtotal:   it.Subtotal.StringFixed(2),
		})
	}
	return out
}

func OrderToResponse(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:                  o.ID.String(),
		UserID:              uuidString(o.UserID),
		UserEmail:           o.UserEmail,
		CustomerName:        o.CustomerName,
		CustomerEmail:       o.CustomerEmail,
		CustomerPhone:       o.CustomerPhone,
		CustomerAddress:     o.CustomerAddress,
		OrderType:           string(o.OrderType),
		Status:              o.Status,
		PaymentStatus:       o.PaymentStatus,
		Subtotal:            o.Subtotal.StringFixed(2),
		Tax:                 o.Tax.StringFixed(2),
		DeliveryFee:         o.DeliveryFee.StringFixed(2),
		Total:               o.Total.StringFixed(2),
		SpecialInstructions: o.SpecialInstructions,
		StripePaymentID:     o.StripePaymentID,
		Items:               orderItemsToResponse(o.Items),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func OrdersToResponse(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderToResponse(o))
	}
	return out
}

func OrderToTrackResponse(o *entity.Order) OrderTrackResponse {
	return OrderTrackResponse{
		ID:            o.ID.String(),
		OrderType:     string(o.OrderType),
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total.StringFixed(2),
		Items:         orderItemsToResponse(o.Items),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
