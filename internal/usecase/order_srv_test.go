package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/dto/request"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testOrderConfig = utils.OrderConfig{
	TaxRate:     decimal.RequireFromString("0.05"),
	DeliveryFee: decimal.NewFromInt(150),
}

func lines(amounts ...string) []*entity.OrderItem {
	items := make([]*entity.OrderItem, 0, len(amounts))
	for _, a := range amounts {
		items = append(items, &entity.OrderItem{Subtotal: decimal.RequireFromString(a)})
	}
	return items
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		items     []*entity.OrderItem
		orderType entity.OrderType
		tax       string
		fee       string
		total     string
	}{
		{"delivery adds fee", lines("200.00", "50.00"), entity.OrderTypeDelivery, "12.50", "150.00", "412.50"},
		{"pickup has no fee", lines("200.00", "50.00"), entity.OrderTypePickup, "12.50", "0.00", "262.50"},
		{"dine in rounds tax", lines("99.99"), entity.OrderTypeDineIn, "5.00", "0.00", "104.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.orderType, testOrderConfig)
			assert.Equal(t, tt.tax, got.Tax.StringFixed(2))
			assert.Equal(t, tt.fee, got.DeliveryFee.StringFixed(2))
			assert.Equal(t, tt.total, got.Total.StringFixed(2))
		})
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	repo, _ := newMemRepo()
	svc := NewOrderService(repo, testOrderConfig, zap.NewNop())

	_, err := svc.Create(context.Background(), nil, &request.CreateOrderRequest{}, OriginStorefront)
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.CodeEmptyOrder)
	assert.Equal(t, "Order must contain at least one item.", appErr.Message)
}

func strPtr(s string) *string { return &s }

func deliveryRequest(items ...request.OrderItemRequest) *request.CreateOrderRequest {
	return &request.CreateOrderRequest{
		CustomerName:    "Ali",
		CustomerEmail:   "ali@example.com",
		CustomerAddress: "12 Mall Road",
		OrderType:       "delivery",
		Items:           items,
	}
}

func TestCreateOrder_SnapshotsCatalogPrices(t *testing.T) {
	repo, mem := newMemRepo()
	svc := NewOrderService(repo, testOrderConfig, zap.NewNop())
	biryani := mem.menuItems.add("Biryani", "100.00", true)

	resp, err := svc.Create(context.Background(), nil, deliveryRequest(
		request.OrderItemRequest{MenuItemID: strPtr(biryani.ID.String()), Name: "Fake", Price: decimal.NewFromInt(1), Quantity: 2},
		request.OrderItemRequest{Name: "Lassi", Price: decimal.NewFromInt(50), Quantity: 1},
	), OriginStorefront)
	require.NoError(t, err)

	stored := mem.orders.byID[uuid.MustParse(resp.ID)]
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 2)

	assert.Equal(t, "Biryani", stored.Items[0].ItemName)
	assert.Equal(t, "100.00", stored.Items[0].ItemPrice.StringFixed(2))
	assert.Equal(t, &biryani.ID, stored.Items[0].MenuItemID)
	assert.Equal(t, "200.00", stored.Items[0].Subtotal.StringFixed(2))
	assert.Nil(t, stored.Items[1].MenuItemID)
	assert.Equal(t, "Lassi", stored.Items[1].ItemName)

	assert.Equal(t, "250.00", stored.Subtotal.StringFixed(2))
	assert.Equal(t, "12.50", stored.Tax.StringFixed(2))
	assert.Equal(t, "150.00", stored.DeliveryFee.StringFixed(2))
	assert.Equal(t, "412.50", stored.Total.StringFixed(2))
	assert.Equal(t, entity.OrderStatusPending, stored.Status)
	assert.Equal(t, entity.PaymentStatusPending, stored.PaymentStatus)
}

func TestCreateOrder_UnavailableItem(t *testing.T) {
	repo, mem := newMemRepo()
	svc := NewOrderService(repo, testOrderConfig, zap.NewNop())
	soldOut := mem.menuItems.add("Haleem", "300.00", false)

	_, err := svc.Create(context.Background(), nil, deliveryRequest(
		request.OrderItemRequest{MenuItemID: strPtr(soldOut.ID.String()), Quantity: 1},
	), OriginStorefront)

	appErr := requireAppError(t, err, http.StatusBadRequest, utils.CodeItemUnavailable)
	assert.Equal(t, "Haleem is currently unavailable.", appErr.Message)
	assert.Empty(t, mem.orders.byID)
}

func TestCreateOrder_GuestAndSignedIn(t *testing.T) {
	repo, mem := newMemRepo()
	svc := NewOrderService(repo, testOrderConfig, zap.NewNop())
	item := request.OrderItemRequest{Name: "Chai", Price: decimal.NewFromInt(80), Quantity: 1}
	ctx := context.Background()

	guest, err := svc.Create(ctx, nil, deliveryRequest(item), OriginStorefront)
	require.NoError(t, err)
	assert.Nil(t, guest.UserID)
	assert.Nil(t, mem.orders.byID[uuid.MustParse(guest.ID)].UserID)

	userID := uuid.New()
	owned, err := svc.Create(ctx, &userID, deliveryRequest(item), OriginStorefront)
	require.NoError(t, err)
	require.NotNil(t, owned.UserID)
	assert.Equal(t, userID.String(), *owned.UserID)
	assert.Equal(t, &userID, mem.orders.byID[uuid.MustParse(owned.ID)].UserID)
}

func TestCreateOrder_DeliveryNeedsAddress(t *testing.T) {
	repo, _ := newMemRepo()
	svc := NewOrderService(repo, testOrderConfig, zap.NewNop())
	req := deliveryRequest(request.OrderItemRequest{Name: "Chai", Price: decimal.NewFromInt(80), Quantity: 1})
	req.CustomerAddress = ""

	_, err := svc.Create(context.Background(), nil, req, OriginStorefront)
	requireAppError(t, err, http.StatusBadRequest, utils.CodeValidation)
}

func seedOrder(mem *memRepo, paymentStatus string) *entity.Order {
	order := &entity.Order{
		Base:          entity.NewBase(time.Now()),
		OrderType:     entity.OrderTypePickup,
		Status:        entity.OrderStatusPending,
		PaymentStatus: paymentStatus,
	}
	mem.orders.byID[order.ID] = order
	return order
}

func TestUpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name        string
		initialPay  string
		req         request.UpdateOrderStatusRequest
		wantStatus  string
		wantPay     string
		wantMessage string
	}{
		{"delivered settles unpaid", entity.PaymentStatusPending,
			request.UpdateOrderStatusRequest{Status: entity.OrderStatusDelivered},
			entity.OrderStatusDelivered, entity.PaymentStatusPaid, "Order status updated to delivered"},
		{"cancel refunds paid", entity.PaymentStatusPaid,
			request.UpdateOrderStatusRequest{Status: entity.OrderStatusCancelled},
			entity.OrderStatusCancelled, entity.PaymentStatusRefunded, "Order status updated to cancelled"},
		{"cancel leaves unpaid alone", entity.PaymentStatusPending,
			request.UpdateOrderStatusRequest{Status: entity.OrderStatusCancelled},
			entity.OrderStatusCancelled, entity.PaymentStatusPending, "Order status updated to cancelled"},
		{"payment only", entity.PaymentStatusPending,
			request.UpdateOrderStatusRequest{PaymentStatus: entity.PaymentStatusPaid},
			entity.OrderStatusPending, entity.PaymentStatusPaid, "Payment status updated to paid"},
		{"explicit payment wins", entity.PaymentStatusPending,
			request.UpdateOrderStatusRequest{Status: entity.OrderStatusDelivered, PaymentStatus: entity.PaymentStatusPending},
			entity.OrderStatusDelivered, entity.PaymentStatusPending, "Order status updated to delivered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mem := newMemRepo()
			svc := NewOrderService(repo, testOrderConfig, zap.NewNop())
			order := seedOrder(mem, tt.initialPay)

			msg, resp, err := svc.UpdateStatus(context.Background(), order.ID, &tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMessage, msg)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantPay, resp.PaymentStatus)
			assert.Equal(t, tt.wantPay, mem.orders.byID[order.ID].PaymentStatus)
		})
	}
}

func TestUpdateOrderStatus_Errors(t *testing.T) {
	repo, mem := newMemRepo()
	svc := NewOrderService(repo, testOrderConfig, zap.NewNop())
	order := seedOrder(mem, entity.PaymentStatusPending)
	ctx := context.Background()

	_, _, err := svc.UpdateStatus(ctx, order.ID, &request.UpdateOrderStatusRequest{})
	requireAppError(t, err, http.StatusBadRequest, utils.CodeMissingStatus)

	_, _, err = svc.UpdateStatus(ctx, uuid.New(), &request.UpdateOrderStatusRequest{Status: "ready"})
	requireAppError(t, err, http.StatusNotFound, utils.CodeNotFound)
}
