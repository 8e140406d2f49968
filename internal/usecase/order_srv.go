package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/pkg/metrics"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Order origins, used for metrics labels.
const (
	OriginStorefront = "storefront"
	OriginAdmin      = "admin"
)

// Totals is the price breakdown of an order, fixed at creation.
type Totals struct {
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

type OrderService interface {
	// Create places an order for userID, or a guest order when userID is nil.
	Create(ctx context.Context, userID *uuid.UUID, req *request.CreateOrderRequest, origin string) (*response.OrderResponse, error)
	History(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	Track(ctx context.Context, id uuid.UUID) (*response.OrderTrackResponse, error)

	List(ctx context.Context, filter entity.OrderFilter) ([]response.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response.OrderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateOrderRequest) (*response.OrderResponse, error)
	// UpdateStatus returns the confirmation message along with the new state.
	UpdateStatus(ctx context.Context, id uuid.UUID, req *request.UpdateOrderStatusRequest) (string, *response.OrderStatusResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	repo   *repository.Repository
	config utils.OrderConfig
	log    *zap.Logger
	now    clock
}

func NewOrderService(repo *repository.Repository, config utils.OrderConfig, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "order")),
		now:    time.Now,
	}
}

// ComputeTotals prices the items: tax is a fixed rate of the subtotal and the
// delivery fee applies to delivery orders only.
func ComputeTotals(items []*entity.OrderItem, orderType entity.OrderType, config utils.OrderConfig) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal)
	}

	t := Totals{
		Subtotal:    subtotal,
		Tax:         subtotal.Mul(config.TaxRate).Round(2),
		DeliveryFee: decimal.Zero,
	}
	if orderType == entity.OrderTypeDelivery {
		t.DeliveryFee = config.DeliveryFee
	}
	t.Total = t.Subtotal.Add(t.Tax).Add(t.DeliveryFee)
	return t
}

func (s *orderService) Create(ctx context.Context, userID *uuid.UUID, req *request.CreateOrderRequest, origin string) (*response.OrderResponse, error) {
	// 1. Validate payload
	if len(req.Items) == 0 {
		return nil, utils.ErrBadRequest(utils.CodeEmptyOrder, "Order must contain at least one item.")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	now := s.now()
	order := &entity.Order{
		Base:                entity.NewBase(now),
		UserID:              userID,
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerEmail:       strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:       strings.TrimSpace(req.CustomerPhone),
		CustomerAddress:     strings.TrimSpace(req.CustomerAddress),
		OrderType:           entity.OrderType(req.OrderType),
		Status:              entity.OrderStatusPending,
		PaymentStatus:       entity.PaymentStatusPending,
		SpecialInstructions: req.SpecialInstructions,
		StripePaymentID:     req.StripePaymentID,
	}
	if req.PaymentStatus != "" {
		order.PaymentStatus = req.PaymentStatus
	}

	// 2. Snapshot line items
	items, err := s.buildItems(ctx, order.ID, req.Items, now)
	if err != nil {
		return nil, err
	}
	order.Items = items

	// 3. Totals are fixed here and never recomputed
	totals := ComputeTotals(items, order.OrderType, s.config)
	order.Subtotal = totals.Subtotal
	order.Tax = totals.Tax
	order.DeliveryFee = totals.DeliveryFee
	order.Total = totals.Total

	// 4. Order and items in one transaction
	if err := s.repo.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	metrics.RecordOrderCreated(string(order.OrderType), origin)
	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_type", string(order.OrderType)),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Bool("guest", userID == nil))

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// buildItems resolves catalog references. A known menu item contributes its
// current name and price; an unknown or absent reference uses the payload's.
func (s *orderService) buildItems(ctx context.Context, orderID uuid.UUID, reqItems []request.OrderItemRequest, now time.Time) ([]*entity.OrderItem, error) {
	var ids []uuid.UUID
	for _, it := range reqItems {
		if it.MenuItemID == nil {
			continue
		}
		if id, err := uuid.Parse(*it.MenuItemID); err == nil {
			ids = append(ids, id)
		}
	}

	catalog := map[uuid.UUID]*entity.MenuItem{}
	if len(ids) > 0 {
		found, err := s.repo.MenuItem.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		catalog = found
	}

	items := make([]*entity.OrderItem, 0, len(reqItems))
	for i, it := range reqItems {
		item := &entity.OrderItem{
			BaseSimple: entity.NewBaseSimple(now),
			OrderID:    orderID,
			ItemName:   strings.TrimSpace(it.Name),
			ItemPrice:  it.Price,
			Quantity:   it.Quantity,
		}

		var menuItem *entity.MenuItem
		if it.MenuItemID != nil {
			if id, err := uuid.Parse(*it.MenuItemID); err == nil {
				menuItem = catalog[id]
			}
		}

		if menuItem != nil {
			if !menuItem.IsAvailable {
				return nil, utils.ErrBadRequest(utils.CodeItemUnavailable,
					fmt.Sprintf("%s is currently unavailable.", menuItem.Name))
			}
			item.MenuItemID = &menuItem.ID
			item.ItemName = menuItem.Name
			item.ItemPrice = menuItem.Price
		}

		if item.ItemName == "" {
			field := fmt.Sprintf("items[%d].name", i)
			return nil, utils.ErrBadRequest(utils.CodeValidation, field+": This field is required").
				WithDetails(map[string]string{field: "This field is required"})
		}
		if item.ItemPrice.IsNegative() {
			field := fmt.Sprintf("items[%d].price", i)
			return nil, utils.ErrBadRequest(utils.CodeValidation, field+": Must be at least 0").
				WithDetails(map[string]string{field: "Must be at least 0"})
		}

		item.Subtotal = item.ItemPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}

	return items, nil
}

func (s *orderService) History(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Order.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.OrdersToResponse(orders), page.Page, page.Limit(), total), nil
}

func (s *orderService) findOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, utils.ErrNotFound("Order not found")
	}
	return order, nil
}

func (s *orderService) Track(ctx context.Context, id uuid.UUID) (*response.OrderTrackResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.OrderToTrackResponse(order)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, filter entity.OrderFilter) ([]response.OrderResponse, error) {
	orders, err := s.repo.Order.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return response.OrdersToResponse(orders), nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*response.OrderResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.OrderToResponse(order)
	return &resp, nil
}

// Update edits contact details and the payment reference. Items and totals are immutable.
func (s *orderService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		order.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerEmail != nil {
		order.CustomerEmail = strings.TrimSpace(*req.CustomerEmail)
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.CustomerAddress != nil {
		order.CustomerAddress = strings.TrimSpace(*req.CustomerAddress)
	}
	if req.SpecialInstructions != nil {
		order.SpecialInstructions = *req.SpecialInstructions
	}
	if req.StripePaymentID != nil {
		order.StripePaymentID = *req.StripePaymentID
	}
	order.UpdatedAt = s.now()

	if order.OrderType == entity.OrderTypeDelivery && order.CustomerAddress == "" {
		return nil, utils.ErrBadRequest(utils.CodeValidation, "customer_address: This field is required").
			WithDetails(map[string]string{"customer_address": "This field is required"})
	}

	if err := s.repo.Order.Update(ctx, order); err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *request.UpdateOrderStatusRequest) (string, *response.OrderStatusResponse, error) {
	status := strings.TrimSpace(req.Status)
	paymentStatus := strings.TrimSpace(req.PaymentStatus)

	if status == "" && paymentStatus == "" {
		return "", nil, utils.ErrBadRequest(utils.CodeMissingStatus, "Status or payment_status is required")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return "", nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return "", nil, err
	}

	var message string
	if status != "" {
		order.ApplyStatus(status)
		message = fmt.Sprintf("Order status updated to %s", status)
	} else {
		message = fmt.Sprintf("Payment status updated to %s", paymentStatus)
	}
	// an explicit payment status overrides the derived one
	if paymentStatus != "" {
		order.PaymentStatus = paymentStatus
	}
	order.UpdatedAt = s.now()

	if err := s.repo.Order.UpdateStatus(ctx, order); err != nil {
		return "", nil, err
	}

	metrics.RecordOrderTransition(order.Status, order.PaymentStatus)
	s.log.Info("Order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.Status),
		zap.String("payment_status", order.PaymentStatus))

	return message, &response.OrderStatusResponse{
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
	}, nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findOrder(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Order.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}

// errNotAuthorized is the ownership failure shared by order and reservation flows.
func errNotAuthorized(message string) *utils.AppError {
	return utils.NewAppError(http.StatusForbidden, utils.CodeNotAuthorized, message)
}
