package adaptor

import (
	"net/http"
	"strings"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/usecase"
	"smart-dine/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /api/orders (guest or signed in)
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.Create(r.Context(), optionalUser(r), &req, usecase.OriginStorefront)
	if err != nil {
		writeServiceError(w, h.log, err, "create order")
		return
	}

	utils.ResponseCreated(w, "Order placed successfully", order)
}

// History handles GET /api/orders/history (protected)
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
		return
	}

	query := r.URL.Query()
	page := request.NewPaginatedRequest(query.Get("page"), query.Get("per_page"))

	orders, err := h.service.History(r.Context(), userID, page)
	if err != nil {
		writeServiceError(w, h.log, err, "order history")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}

// Track handles GET /api/orders/track/{id}
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Order not found")
	if !ok {
		return
	}

	order, err := h.service.Track(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "track order")
		return
	}

	utils.ResponseSuccess(w, "Order status retrieved successfully", order)
}

// ==================== ADMIN ====================

func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entity.OrderFilter{
		Status:        strings.TrimSpace(query.Get("status")),
		PaymentStatus: strings.TrimSpace(query.Get("payment_status")),
		OrderType:     strings.TrimSpace(query.Get("order_type")),
	}

	var ok bool
	if filter.DateFrom, ok = queryDate(w, query, "date_from"); !ok {
		return
	}
	if filter.DateTo, ok = queryDate(w, query, "date_to"); !ok {
		return
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.log, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.Create(r.Context(), nil, &req, usecase.OriginAdmin)
	if err != nil {
		writeServiceError(w, h.log, err, "admin create order")
		return
	}

	utils.ResponseCreated(w, "Order created successfully", order)
}

func (h *OrderHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Order not found")
	if !ok {
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "Order retrieved successfully", order)
}

func (h *OrderHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Order not found")
	if !ok {
		return
	}

	var req request.UpdateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update order")
		return
	}

	utils.ResponseSuccess(w, "Order updated successfully", order)
}

func (h *OrderHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Order not found")
	if !ok {
		return
	}

	var req request.UpdateOrderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, resp, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, message, resp)
}

func (h *OrderHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Order not found")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete order")
		return
	}

	utils.ResponseSuccess(w, "Order deleted successfully", nil)
}
