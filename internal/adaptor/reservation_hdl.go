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

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// Create handles POST /api/reservations/create (guest or signed in)
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.Create(r.Context(), optionalUser(r), &req, false)
	if err != nil {
		writeServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created successfully", reservation)
}

// ListMine handles GET /api/reservations (protected)
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
		return
	}

	reservations, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", reservations)
}

// Cancel handles DELETE /api/reservations/cancel/{id} (protected)
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
		return
	}

	id, ok := pathID(w, r, "Reservation not found")
	if !ok {
		return
	}

	actor := usecase.Actor{UserID: userID, IsStaff: utils.IsStaffFromContext(r.Context())}
	reservation, err := h.service.Cancel(r.Context(), id, actor)
	if err != nil {
		writeServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation cancelled successfully", reservation)
}

// ==================== ADMIN ====================

func (h *ReservationHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entity.ReservationFilter{Status: strings.TrimSpace(query.Get("status"))}

	var ok bool
	if filter.Date, ok = queryDate(w, query, "date"); !ok {
		return
	}
	if filter.DateFrom, ok = queryDate(w, query, "date_from"); !ok {
		return
	}
	if filter.DateTo, ok = queryDate(w, query, "date_to"); !ok {
		return
	}

	reservations, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.log, err, "admin list reservations")
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", reservations)
}

func (h *ReservationHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.Create(r.Context(), nil, &req, true)
	if err != nil {
		writeServiceError(w, h.log, err, "admin create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created successfully", reservation)
}

func (h *ReservationHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Reservation not found")
	if !ok {
		return
	}

	reservation, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation retrieved successfully", reservation)
}

func (h *ReservationHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Reservation not found")
	if !ok {
		return
	}

	var req request.UpdateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation updated successfully", reservation)
}

func (h *ReservationHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Reservation not found")
	if !ok {
		return
	}

	var req request.UpdateReservationStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update reservation status")
		return
	}

	utils.ResponseSuccess(w, "Reservation updated successfully", resp)
}

func (h *ReservationHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Reservation not found")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation deleted successfully", nil)
}
