package adaptor

import (
	"net/http"

	"smart-dine/internal/dto/request"
	"smart-dine/internal/usecase"
	"smart-dine/pkg/utils"

	"go.uber.org/zap"
)

// AdminHandler serves the back-office session and reporting endpoints.
// Catalog, order, reservation and user management use the domain handlers.
type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.AdminLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req, sessionMeta(r))
	if err != nil {
		writeServiceError(w, h.log, err, "admin login")
		return
	}

	utils.ResponseSuccess(w, "Login successful!", resp)
}

// Check handles GET /api/admin/check
func (h *AdminHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
		return
	}

	resp, err := h.service.Check(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "admin check")
		return
	}

	utils.ResponseSuccess(w, "Authorized", resp)
}

// Dashboard handles GET /api/admin/dashboard/stats
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "dashboard stats")
		return
	}

	utils.ResponseSuccess(w, "Dashboard stats retrieved", stats)
}

// SalesReport handles GET /api/admin/reports/sales?days=
func (h *AdminHandler) SalesReport(w http.ResponseWriter, r *http.Request) {
	days := usecase.ClampDays(utils.ParseInt(r.URL.Query().Get("days"), 30))

	report, err := h.service.SalesReport(r.Context(), days)
	if err != nil {
		writeServiceError(w, h.log, err, "sales report")
		return
	}

	utils.ResponseSuccess(w, "Sales report retrieved", report)
}

// PopularItems handles GET /api/admin/reports/popular-items?limit=
func (h *AdminHandler) PopularItems(w http.ResponseWriter, r *http.Request) {
	limit := utils.ClampInt(r.URL.Query().Get("limit"), 10, 1, 100)

	items, err := h.service.PopularItems(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.log, err, "popular items")
		return
	}

	utils.ResponseSuccess(w, "Popular items retrieved", items)
}
