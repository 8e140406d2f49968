package adaptor

import (
	"net/http"
	"net/url"
	"strings"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/usecase"
	"smart-dine/pkg/utils"

	"go.uber.org/zap"
)

type MenuHandler struct {
	service usecase.MenuService
	log     *zap.Logger
}

func NewMenuHandler(service usecase.MenuService, log *zap.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		log:     log.With(zap.String("handler", "menu")),
	}
}

func menuFilter(query url.Values) entity.MenuFilter {
	return entity.MenuFilter{
		Search:      strings.TrimSpace(query.Get("search")),
		Category:    strings.TrimSpace(query.Get("category")),
		IsAvailable: utils.ParseBoolFilter(query.Get("is_available"), query.Has("is_available")),
		IsFeatured:  utils.ParseBoolFilter(query.Get("is_featured"), query.Has("is_featured")),
		Sort:        entity.MenuSort(query.Get("sort")),
	}
}

// ==================== PUBLIC ====================

// ListMenu handles GET /api/menu
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenu(r.Context(), menuFilter(r.URL.Query()))
	if err != nil {
		writeServiceError(w, h.log, err, "list menu")
		return
	}

	utils.ResponseSuccess(w, "Menu retrieved successfully", items)
}

// GetMenuItem handles GET /api/menu/{id}
func (h *MenuHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Menu item not found")
	if !ok {
		return
	}

	item, err := h.service.GetMenuItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get menu item")
		return
	}

	utils.ResponseSuccess(w, "Menu item retrieved successfully", item)
}

// ListCategories handles GET /api/menu/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved successfully", categories)
}

// ListFeatured handles GET /api/menu/featured
func (h *MenuHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListFeatured(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list featured")
		return
	}

	utils.ResponseSuccess(w, "Featured items retrieved successfully", items)
}

// ==================== ADMIN: CATEGORIES ====================

func (h *MenuHandler) AdminListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.AdminListCategories(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "admin list categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved successfully", categories)
}

func (h *MenuHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Category not found")
	if !ok {
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get category")
		return
	}

	utils.ResponseSuccess(w, "Category retrieved successfully", category)
}

func (h *MenuHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "Category created successfully", category)
}

func (h *MenuHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Category not found")
	if !ok {
		return
	}

	var req request.UpdateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update category")
		return
	}

	utils.ResponseSuccess(w, "Category updated successfully", category)
}

func (h *MenuHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Category not found")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete category")
		return
	}

	utils.ResponseSuccess(w, "Category deleted successfully", nil)
}

// ==================== ADMIN: MENU ITEMS ====================

func (h *MenuHandler) AdminListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.AdminListMenu(r.Context(), menuFilter(r.URL.Query()))
	if err != nil {
		writeServiceError(w, h.log, err, "admin list menu")
		return
	}

	utils.ResponseSuccess(w, "Menu items retrieved successfully", items)
}

func (h *MenuHandler) AdminGetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Menu item not found")
	if !ok {
		return
	}

	item, err := h.service.AdminGetMenuItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "admin get menu item")
		return
	}

	utils.ResponseSuccess(w, "Menu item retrieved successfully", item)
}

func (h *MenuHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMenuItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.CreateMenuItem(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create menu item")
		return
	}

	utils.ResponseCreated(w, "Menu item created successfully", item)
}

func (h *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Menu item not found")
	if !ok {
		return
	}

	var req request.UpdateMenuItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.UpdateMenuItem(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update menu item")
		return
	}

	utils.ResponseSuccess(w, "Menu item updated successfully", item)
}

func (h *MenuHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Menu item not found")
	if !ok {
		return
	}

	if err := h.service.DeleteMenuItem(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete menu item")
		return
	}

	utils.ResponseSuccess(w, "Menu item deleted successfully", nil)
}
