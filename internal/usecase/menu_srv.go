package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/dto/request"
	"smart-dine/internal/dto/response"
	"smart-dine/pkg/cache"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	cacheKeyCategories = "menu:categories"
	cacheKeyFeatured   = "menu:featured"
)

// MenuService serves the public catalog and the back-office catalog editor.
// Public category and featured listings are cached; every write invalidates them.
type MenuService interface {
	ListMenu(ctx context.Context, filter entity.MenuFilter) ([]response.MenuItemResponse, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*response.MenuItemResponse, error)
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
	ListFeatured(ctx context.Context) ([]response.MenuItemResponse, error)

	AdminListCategories(ctx context.Context) ([]response.CategoryResponse, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *request.UpdateCategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	AdminListMenu(ctx context.Context, filter entity.MenuFilter) ([]response.MenuItemResponse, error)
	AdminGetMenuItem(ctx context.Context, id uuid.UUID) (*response.MenuItemResponse, error)
	CreateMenuItem(ctx context.Context, req *request.CreateMenuItemRequest) (*response.MenuItemResponse, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, req *request.UpdateMenuItemRequest) (*response.MenuItemResponse, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

type menuService struct {
	repo     *repository.Repository
	cache    cache.Cache
	cacheTTL time.Duration
	log      *zap.Logger
	now      clock
}

func NewMenuService(repo *repository.Repository, c cache.Cache, cacheTTL time.Duration, log *zap.Logger) MenuService {
	if c == nil {
		c = cache.Noop{}
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	return &menuService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log.With(zap.String("service", "menu")),
		now:      time.Now,
	}
}

// ==================== PUBLIC ====================

func (s *menuService) ListMenu(ctx context.Context, filter entity.MenuFilter) ([]response.MenuItemResponse, error) {
	available := true
	filter.IsAvailable = &available

	items, err := s.repo.MenuItem.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return response.MenuItemsToResponse(items), nil
}

func (s *menuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*response.MenuItemResponse, error) {
	item, err := s.repo.MenuItem.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsAvailable {
		return nil, utils.ErrNotFound("Menu item not found")
	}

	resp := response.MenuItemToResponse(item)
	return &resp, nil
}

func (s *menuService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	var cached []response.CategoryResponse
	if s.fromCache(ctx, cacheKeyCategories, &cached) {
		return cached, nil
	}

	categories, err := s.repo.Category.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}

	resp := response.CategoriesToResponse(categories)
	s.toCache(ctx, cacheKeyCategories, resp)
	return resp, nil
}

func (s *menuService) ListFeatured(ctx context.Context) ([]response.MenuItemResponse, error) {
	var cached []response.MenuItemResponse
	if s.fromCache(ctx, cacheKeyFeatured, &cached) {
		return cached, nil
	}

	featured, available := true, true
	items, err := s.repo.MenuItem.FindAll(ctx, entity.MenuFilter{
		IsFeatured:  &featured,
		IsAvailable: &available,
		Sort:        entity.MenuSortRating,
	})
	if err != nil {
		return nil, err
	}

	resp := response.MenuItemsToResponse(items)
	s.toCache(ctx, cacheKeyFeatured, resp)
	return resp, nil
}

// Cache errors degrade to a database read.
func (s *menuService) fromCache(ctx context.Context, key string, dest any) bool {
	hit, err := s.cache.GetInto(ctx, key, dest)
	if err != nil {
		s.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *menuService) toCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *menuService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyCategories, cacheKeyFeatured); err != nil {
		s.log.Warn("Cache invalidation failed", zap.Error(err))
	}
}

// ==================== CATEGORIES ====================

func (s *menuService) AdminListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx, false)
	if err != nil {
		return nil, err
	}
	return response.CategoriesToResponse(categories), nil
}

func (s *menuService) findCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, utils.ErrNotFound("Category not found")
	}
	return category, nil
}

func (s *menuService) GetCategory(ctx context.Context, id uuid.UUID) (*response.CategoryResponse, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *menuService) CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	slug := utils.Slugify(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	category := &entity.Category{
		Base:        entity.NewBase(s.now()),
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		return nil, duplicateOr(err, "A category with this name or slug already exists.")
	}
	s.invalidate(ctx)

	s.log.Info("Category created", zap.String("id", category.ID.String()), zap.String("slug", slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *menuService) UpdateCategory(ctx context.Context, id uuid.UUID, req *request.UpdateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		if slug := utils.Slugify(*req.Slug); slug != "" {
			category.Slug = slug
		}
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.UpdatedAt = s.now()

	if err := s.repo.Category.Update(ctx, category); err != nil {
		return nil, duplicateOr(err, "A category with this name or slug already exists.")
	}
	s.invalidate(ctx)

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

// DeleteCategory detaches the category's items rather than deleting them.
func (s *menuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findCategory(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Category.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	s.log.Info("Category deleted", zap.String("id", id.String()))
	return nil
}

// ==================== MENU ITEMS ====================

func (s *menuService) AdminListMenu(ctx context.Context, filter entity.MenuFilter) ([]response.MenuItemResponse, error) {
	items, err := s.repo.MenuItem.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return response.MenuItemsToResponse(items), nil
}

func (s *menuService) findMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.repo.MenuItem.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, utils.ErrNotFound("Menu item not found")
	}
	return item, nil
}

func (s *menuService) AdminGetMenuItem(ctx context.Context, id uuid.UUID) (*response.MenuItemResponse, error) {
	item, err := s.findMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.MenuItemToResponse(item)
	return &resp, nil
}

// resolveCategory parses a category reference. An empty string means no category.
func (s *menuService) resolveCategory(ctx context.Context, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, utils.ErrBadRequest(utils.CodeValidation, "category: Must be a valid UUID")
	}
	if _, err := s.findCategory(ctx, id); err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			return nil, utils.ErrBadRequest(utils.CodeValidation, "category: Category not found")
		}
		return nil, err
	}
	return &id, nil
}

func validatePrice(price decimal.Decimal) *utils.AppError {
	if price.IsNegative() {
		return utils.ErrBadRequest(utils.CodeValidation, "price: Must be at least 0")
	}
	return nil
}

func (s *menuService) CreateMenuItem(ctx context.Context, req *request.CreateMenuItemRequest) (*response.MenuItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}
	if appErr := validatePrice(req.Price); appErr != nil {
		return nil, appErr
	}

	item := &entity.MenuItem{
		Base:        entity.NewBase(s.now()),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		IsVeg:       req.IsVeg,
		Rating:      req.Rating,
		IsFeatured:  req.IsFeatured,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
		Image:       req.Image,
	}

	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = categoryID
	}

	if err := s.repo.MenuItem.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.log.Info("Menu item created", zap.String("id", item.ID.String()))

	// reload for the joined category name
	return s.AdminGetMenuItem(ctx, item.ID)
}

func (s *menuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, req *request.UpdateMenuItemRequest) (*response.MenuItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.CodeValidation, utils.FirstValidationMessage(errs)).WithDetails(errs)
	}

	item, err := s.findMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if appErr := validatePrice(*req.Price); appErr != nil {
			return nil, appErr
		}
		item.Price = *req.Price
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = categoryID
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}
	if req.Rating != nil {
		item.Rating = *req.Rating
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	item.UpdatedAt = s.now()

	if err := s.repo.MenuItem.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	return s.AdminGetMenuItem(ctx, item.ID)
}

func (s *menuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findMenuItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.MenuItem.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	s.log.Info("Menu item deleted", zap.String("id", id.String()))
	return nil
}

// duplicateOr maps a unique violation to a 400 duplicate error.
func duplicateOr(err error, message string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return utils.ErrBadRequest(utils.CodeDuplicate, message)
	}
	return err
}
