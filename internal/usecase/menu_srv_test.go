package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/dto/request"
	"smart-dine/pkg/cache"
	"smart-dine/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMenu(t *testing.T) (MenuService, *memRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), zap.NewNop())
	t.Cleanup(func() { c.Close() })

	repo, mem := newMemRepo()
	return NewMenuService(repo, c, time.Minute, zap.NewNop()), mem, mr
}

func TestListMenu_OnlyAvailableAndForwardsFilter(t *testing.T) {
	svc, mem, _ := newTestMenu(t)
	mem.menuItems.add("Biryani", "450.00", true)
	mem.menuItems.add("Haleem", "300.00", false)

	items, err := svc.ListMenu(context.Background(), entity.MenuFilter{
		Search:   "bir",
		Category: "desi",
		Sort:     entity.MenuSortPriceDesc,
	})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Biryani", items[0].Name)

	got := mem.menuItems.lastFilter
	require.NotNil(t, got.IsAvailable)
	assert.True(t, *got.IsAvailable)
	assert.Equal(t, "bir", got.Search)
	assert.Equal(t, "desi", got.Category)
	assert.Equal(t, entity.MenuSortPriceDesc, got.Sort)
}

func TestListMenu_CallerCannotListHiddenItems(t *testing.T) {
	svc, mem, _ := newTestMenu(t)
	hidden := false

	_, err := svc.ListMenu(context.Background(), entity.MenuFilter{IsAvailable: &hidden})
	require.NoError(t, err)
	assert.True(t, *mem.menuItems.lastFilter.IsAvailable)
}

func TestGetMenuItem_HiddenItemIsNotFound(t *testing.T) {
	svc, mem, _ := newTestMenu(t)
	hidden := mem.menuItems.add("Haleem", "300.00", false)
	ctx := context.Background()

	_, err := svc.GetMenuItem(ctx, hidden.ID)
	appErr := requireAppError(t, err, http.StatusNotFound, utils.CodeNotFound)
	assert.Equal(t, "Menu item not found", appErr.Message)

	_, err = svc.GetMenuItem(ctx, uuid.New())
	requireAppError(t, err, http.StatusNotFound, utils.CodeNotFound)

	// the back office still sees it
	resp, err := svc.AdminGetMenuItem(ctx, hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, "Haleem", resp.Name)
}

func TestListCategories_ServedFromCache(t *testing.T) {
	svc, mem, mr := newTestMenu(t)
	ctx := context.Background()
	_, err := svc.CreateCategory(ctx, &request.CreateCategoryRequest{Name: "Desi"})
	require.NoError(t, err)

	first, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	second, err := svc.ListCategories(ctx)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, "desi", second[0].Slug)
	assert.Equal(t, 1, mem.categories.listCalls)
	assert.True(t, mr.Exists(cacheKeyCategories))
}

func TestCatalogWrites_InvalidateCache(t *testing.T) {
	ctx := context.Background()
	name := "Renamed"
	price := decimal.NewFromInt(500)

	writes := []struct {
		name  string
		write func(svc MenuService, mem *memRepo) error
	}{
		{"create category", func(svc MenuService, _ *memRepo) error {
			_, err := svc.CreateCategory(ctx, &request.CreateCategoryRequest{Name: "Grill"})
			return err
		}},
		{"update category", func(svc MenuService, mem *memRepo) error {
			c := &entity.Category{Base: entity.NewBase(time.Now()), Name: "Grill", Slug: "grill", IsActive: true}
			mem.categories.byID[c.ID] = c
			_, err := svc.UpdateCategory(ctx, c.ID, &request.UpdateCategoryRequest{Name: &name})
			return err
		}},
		{"delete category", func(svc MenuService, mem *memRepo) error {
			c := &entity.Category{Base: entity.NewBase(time.Now()), Name: "Grill", Slug: "grill"}
			mem.categories.byID[c.ID] = c
			return svc.DeleteCategory(ctx, c.ID)
		}},
		{"create item", func(svc MenuService, _ *memRepo) error {
			_, err := svc.CreateMenuItem(ctx, &request.CreateMenuItemRequest{Name: "Tikka", Price: price})
			return err
		}},
		{"update item", func(svc MenuService, mem *memRepo) error {
			item := mem.menuItems.add("Tikka", "450.00", true)
			_, err := svc.UpdateMenuItem(ctx, item.ID, &request.UpdateMenuItemRequest{Price: &price})
			return err
		}},
		{"delete item", func(svc MenuService, mem *memRepo) error {
			item := mem.menuItems.add("Tikka", "450.00", true)
			return svc.DeleteMenuItem(ctx, item.ID)
		}},
	}

	for _, tt := range writes {
		t.Run(tt.name, func(t *testing.T) {
			svc, mem, mr := newTestMenu(t)

			_, err := svc.ListCategories(ctx)
			require.NoError(t, err)
			_, err = svc.ListFeatured(ctx)
			require.NoError(t, err)
			require.True(t, mr.Exists(cacheKeyCategories))
			require.True(t, mr.Exists(cacheKeyFeatured))

			require.NoError(t, tt.write(svc, mem))

			assert.False(t, mr.Exists(cacheKeyCategories))
			assert.False(t, mr.Exists(cacheKeyFeatured))
		})
	}
}

func TestCreateCategory_SlugFromName(t *testing.T) {
	svc, mem, _ := newTestMenu(t)

	resp, err := svc.CreateCategory(context.Background(), &request.CreateCategoryRequest{Name: "South Indian"})
	require.NoError(t, err)

	assert.Equal(t, "south-indian", resp.Slug)
	require.Len(t, mem.categories.byID, 1)
	for _, c := range mem.categories.byID {
		assert.True(t, c.IsActive)
	}
}

func TestCreateCategory_Duplicate(t *testing.T) {
	svc, mem, _ := newTestMenu(t)
	mem.categories.createErr = repository.ErrDuplicate

	_, err := svc.CreateCategory(context.Background(), &request.CreateCategoryRequest{Name: "Desi"})
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.CodeDuplicate)
	assert.Equal(t, "A category with this name or slug already exists.", appErr.Message)
}

func TestCreateMenuItem_UnknownCategory(t *testing.T) {
	svc, mem, _ := newTestMenu(t)
	missing := uuid.New().String()

	_, err := svc.CreateMenuItem(context.Background(), &request.CreateMenuItemRequest{
		Name:       "Tikka",
		Price:      decimal.NewFromInt(450),
		CategoryID: &missing,
	})
	requireAppError(t, err, http.StatusBadRequest, utils.CodeValidation)
	assert.Empty(t, mem.menuItems.byID)
}
