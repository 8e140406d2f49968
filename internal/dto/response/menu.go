package response

import (
	"time"

	"smart-dine/internal/data/entity"
)

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	IsActive    bool      `json:"is_active"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// MenuItemResponse renders price as a fixed two-decimal string.
type MenuItemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        string    `json:"price"`
	Category     *string   `json:"category"`
	CategoryName *string   `json:"category_name"`
	CategorySlug *string   `json:"category_slug"`
	IsVeg        bool      `json:"is_veg"`
	Rating       float64   `json:"rating"`
	IsFeatured   bool      `json:"is_featured"`
	IsAvailable  bool      `json:"is_available"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		IsActive:    c.IsActive,
		ItemCount:   c.ItemCount,
		CreatedAt:   c.CreatedAt,
	}
}

func CategoriesToResponse(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryToResponse(c))
	}
	return out
}

func MenuItemToResponse(m *entity.MenuItem) MenuItemResponse {
	resp := MenuItemResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price.StringFixed(2),
		CategoryName: m.CategoryName,
		CategorySlug: m.CategorySlug,
		IsVeg:        m.IsVeg,
		Rating:       m.Rating,
		IsFeatured:   m.IsFeatured,
		IsAvailable:  m.IsAvailable,
		Image:        m.Image,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.CategoryID != nil {
		id := m.CategoryID.String()
		resp.Category = &id
	}
	return resp
}

func MenuItemsToResponse(items []*entity.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, MenuItemToResponse(m))
	}
	return out
}
