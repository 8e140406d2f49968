package request

import "github.com/shopspring/decimal"

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=120"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,max=120"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateMenuItemRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *string         `json:"category,omitempty" validate:"omitempty,uuid"`
	IsVeg       bool            `json:"is_veg"`
	Rating      float64         `json:"rating" validate:"gte=0,lte=5"`
	IsFeatured  bool            `json:"is_featured"`
	IsAvailable *bool           `json:"is_available,omitempty"`
	Image       string          `json:"image"`
}

// UpdateMenuItemRequest is a partial update. An empty category detaches the item.
type UpdateMenuItemRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *string          `json:"category,omitempty" validate:"omitempty,uuid"`
	IsVeg       *bool            `json:"is_veg,omitempty"`
	Rating      *float64         `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	IsFeatured  *bool            `json:"is_featured,omitempty"`
	IsAvailable *bool            `json:"is_available,omitempty"`
	Image       *string          `json:"image,omitempty"`
}
