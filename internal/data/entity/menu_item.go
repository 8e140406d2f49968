package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	Base
	Name         string          `db:"name"`
	Description  string          `db:"description"`
	Price        decimal.Decimal `db:"price"`
	CategoryID   *uuid.UUID      `db:"category_id"`
	IsVeg        bool            `db:"is_veg"`
	Rating       float64         `db:"rating"`
	IsFeatured   bool            `db:"is_featured"`
	IsAvailable  bool            `db:"is_available"`
	Image        string          `db:"image"`
	CategoryName *string         `db:"category_name"` // joined
	CategorySlug *string         `db:"category_slug"` // joined
}

type MenuSort string

const (
	MenuSortName      MenuSort = "name"
	MenuSortPrice     MenuSort = "price"
	MenuSortPriceDesc MenuSort = "price_desc"
	MenuSortRating    MenuSort = "rating"
)

// MenuFilter covers both the public menu and the admin listing.
type MenuFilter struct {
	Search      string // name or description, case-insensitive
	Category    string // slug or name, case-insensitive
	IsAvailable *bool
	IsFeatured  *bool
	Sort        MenuSort
}
