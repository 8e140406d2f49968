package entity

type Category struct {
	Base
	Name        string `db:"name"`
	Slug        string `db:"slug"`
	Description string `db:"description"`
	Image       string `db:"image"`
	IsActive    bool   `db:"is_active"`
	ItemCount   int    `db:"item_count"` // read-only aggregate
}
