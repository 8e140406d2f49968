// Package seed loads the starter menu into an empty or existing database.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"smart-dine/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Category struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

type Item struct {
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"` // category slug
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	IsVeg       bool    `yaml:"is_veg"`
	Rating      float64 `yaml:"rating"`
	Featured    bool    `yaml:"featured"`
	Image       string  `yaml:"image"`
}

type Catalog struct {
	Categories []Category `yaml:"categories"`
	Items      []Item     `yaml:"items"`
}

// Result counts what Apply wrote.
type Result struct {
	CategoriesCreated int
	CategoriesUpdated int
	ItemsCreated      int
	ItemsUpdated      int
}

// Default returns the embedded starter catalog.
func Default() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	slugs := make(map[string]bool, len(catalog.Categories))
	for _, c := range catalog.Categories {
		if c.Slug == "" || c.Name == "" {
			return nil, errors.New("catalog category needs a name and a slug")
		}
		slugs[c.Slug] = true
	}
	for _, item := range catalog.Items {
		if item.Category != "" && !slugs[item.Category] {
			return nil, fmt.Errorf("menu item %q references unknown category %q", item.Name, item.Category)
		}
	}

	return &catalog, nil
}

// Apply upserts the catalog in one transaction. Categories match on slug,
// items on name, so running it twice only refreshes the rows.
func Apply(ctx context.Context, db database.PgxIface, catalog *Catalog, log *zap.Logger) (*Result, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	result := &Result{}
	categoryIDs := make(map[string]uuid.UUID, len(catalog.Categories))

	for _, c := range catalog.Categories {
		var id uuid.UUID
		var inserted bool
		err := tx.QueryRow(ctx, `
			INSERT INTO categories (id, name, slug, description, image, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
			ON CONFLICT (slug) DO UPDATE
			SET name = EXCLUDED.name, description = EXCLUDED.description,
			    image = EXCLUDED.image, updated_at = EXCLUDED.updated_at
			RETURNING id, (xmax = 0)
		`, uuid.New(), c.Name, c.Slug, c.Description, c.Image, now).Scan(&id, &inserted)
		if err != nil {
			return nil, fmt.Errorf("seed category %s: %w", c.Slug, err)
		}

		categoryIDs[c.Slug] = id
		if inserted {
			result.CategoriesCreated++
			log.Info("Created category", zap.String("name", c.Name))
		} else {
			result.CategoriesUpdated++
			log.Info("Updated category", zap.String("name", c.Name))
		}
	}

	for _, item := range catalog.Items {
		var categoryID *uuid.UUID
		if id, ok := categoryIDs[item.Category]; ok {
			categoryID = &id
		}
		price := decimal.NewFromFloat(item.Price).Round(2)

		var existing uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM menu_items WHERE name = $1 ORDER BY created_at LIMIT 1`, item.Name).Scan(&existing)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			_, err = tx.Exec(ctx, `
				INSERT INTO menu_items (id, name, description, price, category_id, is_veg, rating,
				                        is_featured, is_available, image, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9, $10, $10)
			`, uuid.New(), item.Name, item.Description, price, categoryID, item.IsVeg, item.Rating,
				item.Featured, item.Image, now)
			if err != nil {
				return nil, fmt.Errorf("seed menu item %s: %w", item.Name, err)
			}
			result.ItemsCreated++
			log.Info("Created menu item", zap.String("name", item.Name))
		case err != nil:
			return nil, fmt.Errorf("look up menu item %s: %w", item.Name, err)
		default:
			_, err = tx.Exec(ctx, `
				UPDATE menu_items
				SET description = $2, price = $3, category_id = $4, is_veg = $5, rating = $6,
				    is_featured = $7, image = $8, updated_at = $9
				WHERE id = $1
			`, existing, item.Description, price, categoryID, item.IsVeg, item.Rating,
				item.Featured, item.Image, now)
			if err != nil {
				return nil, fmt.Errorf("seed menu item %s: %w", item.Name, err)
			}
			result.ItemsUpdated++
			log.Info("Updated menu item", zap.String("name", item.Name))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit seed: %w", err)
	}

	return result, nil
}
