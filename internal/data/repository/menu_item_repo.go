package repository

import (
	"context"
	"fmt"
	"strings"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.MenuItem, error)
	FindAll(ctx context.Context, filter entity.MenuFilter) ([]*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type menuItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMenuItemRepository(db database.PgxIface, log *zap.Logger) MenuItemRepository {
	return &menuItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "menu_item")),
	}
}

const menuItemSelect = `
	SELECT m.id, m.name, m.description, m.price, m.category_id, m.is_veg,
	       m.rating::float8, m.is_featured, m.is_available, m.image,
	       m.created_at, m.updated_at, c.name, c.slug
	FROM menu_items m
	LEFT JOIN categories c ON c.id = m.category_id
`

func scanMenuItem(row scanner) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Price,
		&m.CategoryID,
		&m.IsVeg,
		&m.Rating,
		&m.IsFeatured,
		&m.IsAvailable,
		&m.Image,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.CategoryName,
		&m.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func menuOrderBy(sort entity.MenuSort) string {
	switch sort {
	case entity.MenuSortPrice:
		return " ORDER BY m.price ASC, m.name"
	case entity.MenuSortPriceDesc:
		return " ORDER BY m.price DESC, m.name"
	case entity.MenuSortRating:
		return " ORDER BY m.rating DESC, m.name"
	default:
		return " ORDER BY m.name"
	}
}

func (r *menuItemRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, description, price, category_id, is_veg, rating,
		                        is_featured, is_available, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Price,
		item.CategoryID,
		item.IsVeg,
		item.Rating,
		item.IsFeatured,
		item.IsAvailable,
		item.Image,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create menu item", zap.Error(err), zap.String("name", item.Name))
		return fmt.Errorf("create menu item %s: %w", item.Name, err)
	}

	return nil
}

func (r *menuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := scanMenuItem(r.db.QueryRow(ctx, menuItemSelect+` WHERE m.id = $1`, id))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find menu item", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find menu item %s: %w", id, err)
	}

	return item, nil
}

// FindByIDs loads the given items keyed by id. Unknown ids are simply absent.
func (r *menuItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.MenuItem, error) {
	items := make(map[uuid.UUID]*entity.MenuItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	rows, err := r.db.Query(ctx, menuItemSelect+` WHERE m.id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to find menu items by ids", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find menu items by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item row: %w", err)
		}
		items[item.ID] = item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu item rows: %w", err)
	}

	return items, nil
}

func (r *menuItemRepository) FindAll(ctx context.Context, filter entity.MenuFilter) ([]*entity.MenuItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(menuItemSelect)
	queryBuilder.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argCount := 1

	if filter.IsAvailable != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.is_available = $%d", argCount))
		args = append(args, *filter.IsAvailable)
		argCount++
	}
	if filter.IsFeatured != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.is_featured = $%d", argCount))
		args = append(args, *filter.IsFeatured)
		argCount++
	}
	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (LOWER(c.slug) = LOWER($%d) OR LOWER(c.name) = LOWER($%d))", argCount, argCount))
		args = append(args, filter.Category)
		argCount++
	}
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (m.name ILIKE $%d OR m.description ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+filter.Search+"%")
	}
	queryBuilder.WriteString(menuOrderBy(filter.Sort))

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to list menu items", zap.Error(err))
		return nil, fmt.Errorf("find all menu items: %w", err)
	}
	defer rows.Close()

	var items []*entity.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			r.log.Error("Failed to scan menu item row", zap.Error(err))
			return nil, fmt.Errorf("scan menu item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate menu item rows: %w", err)
	}

	return items, nil
}

func (r *menuItemRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, category_id = $5, is_veg = $6,
		    rating = $7, is_featured = $8, is_available = $9, image = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Price,
		item.CategoryID,
		item.IsVeg,
		item.Rating,
		item.IsFeatured,
		item.IsAvailable,
		item.Image,
		item.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update menu item", zap.Error(err), zap.String("id", item.ID.String()))
		return fmt.Errorf("update menu item %s: %w", item.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("menu item %s not found", item.ID)
	}

	return nil
}

func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete menu item", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete menu item %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("menu item %s not found", id)
	}

	return nil
}
