package repository

import (
	"context"
	"fmt"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

// item_count counts every item in the category.
const categorySelect = `
	SELECT c.id, c.name, c.slug, c.description, c.image, c.is_active,
	       c.created_at, c.updated_at,
	       (SELECT COUNT(*) FROM menu_items m WHERE m.category_id = c.id)
	FROM categories c
`

func scanCategory(row scanner) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.Image,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.ItemCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, image, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.Image,
		category.IsActive,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("create category %s: %w", category.Slug, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create category", zap.Error(err), zap.String("slug", category.Slug))
		return fmt.Errorf("create category %s: %w", category.Slug, err)
	}

	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := scanCategory(r.db.QueryRow(ctx, categorySelect+` WHERE c.id = $1`, id))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find category %s: %w", id, err)
	}

	return category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := categorySelect
	if activeOnly {
		query += ` WHERE c.is_active = TRUE`
	}
	query += ` ORDER BY c.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("find all categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, image = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.Image,
		category.IsActive,
		category.UpdatedAt,
	)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("update category %s: %w", category.Slug, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update category", zap.Error(err), zap.String("id", category.ID.String()))
		return fmt.Errorf("update category %s: %w", category.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %s not found", category.ID)
	}

	return nil
}

// Delete removes the category; its menu items keep existing uncategorised.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete category", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %s not found", id)
	}

	r.log.Info("Category deleted", zap.String("id", id.String()))
	return nil
}
