package cmd

import (
	"context"

	"smart-dine/internal/data/seed"
	"smart-dine/pkg/database"

	"go.uber.org/zap"
)

func Seed(ctx context.Context, db database.PgxIface, logger *zap.Logger) error {
	catalog, err := seed.Default()
	if err != nil {
		return err
	}

	logger.Info("Seeding menu data")
	result, err := seed.Apply(ctx, db, catalog, logger)
	if err != nil {
		return err
	}

	logger.Info("Menu seeded",
		zap.Int("categories_created", result.CategoriesCreated),
		zap.Int("categories_updated", result.CategoriesUpdated),
		zap.Int("items_created", result.ItemsCreated),
		zap.Int("items_updated", result.ItemsUpdated),
	)
	return nil
}
