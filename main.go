// main.go
package main

import (
	"context"
	"log"
	"os"

	"smart-dine/cmd"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/usecase"
	"smart-dine/internal/wire"
	"smart-dine/pkg/cache"
	"smart-dine/pkg/database"
	"smart-dine/pkg/mailer"
	"smart-dine/pkg/payment"
	"smart-dine/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	command := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "migrate":
		if err := cmd.Migrate(args, config.Database, logger); err != nil {
			logger.Fatal("Migration failed", zap.Error(err))
		}
		return
	case "seed":
		db := connect(config, logger)
		defer db.Close()
		if err := cmd.Seed(context.Background(), db, logger); err != nil {
			logger.Fatal("Seeding failed", zap.Error(err))
		}
		return
	case "serve":
	default:
		logger.Fatal("Unknown command, want serve, migrate or seed", zap.String("command", command))
	}

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("env", config.App.Env),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db := connect(config, logger)
	defer db.Close()

	if err := database.MigrateUp(config.Database, logger); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	templates, err := mailer.NewRenderer(config.App.Name)
	if err != nil {
		logger.Fatal("Failed to load email templates", zap.Error(err))
	}

	catalogCache, err := cache.New(config.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		catalogCache = cache.Noop{}
	}
	defer catalogCache.Close()

	infra := usecase.Infra{
		Mailer:    mailer.NewSender(config.Email, logger),
		Templates: templates,
		Payments:  payment.NewStripeGateway(config.Stripe, logger),
		Cache:     catalogCache,
	}

	// Wire all dependencies
	app := wire.Wiring(db, repos, config, infra, logger)

	jobs, err := cmd.Jobs(repos, app.Limiter, logger)
	if err != nil {
		logger.Fatal("Failed to schedule jobs", zap.Error(err))
	}
	jobs.Start()

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, jobs, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

func connect(config *utils.Config, logger *zap.Logger) database.PgxIface {
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	logger.Info("Database connected successfully")
	return db
}
