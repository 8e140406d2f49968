package wire

import (
	"context"
	"net/http"
	"time"

	"smart-dine/internal/adaptor"
	"smart-dine/internal/data/repository"
	"smart-dine/internal/usecase"
	"smart-dine/pkg/database"
	"smart-dine/pkg/metrics"
	"smart-dine/pkg/middleware"
	"smart-dine/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP stack and the pieces background jobs need.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Limiter *middleware.RateLimiter
}

// Wiring builds services, handlers and routes.
func Wiring(
	db database.PgxIface,
	repo *repository.Repository,
	config *utils.Config,
	infra usecase.Infra,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, infra, logger)
	handler := adaptor.NewHandler(service, logger)
	limiter := middleware.NewRateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst, logger)

	router := setupRouter(db, handler, repo, limiter, config, logger)

	return &App{
		Router:  router,
		Service: service,
		Limiter: limiter,
	}
}

func setupRouter(
	db database.PgxIface,
	handler *adaptor.Handler,
	repo *repository.Repository,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	if config.App.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(metrics.InstrumentHandler)

	r.Route("/api", func(r chi.Router) {
		wireAuth(r, handler.Auth, handler.User, repo, limiter, logger)
		wireMenu(r, handler.Menu)
		wireOrder(r, handler.Order, repo, logger)
		wireReservation(r, handler.Reservation, repo, logger)
		wirePayment(r, handler.Payment, limiter)
		wireAdmin(r, handler, repo, limiter, logger)
	})

	r.Get("/health", health(db, logger))
	r.Handle("/metrics", metrics.Handler())

	return r
}

func health(db database.PgxIface, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseError(w, utils.NewAppError(http.StatusServiceUnavailable, utils.CodeServerError, "Database unavailable"))
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	}
}
