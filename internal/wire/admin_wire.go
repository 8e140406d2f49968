package wire

import (
	"smart-dine/internal/adaptor"
	"smart-dine/internal/data/repository"
	"smart-dine/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAdmin mounts the back office. Everything except login sits behind
// one session check and one staff check.
func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	r.Route("/admin", func(r chi.Router) {
		r.With(limiter.Handler).Post("/login", handler.Admin.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(repo.Session, log))
			r.Use(middleware.Staff(log))

			r.Post("/logout", handler.Auth.Logout)
			r.Get("/check", handler.Admin.Check)
			r.Get("/dashboard/stats", handler.Admin.Dashboard)
			r.Get("/reports/sales", handler.Admin.SalesReport)
			r.Get("/reports/popular-items", handler.Admin.PopularItems)

			wireAdminCatalog(r, handler.Menu)
			wireAdminOrders(r, handler.Order)
			wireAdminReservations(r, handler.Reservation)
			wireAdminUsers(r, handler.User)
		})
	})
}
