package wire

import (
	"smart-dine/internal/adaptor"
	"smart-dine/internal/data/repository"
	"smart-dine/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/reservations", func(r chi.Router) {
		r.With(middleware.OptionalAuth(repo.Session, log)).Post("/create", reservationHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(repo.Session, log))
			r.Get("/", reservationHandler.ListMine)
			r.Delete("/cancel/{id}", reservationHandler.Cancel)
		})
	})
}

func wireAdminReservations(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/reservations", func(r chi.Router) {
		r.Get("/", reservationHandler.AdminList)
		r.Post("/", reservationHandler.AdminCreate)
		r.Get("/{id}", reservationHandler.AdminGet)
		r.Put("/{id}", reservationHandler.AdminUpdate)
		r.Delete("/{id}", reservationHandler.AdminDelete)
		r.Put("/{id}/status", reservationHandler.AdminUpdateStatus)
	})
}
