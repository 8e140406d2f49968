package wire

import (
	"smart-dine/internal/adaptor"
	"smart-dine/internal/data/repository"
	"smart-dine/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/orders", func(r chi.Router) {
		// Guests may order; a valid session links the order to the user
		r.With(middleware.OptionalAuth(repo.Session, log)).Post("/", orderHandler.CreateOrder)
		r.Get("/track/{id}", orderHandler.Track)

		r.With(middleware.AuthSession(repo.Session, log)).Get("/history", orderHandler.History)
	})
}

func wireAdminOrders(r chi.Router, orderHandler *adaptor.OrderHandler) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orderHandler.AdminList)
		r.Post("/", orderHandler.AdminCreate)
		r.Get("/{id}", orderHandler.AdminGet)
		r.Put("/{id}", orderHandler.AdminUpdate)
		r.Delete("/{id}", orderHandler.AdminDelete)
		r.Put("/{id}/status", orderHandler.AdminUpdateStatus)
	})
}
