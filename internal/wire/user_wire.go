package wire

import (
	"smart-dine/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAdminUsers mounts user moderation under an already guarded admin router.
func wireAdminUsers(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Get("/{id}", userHandler.GetUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
		r.Put("/{id}/toggle-status", userHandler.ToggleStatus)
	})
}
