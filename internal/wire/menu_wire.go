package wire

import (
	"smart-dine/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMenu(r chi.Router, menuHandler *adaptor.MenuHandler) {
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", menuHandler.ListMenu)
		r.Get("/categories", menuHandler.ListCategories)
		r.Get("/featured", menuHandler.ListFeatured)
		r.Get("/{id}", menuHandler.GetMenuItem)
	})
}

// wireAdminCatalog mounts category and menu item management under the admin router.
func wireAdminCatalog(r chi.Router, menuHandler *adaptor.MenuHandler) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", menuHandler.AdminListCategories)
		r.Post("/", menuHandler.CreateCategory)
		r.Get("/{id}", menuHandler.GetCategory)
		r.Put("/{id}", menuHandler.UpdateCategory)
		r.Delete("/{id}", menuHandler.DeleteCategory)
	})

	r.Route("/menu", func(r chi.Router) {
		r.Get("/", menuHandler.AdminListMenu)
		r.Post("/", menuHandler.CreateMenuItem)
		r.Get("/{id}", menuHandler.AdminGetMenuItem)
		r.Put("/{id}", menuHandler.UpdateMenuItem)
		r.Delete("/{id}", menuHandler.DeleteMenuItem)
	})
}
