package wire

import (
	"product-catalog/internal/adaptor"
	"product-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	optionHandler *adaptor.ProductOptionHandler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/products", productHandler.List)
	r.Get("/api/products/search", productHandler.Search)
	r.Get("/api/products/{productId}", productHandler.Get)
	r.Get("/api/products/{productId}/options", optionHandler.List)
	r.Get("/api/products/{productId}/options/{id}", optionHandler.Get)

	// ==================== OWNER ROUTES ====================
	// Ownership itself is checked by the services
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/api/users/me/products", productHandler.Mine)

		r.Post("/api/products", productHandler.Create)
		r.Put("/api/products/{productId}", productHandler.Update)
		r.Delete("/api/products/{productId}", productHandler.Delete)

		r.Post("/api/products/{productId}/options", optionHandler.Create)
		r.Put("/api/products/{productId}/options/{id}", optionHandler.Update)
		r.Delete("/api/products/{productId}/options/{id}", optionHandler.Delete)
	})
}
