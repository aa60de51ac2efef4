package wire

import (
	"product-catalog/internal/adaptor"
	"product-catalog/pkg/middleware"
	"product-catalog/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	limiter ratelimit.Limiter,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Credential endpoints are throttled per client IP
	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(middleware.RateLimit(limiter, log, middleware.ClientIP))
		}
		r.Post("/api/auth/login", authHandler.Login)
		r.Post("/api/auth/refresh", authHandler.Refresh)
	})

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/auth/me", authHandler.Me)
	})
}
