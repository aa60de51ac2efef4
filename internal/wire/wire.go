package wire

import (
	"context"
	"net/http"
	"time"

	"product-catalog/internal/adaptor"
	"product-catalog/internal/data/repository"
	"product-catalog/internal/usecase"
	"product-catalog/pkg/apperror"
	"product-catalog/pkg/database"
	"product-catalog/pkg/messaging"
	"product-catalog/pkg/middleware"
	"product-catalog/pkg/ratelimit"
	"product-catalog/pkg/token"
	"product-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Deps holds the infrastructure built in main
type Deps struct {
	DB        database.PgxIface
	Repo      *repository.Repository
	Codec     *token.Codec
	Publisher messaging.Publisher
	// Limiter may be nil when rate limiting is disabled
	Limiter ratelimit.Limiter
	Config  *utils.Config
	Logger  *zap.Logger
}

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services and handlers and registers every route
func Wiring(deps Deps) *App {
	service := usecase.NewService(deps.Repo, deps.Codec, deps.Publisher, deps.Config, deps.Logger)
	handler := adaptor.NewHandler(service, deps.Logger)

	return &App{
		Router:  setupRouter(handler, service, deps),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, service *usecase.Service, deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(deps.Config.App.TrustProxy))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.CORSOrigins))
	r.Use(middleware.Authenticate(deps.Codec, service.User, deps.Logger))

	wireAuth(r, handler.Auth, deps.Limiter, deps.Logger)
	wireProduct(r, handler.Product, handler.ProductOption)

	r.Get("/health", healthHandler(deps.DB))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusNotFound, false, "Route not found", nil, &utils.ErrorDetail{Code: apperror.CodeResourceNotFound})
	})

	return r
}

func healthHandler(db database.PgxIface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", map[string]string{"database": "down"}, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", map[string]string{"database": "up"})
	}
}
