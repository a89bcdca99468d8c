package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	gocache "github.com/patrickmn/go-cache"
	assistantapi "github.com/ultron-crm/assistant-backend/internal/api/assistant"
	"github.com/ultron-crm/assistant-backend/internal/api/docs"
	"github.com/ultron-crm/assistant-backend/internal/api/middleware"
	"github.com/ultron-crm/assistant-backend/internal/pkg/metrics"
	"github.com/ultron-crm/assistant-backend/internal/repository"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	assistantHandler *assistantapi.Handler,
	orgRepo repository.OrganizationRepository,
	authCache *gocache.Cache,
	requestTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover)
	r.Use(chimiddleware.Timeout(requestTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Prometheus scrape endpoint
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Authenticated assistant surface
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(orgRepo, authCache))
		assistantapi.RegisterRoutes(r, assistantHandler)
	})

	return r
}
