package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mbakken/labstock-backend/api/controllers"
	"github.com/mbakken/labstock-backend/api/middleware"
	"github.com/mbakken/labstock-backend/internal/catalog"
	"github.com/mbakken/labstock-backend/internal/importer"
	"github.com/mbakken/labstock-backend/pkg/config"
	"github.com/mbakken/labstock-backend/pkg/db"
	"github.com/mbakken/labstock-backend/pkg/logger"
	"github.com/mbakken/labstock-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	catalogService catalog.Service,
	importService importer.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Idempotency-Key", "X-Request-Id"},
			MaxAge:         300,
		}),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ListItems(catalogService, logg))
			r.Get("/{id}", controllers.GetItem(catalogService, logg))
		})
		r.Get("/departments", controllers.ListDepartments(catalogService, logg))
		r.Get("/categories", controllers.ListCategories(catalogService, logg))
		r.Get("/locations", controllers.ListLocations(catalogService, logg))
		r.Get("/suppliers", controllers.ListSuppliers(catalogService, logg))

		r.Get("/import/template", controllers.ImportTemplate(logg))
		r.With(middleware.Idempotency(redisClient, logg, cfg.Import.IdempotencyTTL)).
			Post("/import", controllers.ImportDocument(importService, cfg.Import, logg))
	})

	return r
}
