package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shobi-backend/api/controllers"
	"github.com/angelmondragon/shobi-backend/api/middleware"
	"github.com/angelmondragon/shobi-backend/internal/favorites"
	"github.com/angelmondragon/shobi-backend/internal/render"
	"github.com/angelmondragon/shobi-backend/pkg/config"
	"github.com/angelmondragon/shobi-backend/pkg/logger"
	"github.com/angelmondragon/shobi-backend/pkg/metrics"
	"github.com/angelmondragon/shobi-backend/pkg/redis"
)

const toggleIdempotencyTTL = 24 * time.Hour

// Dependencies are the services the router dispatches to. Idempotency and
// Gatherer are optional.
type Dependencies struct {
	Catalog     controllers.CatalogReloader
	Favorites   favorites.Service
	Options     render.Options
	Pingers     map[string]controllers.Pinger
	Idempotency redis.IdempotencyStore
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Catalog, deps.Pingers, logg))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ClientContext(logg))

		r.Route("/perfumes", func(r chi.Router) {
			r.Get("/", controllers.PerfumeList(deps.Catalog, deps.Favorites, deps.Options, logg))
			r.Get("/{code}", controllers.PerfumeDetail(deps.Catalog, deps.Options, logg))
		})
		r.Get("/brands", controllers.BrandList(deps.Catalog, logg))
		r.Get("/facets", controllers.FacetList(deps.Catalog, logg))

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(deps.Favorites, logg))
			r.With(middleware.Idempotency(deps.Idempotency, toggleIdempotencyTTL, logg)).
				Post("/toggle", controllers.FavoritesToggle(deps.Favorites, logg))
		})

		r.Post("/catalog/reload", controllers.CatalogReload(deps.Catalog, logg))
	})

	return r
}
