package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Okleeqo/forecastIQ-app/api/controllers"
	"github.com/Okleeqo/forecastIQ-app/api/middleware"
	"github.com/Okleeqo/forecastIQ-app/internal/clients"
	"github.com/Okleeqo/forecastIQ-app/internal/reports"
	"github.com/Okleeqo/forecastIQ-app/internal/scenario"
	"github.com/Okleeqo/forecastIQ-app/internal/subscriptions"
	"github.com/Okleeqo/forecastIQ-app/pkg/config"
	"github.com/Okleeqo/forecastIQ-app/pkg/db"
	"github.com/Okleeqo/forecastIQ-app/pkg/logger"
	"github.com/Okleeqo/forecastIQ-app/pkg/metrics"
	"github.com/Okleeqo/forecastIQ-app/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         *redis.Client
	Metrics       *metrics.HTTPMetrics
	Clients       clients.Service
	Subscriptions subscriptions.Service
	Scenarios     scenario.Service
	Reports       reports.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	healthDeps := map[string]controllers.Pinger{}
	if deps.DB != nil {
		healthDeps["database"] = deps.DB
	}
	if deps.Redis != nil {
		healthDeps["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, healthDeps))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	reportLimiter := func(next http.Handler) http.Handler { return next }
	if deps.Redis != nil {
		reportPolicy := middleware.NewRateLimitPolicy(
			"reports",
			cfg.RateLimit.ReportWindow,
			cfg.RateLimit.ReportLimit,
		)
		reportLimiter = middleware.RateLimit(reportPolicy, deps.Redis, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Post("/", controllers.ClientCreate(deps.Clients, logg))
			r.Get("/", controllers.ClientList(deps.Clients, logg))

			r.Route("/{clientId}", func(r chi.Router) {
				r.Delete("/", controllers.ClientDelete(deps.Clients, logg))

				r.Route("/subscriptions", func(r chi.Router) {
					r.Post("/", controllers.SnapshotAppend(deps.Subscriptions, deps.Clients, logg))
					r.Get("/", controllers.SnapshotHistory(deps.Subscriptions, logg))
					r.Get("/latest", controllers.SnapshotLatest(deps.Subscriptions, logg))
					r.Delete("/", controllers.SnapshotReset(deps.Subscriptions, logg))
				})

				r.Get("/forecast", controllers.Forecast(deps.Subscriptions, cfg.Engine, logg))
				r.Get("/cohorts", controllers.Cohorts(deps.Subscriptions, logg))
				r.Get("/cac", controllers.CAC(deps.Subscriptions, cfg.Engine, logg))
				r.Get("/revenue", controllers.Revenue(deps.Subscriptions, cfg.Engine, logg))

				r.Route("/scenarios", func(r chi.Router) {
					r.Get("/projections", controllers.ScenarioProjections(deps.Scenarios, deps.Subscriptions, logg))
					r.Get("/comparisons", controllers.ScenarioComparisons(deps.Scenarios, deps.Subscriptions, logg))
				})

				if cfg.Reports.Enabled {
					r.Route("/reports", func(r chi.Router) {
						r.Post("/", controllers.ReportGenerate(deps.Reports, deps.Subscriptions, logg))
						r.With(reportLimiter).
							Post("/enhance", controllers.ReportEnhance(deps.Reports, deps.Subscriptions, logg))
					})
				}
			})
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Post("/", controllers.ScenarioCreate(deps.Scenarios, logg))
			r.Get("/", controllers.ScenarioList(deps.Scenarios, logg))
			r.Put("/{scenarioId}", controllers.ScenarioUpdate(deps.Scenarios, logg))
			r.Delete("/{scenarioId}", controllers.ScenarioDelete(deps.Scenarios, logg))
		})
	})

	return r
}
