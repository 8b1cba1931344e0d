package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Okleeqo/forecastIQ-app/api/responses"
	"github.com/Okleeqo/forecastIQ-app/pkg/config"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/Okleeqo/forecastIQ-app/pkg/logger"
)

const envHeader = "X-ForecastIQ-Env"

// Pinger is the dependency surface the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when every wired dependency answers a
// ping within the probe deadline.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "unreachable"
				if logg != nil {
					failCtx := logg.WithFields(ctx, map[string]any{"dependency": name})
					logg.Error(failCtx, "health.ready.failed", err)
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeDependency, name+" unavailable").WithDetails(checks))
				return
			}
			checks[name] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
