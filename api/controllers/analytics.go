package controllers

import (
	"net/http"
	"time"

	"github.com/Okleeqo/forecastIQ-app/api/responses"
	"github.com/Okleeqo/forecastIQ-app/api/validators"
	"github.com/Okleeqo/forecastIQ-app/internal/cac"
	"github.com/Okleeqo/forecastIQ-app/internal/cohort"
	"github.com/Okleeqo/forecastIQ-app/internal/forecast"
	"github.com/Okleeqo/forecastIQ-app/internal/revenue"
	"github.com/Okleeqo/forecastIQ-app/internal/subscriptions"
	"github.com/Okleeqo/forecastIQ-app/pkg/config"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/Okleeqo/forecastIQ-app/pkg/logger"
)

// Forecast projects MRR forward from the client's latest snapshot. An
// optional simulatedChurn query adds a churn impact comparison.
func Forecast(svc subscriptions.Service, engine config.EngineConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		id, err := clientIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		months, err := validators.ParseQueryInt(r, "months", engine.ForecastMonths, 1, 60)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data, err := svc.Current(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seasonal := data.SeasonalChurn.Table()
		projection := forecast.Project(data.MRR, data.GrowthRate, data.ChurnRate, months, seasonal)

		result := map[string]any{
			"projection": projection,
			"months":     months,
		}

		if r.URL.Query().Has("simulatedChurn") {
			simulated, err := validators.ParseQueryFloat(r, "simulatedChurn", 0, 0, 100)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			result["churnImpact"] = forecast.ChurnImpact(data.MRR, data.GrowthRate, data.ChurnRate, simulated, months, seasonal)
		}

		responses.WriteSuccess(w, result)
	}
}

// Cohorts buckets the client's history into monthly acquisition cohorts.
func Cohorts(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		id, err := clientIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.History(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cohort.Compute(history))
	}
}

// CAC scores acquisition efficiency from the latest snapshot.
func CAC(svc subscriptions.Service, engine config.EngineConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		id, err := clientIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		threshold, err := validators.ParseQueryFloat(r, "threshold", engine.CACThresholdRatio, 0.1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data, err := svc.Current(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		metrics := cac.Analyze(data, threshold)
		responses.WriteSuccess(w, map[string]any{
			"metrics":        metrics,
			"growthInsights": cac.GrowthInsights(metrics),
		})
	}
}

// Revenue decomposes MRR movement for the latest snapshot, optionally scoped
// to a single segment.
func Revenue(svc subscriptions.Service, engine config.EngineConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		id, err := clientIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		months, err := validators.ParseQueryInt(r, "months", 6, 1, 24)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		segment := r.URL.Query().Get("segment")
		if segment == "" {
			segment = revenue.SegmentAll
		}

		data, err := svc.Current(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assumptions := revenue.Assumptions{
			ExpansionRate:   engine.ExpansionRate,
			ContractionRate: engine.ContractionRate,
		}
		breakdown := revenue.Compute(*data, segment, months, time.Now().UTC(), assumptions)
		responses.WriteSuccess(w, breakdown)
	}
}
