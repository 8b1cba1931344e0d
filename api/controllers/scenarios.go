package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Okleeqo/forecastIQ-app/api/responses"
	"github.com/Okleeqo/forecastIQ-app/api/validators"
	"github.com/Okleeqo/forecastIQ-app/internal/scenario"
	"github.com/Okleeqo/forecastIQ-app/internal/subscriptions"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/Okleeqo/forecastIQ-app/pkg/logger"
)

type scenarioRequest struct {
	Name                string             `json:"name" validate:"required,min=1,max=200"`
	ChurnRate           float64            `json:"churnRate" validate:"min=0,max=100"`
	GrowthRate          float64            `json:"growthRate" validate:"min=-100,max=1000"`
	ARPU                float64            `json:"arpu" validate:"min=0"`
	CACAdjustment       float64            `json:"cacAdjustment"`
	SeasonalityEnabled  bool               `json:"seasonalityEnabled"`
	SeasonalAdjustments map[string]float64 `json:"seasonalAdjustments,omitempty"`
}

func (req scenarioRequest) toInput() scenario.CreateScenarioInput {
	return scenario.CreateScenarioInput{
		Name:                req.Name,
		ChurnRate:           req.ChurnRate,
		GrowthRate:          req.GrowthRate,
		ARPU:                req.ARPU,
		CACAdjustment:       req.CACAdjustment,
		SeasonalityEnabled:  req.SeasonalityEnabled,
		SeasonalAdjustments: req.SeasonalAdjustments,
	}
}

// ScenarioCreate defines a new hypothetical parameter set.
func ScenarioCreate(svc scenario.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scenario service unavailable"))
			return
		}

		var payload scenarioRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ScenarioList returns all saved scenarios.
func ScenarioList(svc scenario.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scenario service unavailable"))
			return
		}

		listed, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

// ScenarioUpdate replaces a scenario's parameters.
func ScenarioUpdate(svc scenario.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scenario service unavailable"))
			return
		}

		id, err := scenarioIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload scenarioRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithScenarioID(ctx, id.String())
		}

		updated, err := svc.Update(ctx, id, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// ScenarioDelete removes a saved scenario.
func ScenarioDelete(svc scenario.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scenario service unavailable"))
			return
		}

		id, err := scenarioIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ScenarioProjections runs every saved scenario forward from the client's
// latest snapshot.
func ScenarioProjections(svc scenario.Service, subsSvc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || subsSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scenario service unavailable"))
			return
		}

		id, err := clientIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data, err := subsSvc.Current(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		projections, err := svc.Projections(r.Context(), data.MRR, float64(data.Subscribers), time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, projections)
	}
}

// ScenarioComparisons returns six- and twelve-month snapshots per scenario.
func ScenarioComparisons(svc scenario.Service, subsSvc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || subsSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scenario service unavailable"))
			return
		}

		id, err := clientIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data, err := subsSvc.Current(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		comparisons, err := svc.Comparisons(r.Context(), data.MRR, float64(data.Subscribers), time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, comparisons)
	}
}

func scenarioIDFromPath(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "scenarioId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid scenario id")
	}
	return id, nil
}
