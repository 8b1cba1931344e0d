package controllers

import (
	"net/http"
	"time"

	"github.com/Okleeqo/forecastIQ-app/api/responses"
	"github.com/Okleeqo/forecastIQ-app/api/validators"
	"github.com/Okleeqo/forecastIQ-app/internal/clients"
	"github.com/Okleeqo/forecastIQ-app/internal/subscriptions"
	"github.com/Okleeqo/forecastIQ-app/pkg/enums"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/Okleeqo/forecastIQ-app/pkg/logger"
	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

type segmentPayload struct {
	Name        string  `json:"name" validate:"required"`
	Subscribers int     `json:"subscribers" validate:"min=0"`
	MRR         float64 `json:"mrr" validate:"min=0"`
	ChurnRate   float64 `json:"churnRate" validate:"min=0,max=100"`
	GrowthRate  float64 `json:"growthRate"`
}

type snapshotAppendRequest struct {
	MRR           float64            `json:"mrr" validate:"min=0"`
	Subscribers   int                `json:"subscribers" validate:"min=0"`
	ChurnRate     float64            `json:"churnRate" validate:"min=0,max=100"`
	GrowthRate    float64            `json:"growthRate"`
	Date          *time.Time         `json:"date,omitempty"`
	Segments      []segmentPayload   `json:"segments,omitempty" validate:"dive"`
	SeasonalChurn map[string]float64 `json:"seasonalChurn,omitempty"`
	CAC           *types.CACData     `json:"cac,omitempty"`
}

func (req snapshotAppendRequest) toInput() subscriptions.AppendSnapshotInput {
	input := subscriptions.AppendSnapshotInput{
		MRR:           req.MRR,
		Subscribers:   req.Subscribers,
		ChurnRate:     req.ChurnRate,
		GrowthRate:    req.GrowthRate,
		SeasonalChurn: req.SeasonalChurn,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}
	for _, seg := range req.Segments {
		input.Segments = append(input.Segments, types.Segment{
			Name:        enums.SegmentType(seg.Name),
			Subscribers: seg.Subscribers,
			MRR:         seg.MRR,
			ChurnRate:   seg.ChurnRate,
			GrowthRate:  seg.GrowthRate,
		})
	}
	if req.CAC != nil {
		input.CAC = *req.CAC
	}
	return input
}

// SnapshotAppend records one metrics observation for the client.
func SnapshotAppend(subsSvc subscriptions.Service, clientSvc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if subsSvc == nil || clientSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		id, err := clientIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := clientSvc.GetByID(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload snapshotAppendRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithClientID(ctx, id.String())
		}

		data, err := subsSvc.Append(ctx, id, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, data)
	}
}

// SnapshotHistory returns the client's full history, oldest first.
func SnapshotHistory(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, history)
	}
}

// SnapshotLatest returns the client's most recent snapshot.
func SnapshotLatest(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
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

		current, err := svc.Current(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, current)
	}
}

// SnapshotReset wipes the client's snapshot history.
func SnapshotReset(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Reset(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "reset"})
	}
}
