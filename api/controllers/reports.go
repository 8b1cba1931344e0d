package controllers

import (
	"net/http"
	"time"

	"github.com/Okleeqo/forecastIQ-app/api/responses"
	"github.com/Okleeqo/forecastIQ-app/api/validators"
	"github.com/Okleeqo/forecastIQ-app/internal/reports"
	"github.com/Okleeqo/forecastIQ-app/internal/subscriptions"
	"github.com/Okleeqo/forecastIQ-app/pkg/enums"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/Okleeqo/forecastIQ-app/pkg/logger"
)

type reportRequest struct {
	Type      string `json:"type" validate:"required,oneof=revenue churn cohort forecast"`
	DateRange string `json:"dateRange" validate:"required,oneof=30d 90d 6m 1y all"`
}

// ReportGenerate derives a CFO report from the client's history.
func ReportGenerate(svc reports.Service, subsSvc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := buildReport(w, r, svc, subsSvc, logg)
		if err != nil {
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ReportEnhance generates the report and forwards it to the LLM for
// strategic commentary. The route sits behind the report rate limiter.
func ReportEnhance(svc reports.Service, subsSvc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := buildReport(w, r, svc, subsSvc, logg)
		if err != nil {
			return
		}

		sections, err := svc.Enhance(r.Context(), report)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"title":    report.Title,
			"date":     report.Date,
			"period":   report.Period,
			"sections": sections,
		})
	}
}

// buildReport handles the shared decode/load/generate flow. On error it has
// already written the response and returns a non-nil error as a signal.
func buildReport(w http.ResponseWriter, r *http.Request, svc reports.Service, subsSvc subscriptions.Service, logg *logger.Logger) (*reports.Report, error) {
	if svc == nil || subsSvc == nil {
		err := pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable")
		responses.WriteError(r.Context(), logg, w, err)
		return nil, err
	}

	id, err := clientIDFromPath(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, err
	}

	var payload reportRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, err
	}

	history, err := subsSvc.History(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, err
	}

	report, err := svc.Generate(history, enums.ReportType(payload.Type), enums.DateRange(payload.DateRange), time.Now().UTC())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, err
	}
	return report, nil
}
