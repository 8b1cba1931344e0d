package reports

import (
	"context"
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/enums"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

const enhanceSystemPrompt = "You are an expert SaaS CFO providing strategic analysis and recommendations. Focus on actionable insights and specific implementation steps."

type completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service generates reports and forwards them for LLM enhancement.
type Service interface {
	Generate(history []types.SubscriptionData, reportType enums.ReportType, dateRange enums.DateRange, now time.Time) (*Report, error)
	Enhance(ctx context.Context, report *Report) ([]Section, error)
}

type service struct {
	llm completer
}

// NewService builds a report service. The LLM client may be nil, in which
// case Enhance reports a dependency error instead of calling out.
func NewService(llm completer) Service {
	return &service{llm: llm}
}

func (s *service) Generate(history []types.SubscriptionData, reportType enums.ReportType, dateRange enums.DateRange, now time.Time) (*Report, error) {
	return Generate(history, reportType, dateRange, now)
}

// Enhance sends the report to the LLM and appends its commentary as a
// Strategic Recommendations section. One attempt; failures surface to the
// caller unretried.
func (s *service) Enhance(ctx context.Context, report *Report) ([]Section, error) {
	if report == nil || len(report.Sections) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report has no sections to enhance")
	}
	if s.llm == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "report enhancement is not configured")
	}

	analysis, err := s.llm.Complete(ctx, enhanceSystemPrompt, report.Prompt())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "enhancing report")
	}
	if analysis == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "empty enhancement response")
	}

	enhanced := make([]Section, len(report.Sections), len(report.Sections)+1)
	copy(enhanced, report.Sections)
	enhanced = append(enhanced, Section{
		Title:   "Strategic Recommendations",
		Content: analysis,
	})
	return enhanced, nil
}
