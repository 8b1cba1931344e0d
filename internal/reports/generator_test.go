package reports

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/enums"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

func snapshot(date time.Time, mrr float64, subscribers int, churn, growth float64) types.SubscriptionData {
	return types.SubscriptionData{
		MRR:         mrr,
		Subscribers: subscribers,
		ChurnRate:   churn,
		GrowthRate:  growth,
		Date:        date.Format(time.RFC3339),
	}
}

func TestGenerateValidatesInputs(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	history := []types.SubscriptionData{snapshot(now, 10000, 100, 5, 10)}

	if _, err := Generate(history, "quarterly", enums.RangeAll, now); err == nil {
		t.Fatal("expected error for unknown report type")
	}
	if _, err := Generate(history, enums.ReportRevenue, "45d", now); err == nil {
		t.Fatal("expected error for unknown date range")
	}
}

func TestGenerateEmptyRange(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	old := snapshot(now.AddDate(-1, 0, 0), 10000, 100, 5, 10)

	_, err := Generate([]types.SubscriptionData{old}, enums.ReportRevenue, enums.Range30d, now)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerateMetricsAndTrends(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	history := []types.SubscriptionData{
		snapshot(now.AddDate(0, -2, 0), 10000, 100, 5, 10),
		snapshot(now.AddDate(0, -1, 0), 11000, 108, 4.8, 10),
		snapshot(now.AddDate(0, 0, -1), 12100, 118, 4.5, 10),
	}

	report, err := Generate(history, enums.ReportRevenue, enums.RangeAll, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if report.Metrics.CurrentMRR != 12100 {
		t.Fatalf("expected current MRR from last snapshot, got %v", report.Metrics.CurrentMRR)
	}
	if report.Metrics.TotalSubscribers != 118 {
		t.Fatalf("expected subscribers from last snapshot, got %d", report.Metrics.TotalSubscribers)
	}
	if got := report.Metrics.RevenueGrowth; got < 20.9 || got > 21.1 {
		t.Fatalf("expected ~21%% revenue growth, got %v", got)
	}
	if report.Trends.MRR != enums.TrendUp {
		t.Fatalf("expected MRR trend up, got %s", report.Trends.MRR)
	}
	if report.Trends.Subscribers != enums.TrendUp {
		t.Fatalf("expected subscriber trend up, got %s", report.Trends.Subscribers)
	}
	if report.Trends.Churn != enums.TrendDown {
		t.Fatalf("expected churn trend down, got %s", report.Trends.Churn)
	}
	if len(report.Sections) != 3 {
		t.Fatalf("expected 3 sections for revenue report, got %d", len(report.Sections))
	}
	if report.Period != enums.RangeAll {
		t.Fatalf("unexpected period %s", report.Period)
	}
}

func TestGenerateSingleSnapshotIsStable(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	history := []types.SubscriptionData{snapshot(now, 10000, 100, 5, 10)}

	report, err := Generate(history, enums.ReportChurn, enums.RangeAll, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if report.Trends.MRR != enums.TrendStable || report.Trends.Churn != enums.TrendStable {
		t.Fatalf("expected stable trends, got %+v", report.Trends)
	}
	if report.Metrics.NetRetentionRate != 100 {
		t.Fatalf("expected 100%% retention default, got %v", report.Metrics.NetRetentionRate)
	}
	if report.Metrics.RevenueGrowth != 0 {
		t.Fatalf("expected 0 revenue growth, got %v", report.Metrics.RevenueGrowth)
	}
}

func TestGenerateRangeFilter(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	history := []types.SubscriptionData{
		snapshot(now.AddDate(0, -6, 0), 5000, 50, 8, 5),
		snapshot(now.AddDate(0, 0, -10), 12000, 120, 4, 12),
	}

	report, err := Generate(history, enums.ReportRevenue, enums.Range30d, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// Only the recent snapshot survives the cutoff, so averages equal it.
	if report.Metrics.AverageChurnRate != 4 || report.Metrics.AverageGrowthRate != 12 {
		t.Fatalf("range filter leaked old data: %+v", report.Metrics)
	}
}

func TestForecastReportAddsOutlook(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	history := []types.SubscriptionData{snapshot(now, 10000, 100, 5, 10)}

	report, err := Generate(history, enums.ReportForecast, enums.RangeAll, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	last := report.Sections[len(report.Sections)-1]
	if last.Title != "Forward Outlook" {
		t.Fatalf("expected forward outlook section, got %q", last.Title)
	}
}

type stubCompleter struct {
	response string
	err      error
	gotUser  string
}

func (s *stubCompleter) Complete(_ context.Context, _, user string) (string, error) {
	s.gotUser = user
	return s.response, s.err
}

func TestEnhanceAppendsRecommendations(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	history := []types.SubscriptionData{snapshot(now, 10000, 100, 5, 10)}
	report, err := Generate(history, enums.ReportRevenue, enums.RangeAll, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	llm := &stubCompleter{response: "Reduce churn in the SMB segment."}
	svc := NewService(llm)

	sections, err := svc.Enhance(context.Background(), report)
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if len(sections) != len(report.Sections)+1 {
		t.Fatalf("expected one appended section, got %d", len(sections))
	}
	last := sections[len(sections)-1]
	if last.Title != "Strategic Recommendations" || last.Content != "Reduce churn in the SMB segment." {
		t.Fatalf("unexpected appended section: %+v", last)
	}
	if !strings.Contains(llm.gotUser, "Executive Summary") {
		t.Fatal("prompt should embed the generated sections")
	}
	if !strings.Contains(llm.gotUser, "$10,000") {
		t.Fatalf("prompt should embed formatted MRR, got:\n%s", llm.gotUser)
	}
}

func TestEnhanceSurfacesLLMError(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	history := []types.SubscriptionData{snapshot(now, 10000, 100, 5, 10)}
	report, err := Generate(history, enums.ReportRevenue, enums.RangeAll, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc := NewService(&stubCompleter{err: errors.New("rate limited upstream")})
	_, gotErr := svc.Enhance(context.Background(), report)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}

func TestEnhanceWithoutClient(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	history := []types.SubscriptionData{snapshot(now, 10000, 100, 5, 10)}
	report, err := Generate(history, enums.ReportRevenue, enums.RangeAll, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc := NewService(nil)
	_, gotErr := svc.Enhance(context.Background(), report)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}
