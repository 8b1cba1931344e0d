// Package reports builds CFO-style summaries from a client's snapshot
// history and optionally enhances them with LLM commentary.
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/enums"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/Okleeqo/forecastIQ-app/pkg/format"
	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

// Metrics are the headline figures derived from the filtered history.
type Metrics struct {
	CurrentMRR        float64 `json:"currentMRR"`
	TotalSubscribers  int     `json:"totalSubscribers"`
	AverageGrowthRate float64 `json:"averageGrowthRate"`
	AverageChurnRate  float64 `json:"averageChurnRate"`
	RevenueGrowth     float64 `json:"revenueGrowth"`
	NetRetentionRate  float64 `json:"netRetentionRate"`
}

// Trends classify each headline metric's direction over the window.
type Trends struct {
	MRR         enums.Trend `json:"mrrTrend"`
	Subscribers enums.Trend `json:"subscriberTrend"`
	Churn       enums.Trend `json:"churnTrend"`
}

// Section is one titled block of report prose.
type Section struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Metrics map[string]string `json:"metrics,omitempty"`
}

// Report is the full generated document.
type Report struct {
	Title    string          `json:"title"`
	Summary  string          `json:"summary"`
	Sections []Section       `json:"sections"`
	Date     string          `json:"date"`
	Period   enums.DateRange `json:"period"`
	Metrics  Metrics         `json:"metrics"`
	Trends   Trends          `json:"trends"`
}

// Generate derives a report from the given history. The history must be
// ordered oldest first; snapshots older than the range cutoff are dropped.
func Generate(history []types.SubscriptionData, reportType enums.ReportType, dateRange enums.DateRange, now time.Time) (*Report, error) {
	if !reportType.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown report type %q", reportType))
	}
	if !dateRange.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown date range %q", dateRange))
	}

	filtered := filterByRange(history, dateRange, now)
	if len(filtered) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no subscription data in the selected range")
	}

	metrics := deriveMetrics(filtered)
	trends := deriveTrends(filtered)

	return &Report{
		Title:    reportTitle(reportType),
		Summary:  buildSummary(metrics, trends),
		Sections: buildSections(reportType, metrics, trends),
		Date:     now.UTC().Format(time.RFC3339),
		Period:   dateRange,
		Metrics:  metrics,
		Trends:   trends,
	}, nil
}

func filterByRange(history []types.SubscriptionData, dateRange enums.DateRange, now time.Time) []types.SubscriptionData {
	days, bounded := dateRange.Days()
	if !bounded {
		return history
	}

	cutoff := now.AddDate(0, 0, -days)
	var kept []types.SubscriptionData
	for _, item := range history {
		parsed, err := time.Parse(time.RFC3339, item.Date)
		if err != nil {
			continue
		}
		if !parsed.Before(cutoff) {
			kept = append(kept, item)
		}
	}
	return kept
}

func deriveMetrics(data []types.SubscriptionData) Metrics {
	last := data[len(data)-1]

	var growthSum, churnSum float64
	for _, item := range data {
		growthSum += item.GrowthRate
		churnSum += item.ChurnRate
	}
	n := float64(len(data))

	return Metrics{
		CurrentMRR:        last.MRR,
		TotalSubscribers:  last.Subscribers,
		AverageGrowthRate: growthSum / n,
		AverageChurnRate:  churnSum / n,
		RevenueGrowth:     revenueGrowth(data),
		NetRetentionRate:  netRetention(data),
	}
}

func revenueGrowth(data []types.SubscriptionData) float64 {
	if len(data) < 2 {
		return 0
	}
	first := data[0].MRR
	if first == 0 {
		return 0
	}
	return (data[len(data)-1].MRR - first) / first * 100
}

func netRetention(data []types.SubscriptionData) float64 {
	if len(data) < 2 {
		return 100
	}
	var sum float64
	for _, item := range data {
		sum += 100 - item.ChurnRate
	}
	return sum / float64(len(data))
}

func deriveTrends(data []types.SubscriptionData) Trends {
	return Trends{
		MRR:         relativeTrend(firstLastChange(data, func(d types.SubscriptionData) float64 { return d.MRR })),
		Subscribers: relativeTrend(firstLastChange(data, func(d types.SubscriptionData) float64 { return float64(d.Subscribers) })),
		Churn:       churnTrend(data),
	}
}

// firstLastChange returns the percent change between the window's endpoints,
// or 0 when the window is too short or starts at zero.
func firstLastChange(data []types.SubscriptionData, pick func(types.SubscriptionData) float64) float64 {
	if len(data) < 2 {
		return 0
	}
	first := pick(data[0])
	if first == 0 {
		return 0
	}
	return (pick(data[len(data)-1]) - first) / first * 100
}

func relativeTrend(changePct float64) enums.Trend {
	switch {
	case changePct > 1:
		return enums.TrendUp
	case changePct < -1:
		return enums.TrendDown
	}
	return enums.TrendStable
}

// churnTrend compares endpoint churn in absolute points, not percent change.
func churnTrend(data []types.SubscriptionData) enums.Trend {
	if len(data) < 2 {
		return enums.TrendStable
	}
	change := data[len(data)-1].ChurnRate - data[0].ChurnRate
	switch {
	case change > 0.1:
		return enums.TrendUp
	case change < -0.1:
		return enums.TrendDown
	}
	return enums.TrendStable
}

func reportTitle(reportType enums.ReportType) string {
	switch reportType {
	case enums.ReportRevenue:
		return "Revenue Performance Report"
	case enums.ReportChurn:
		return "Churn & Retention Report"
	case enums.ReportCohort:
		return "Cohort Analysis Report"
	case enums.ReportForecast:
		return "Revenue Forecast Report"
	}
	return "SaaS Metrics Report"
}

func buildSummary(metrics Metrics, trends Trends) string {
	return fmt.Sprintf(
		"Current MRR stands at %s across %s subscribers. Revenue is trending %s with %s average monthly growth, while churn averages %s and is trending %s.",
		format.Currency(metrics.CurrentMRR),
		format.Number(float64(metrics.TotalSubscribers)),
		trends.MRR,
		format.Percent(metrics.AverageGrowthRate),
		format.Percent(metrics.AverageChurnRate),
		trends.Churn,
	)
}

func buildSections(reportType enums.ReportType, metrics Metrics, trends Trends) []Section {
	sections := []Section{
		{
			Title: "Executive Summary",
			Content: fmt.Sprintf(
				"The business closed the period at %s MRR with a net retention rate of %s.",
				format.Currency(metrics.CurrentMRR),
				format.Percent(metrics.NetRetentionRate),
			),
			Metrics: map[string]string{
				"Current MRR":       format.Currency(metrics.CurrentMRR),
				"Total Subscribers": format.Number(float64(metrics.TotalSubscribers)),
				"Net Retention":     format.Percent(metrics.NetRetentionRate),
			},
		},
		{
			Title: "Revenue Analysis",
			Content: fmt.Sprintf(
				"Revenue grew %s over the period; MRR trend is %s.",
				format.Percent(metrics.RevenueGrowth),
				trends.MRR,
			),
			Metrics: map[string]string{
				"Revenue Growth":      format.Percent(metrics.RevenueGrowth),
				"Average Growth Rate": format.Percent(metrics.AverageGrowthRate),
			},
		},
		{
			Title: "Churn & Retention",
			Content: fmt.Sprintf(
				"Average churn over the period is %s and the churn trend is %s.",
				format.Percent(metrics.AverageChurnRate),
				trends.Churn,
			),
			Metrics: map[string]string{
				"Average Churn Rate": format.Percent(metrics.AverageChurnRate),
				"Subscriber Trend":   string(trends.Subscribers),
			},
		},
	}

	if reportType == enums.ReportForecast {
		sections = append(sections, Section{
			Title: "Forward Outlook",
			Content: fmt.Sprintf(
				"At the current %s average growth and %s average churn, revenue momentum is %s.",
				format.Percent(metrics.AverageGrowthRate),
				format.Percent(metrics.AverageChurnRate),
				trends.MRR,
			),
		})
	}

	return sections
}

// Prompt renders the generated report as an LLM instruction asking for
// strategic enhancement.
func (r *Report) Prompt() string {
	var b strings.Builder
	b.WriteString("As an experienced SaaS CFO and financial analyst, review and enhance the following financial report with strategic insights and actionable recommendations. Focus on identifying key opportunities, risks, and specific action items.\n\nCurrent Report:\n")
	for _, section := range r.Sections {
		fmt.Fprintf(&b, "\n%s:\n%s\n", section.Title, section.Content)
	}
	fmt.Fprintf(&b, "\nKey Metrics:\n- MRR: %s\n- Subscribers: %d\n- Average Churn Rate: %s\n- Average Growth Rate: %s\n",
		format.Currency(r.Metrics.CurrentMRR),
		r.Metrics.TotalSubscribers,
		format.Percent(r.Metrics.AverageChurnRate),
		format.Percent(r.Metrics.AverageGrowthRate),
	)
	b.WriteString("\nProvide enhanced analysis focusing on:\n1. Strategic implications of the current metrics\n2. Specific, actionable recommendations\n3. Risk mitigation strategies\n4. Growth opportunities\n5. Operational improvements")
	return b.String()
}
