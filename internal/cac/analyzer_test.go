package cac

import (
	"math"
	"strings"
	"testing"

	"github.com/Okleeqo/forecastIQ-app/pkg/enums"
	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

func TestAnalyzeNilData(t *testing.T) {
	metrics := Analyze(nil, 3)

	if metrics.Overall.CAC != 0 || metrics.Overall.CLTV != 0 {
		t.Fatalf("expected zeroed overall metrics, got %+v", metrics.Overall)
	}
	if metrics.Overall.Efficiency != enums.EfficiencyPoor {
		t.Fatalf("expected poor efficiency, got %s", metrics.Overall.Efficiency)
	}
	if len(metrics.Segments) != 0 {
		t.Fatalf("expected empty segments, got %d", len(metrics.Segments))
	}
	if len(metrics.Insights) != 1 || metrics.Insights[0] != "No data available" {
		t.Fatalf("expected single no-data insight, got %v", metrics.Insights)
	}
}

func TestAnalyzeEndToEndExample(t *testing.T) {
	data := &types.SubscriptionData{
		MRR:         10000,
		Subscribers: 100,
		ChurnRate:   5,
		CAC:         types.CACData{SMB: 1000},
	}

	metrics := Analyze(data, 3)

	if metrics.Overall.CAC != 1000 {
		t.Fatalf("expected average CAC 1000, got %v", metrics.Overall.CAC)
	}
	if math.Abs(metrics.Overall.CLTV-2000) > 1e-9 {
		t.Fatalf("expected CLTV 2000, got %v", metrics.Overall.CLTV)
	}
	if math.Abs(metrics.Overall.CLTVCACRatio-2) > 1e-9 {
		t.Fatalf("expected ratio 2, got %v", metrics.Overall.CLTVCACRatio)
	}
	if metrics.Overall.Efficiency != enums.EfficiencyPoor {
		t.Fatalf("expected poor classification, got %s", metrics.Overall.Efficiency)
	}
	if len(metrics.Insights) != 1 || !strings.Contains(metrics.Insights[0], "below target 3x") {
		t.Fatalf("expected one below-target insight, got %v", metrics.Insights)
	}
}

func TestAverageCACOverride(t *testing.T) {
	data := &types.SubscriptionData{
		MRR:         10000,
		Subscribers: 100,
		ChurnRate:   5,
		CAC:         types.CACData{SMB: 1000, MidMarket: 3000, Average: 500},
	}

	metrics := Analyze(data, 3)
	if metrics.Overall.CAC != 500 {
		t.Fatalf("expected supplied average 500 to win, got %v", metrics.Overall.CAC)
	}
}

func TestAverageCACMeanOfNonZero(t *testing.T) {
	data := &types.SubscriptionData{
		MRR:         10000,
		Subscribers: 100,
		ChurnRate:   5,
		CAC:         types.CACData{SMB: 1000, Enterprise: 3000},
	}

	metrics := Analyze(data, 3)
	if metrics.Overall.CAC != 2000 {
		t.Fatalf("expected mean of non-zero values 2000, got %v", metrics.Overall.CAC)
	}
}

func TestAnalyzeAllZeroCAC(t *testing.T) {
	data := &types.SubscriptionData{
		MRR:         10000,
		Subscribers: 100,
		ChurnRate:   5,
	}

	metrics := Analyze(data, 3)
	if metrics.Overall.CAC != 0 {
		t.Fatalf("expected zero CAC, got %v", metrics.Overall.CAC)
	}
	if len(metrics.Insights) != 1 ||
		metrics.Insights[0] != "No CAC data available. Please input customer acquisition costs." {
		t.Fatalf("expected single no-CAC insight and stop, got %v", metrics.Insights)
	}
}

func TestAnalyzeZeroChurnReportsZeroCLTV(t *testing.T) {
	data := &types.SubscriptionData{
		MRR:         10000,
		Subscribers: 100,
		ChurnRate:   0,
		CAC:         types.CACData{Average: 1000},
	}

	metrics := Analyze(data, 3)
	if metrics.Overall.CLTV != 0 || metrics.Overall.CLTVCACRatio != 0 {
		t.Fatalf("expected zero CLTV at zero churn, got %+v", metrics.Overall)
	}
}

func TestRatioMonotonicInCAC(t *testing.T) {
	base := types.SubscriptionData{
		MRR:         10000,
		Subscribers: 100,
		ChurnRate:   5,
	}

	var previous float64 = math.Inf(1)
	for _, cacValue := range []float64{500, 1000, 2000, 4000} {
		data := base
		data.CAC = types.CACData{Average: cacValue}
		ratio := Analyze(&data, 3).Overall.CLTVCACRatio
		if ratio >= previous {
			t.Fatalf("expected strictly decreasing ratio, got %v after %v", ratio, previous)
		}
		previous = ratio
	}
}

func TestSegmentInsightsOrderedAndCapped(t *testing.T) {
	data := &types.SubscriptionData{
		MRR:         50000,
		Subscribers: 500,
		ChurnRate:   5,
		CAC:         types.CACData{SMB: 100, MidMarket: 20000, Enterprise: 20000},
		Segments: types.SegmentList{
			// Healthy: revenue/user 100, CLTV 2000, ratio 20.
			{Name: enums.SegmentSMB, Subscribers: 400, MRR: 40000, ChurnRate: 5},
			// Ratio below threshold AND payback over 12 months.
			{Name: enums.SegmentMidMarket, Subscribers: 90, MRR: 9000, ChurnRate: 10},
			// Ratio below threshold AND payback over 12 months.
			{Name: enums.SegmentEnterprise, Subscribers: 10, MRR: 10000, ChurnRate: 40},
		},
	}

	metrics := Analyze(data, 3)

	// Overall ratio: revenue/user 100, CLTV 2000, average CAC mean(100,20000,20000).
	var wantInsights []string
	if metrics.Overall.CLTVCACRatio < 3 {
		wantInsights = append(wantInsights, "Overall")
	}
	wantInsights = append(wantInsights, "Mid-Market", "Mid-Market", "Enterprise", "Enterprise")

	if len(metrics.Insights) != len(wantInsights) {
		t.Fatalf("expected %d insights, got %v", len(wantInsights), metrics.Insights)
	}
	for i, prefix := range wantInsights {
		if !strings.HasPrefix(metrics.Insights[i], prefix) {
			t.Fatalf("insight %d: expected prefix %q, got %q", i, prefix, metrics.Insights[i])
		}
	}
}

func TestZeroSubscribersGuard(t *testing.T) {
	data := &types.SubscriptionData{
		MRR:         10000,
		Subscribers: 0,
		ChurnRate:   5,
		CAC:         types.CACData{Average: 1000},
	}

	metrics := Analyze(data, 3)
	if metrics.Overall.CLTV != 0 || metrics.Overall.PaybackPeriod != 0 {
		t.Fatalf("expected zero-guarded metrics for zero subscribers, got %+v", metrics.Overall)
	}
	if math.IsNaN(metrics.Overall.CLTVCACRatio) || math.IsInf(metrics.Overall.CLTVCACRatio, 0) {
		t.Fatalf("ratio must be finite, got %v", metrics.Overall.CLTVCACRatio)
	}
}

func TestGrowthInsights(t *testing.T) {
	m := Metrics{
		Overall: SegmentMetrics{CLTVCACRatio: 6, PaybackPeriod: 4},
		Segments: map[string]SegmentMetrics{
			"SMB":        {CLTVCACRatio: 8},
			"Enterprise": {CLTVCACRatio: 2},
		},
	}

	insights := GrowthInsights(m)
	if len(insights) != 3 {
		t.Fatalf("expected 3 insights, got %v", insights)
	}
	if !strings.HasPrefix(insights[0], "Opportunity:") {
		t.Fatalf("expected opportunity insight first, got %q", insights[0])
	}
	if !strings.HasPrefix(insights[1], "Positive:") {
		t.Fatalf("expected payback insight second, got %q", insights[1])
	}
	if !strings.HasPrefix(insights[2], "Enterprise segment") {
		t.Fatalf("expected enterprise lag insight, got %q", insights[2])
	}
}
