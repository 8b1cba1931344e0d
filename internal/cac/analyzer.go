// Package cac derives customer-acquisition efficiency: CAC, CLTV, their
// ratio, payback period, and plain-sentence insights per segment and overall.
package cac

import (
	"fmt"

	"github.com/Okleeqo/forecastIQ-app/pkg/enums"
	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

// SegmentMetrics holds the acquisition-efficiency numbers for one scope.
type SegmentMetrics struct {
	CAC           float64          `json:"cac"`
	CLTV          float64          `json:"cltv"`
	CLTVCACRatio  float64          `json:"cltvCacRatio"`
	PaybackPeriod float64          `json:"paybackPeriod"`
	Efficiency    enums.Efficiency `json:"efficiency"`
}

// Metrics is the full analyzer output.
type Metrics struct {
	Overall  SegmentMetrics            `json:"overall"`
	Segments map[string]SegmentMetrics `json:"segments"`
	Insights []string                  `json:"insights"`
}

// Analyze computes overall and per-segment CAC efficiency from the latest
// snapshot. A nil snapshot degrades to zero metrics and a single "no data"
// insight; every division is zero-guarded so the result is total over the
// input domain.
func Analyze(data *types.SubscriptionData, thresholdRatio float64) Metrics {
	if data == nil {
		return Metrics{
			Overall:  SegmentMetrics{Efficiency: enums.EfficiencyPoor},
			Segments: map[string]SegmentMetrics{},
			Insights: []string{"No data available"},
		}
	}

	averageCAC := averageCAC(data.CAC)
	monthlyRevenue := revenuePerUser(data.MRR, data.Subscribers)

	overall := scopeMetrics(averageCAC, monthlyRevenue, data.ChurnRate, thresholdRatio)

	segments := make(map[string]SegmentMetrics, len(data.Segments))
	for _, segment := range data.Segments {
		segCAC := segmentCAC(segment.Name, data.CAC)
		segRevenue := revenuePerUser(segment.MRR, segment.Subscribers)
		segments[segment.Name.String()] = scopeMetrics(segCAC, segRevenue, segment.ChurnRate, thresholdRatio)
	}

	insights := generateInsights(data.Segments, segments, overall, thresholdRatio)

	return Metrics{Overall: overall, Segments: segments, Insights: insights}
}

func scopeMetrics(cac, monthlyRevenue, churnRate, thresholdRatio float64) SegmentMetrics {
	cltv := computeCLTV(monthlyRevenue, churnRate)
	ratio := computeRatio(cltv, cac)
	return SegmentMetrics{
		CAC:           cac,
		CLTV:          cltv,
		CLTVCACRatio:  ratio,
		PaybackPeriod: paybackPeriod(monthlyRevenue, cac),
		Efficiency:    efficiencyRating(ratio, thresholdRatio),
	}
}

func averageCAC(cac types.CACData) float64 {
	if cac.Average > 0 {
		return cac.Average
	}

	var sum float64
	var count int
	for _, v := range []float64{cac.SMB, cac.MidMarket, cac.Enterprise} {
		if v > 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func revenuePerUser(mrr float64, subscribers int) float64 {
	if subscribers <= 0 {
		return 0
	}
	return mrr / float64(subscribers)
}

// computeCLTV reports 0 at zero churn. CLTV is unbounded when nobody churns;
// zero is the documented simplification rather than infinity.
func computeCLTV(monthlyRevenue, churnRate float64) float64 {
	if monthlyRevenue == 0 || churnRate == 0 {
		return 0
	}
	monthlyChurn := churnRate / 100
	if monthlyChurn <= 0 {
		return 0
	}
	return monthlyRevenue / monthlyChurn
}

func computeRatio(value, divisor float64) float64 {
	if value == 0 || divisor <= 0 {
		return 0
	}
	return value / divisor
}

func paybackPeriod(monthlyRevenue, cac float64) float64 {
	if monthlyRevenue <= 0 || cac == 0 {
		return 0
	}
	return cac / monthlyRevenue
}

// segmentCAC resolves acquisition cost over the closed segment enum. Unknown
// names resolve to 0; historical data may carry free-form names.
func segmentCAC(name enums.SegmentType, cac types.CACData) float64 {
	switch name {
	case enums.SegmentSMB:
		return cac.SMB
	case enums.SegmentMidMarket:
		return cac.MidMarket
	case enums.SegmentEnterprise:
		return cac.Enterprise
	default:
		return 0
	}
}

func efficiencyRating(ratio, threshold float64) enums.Efficiency {
	if ratio == 0 || threshold == 0 {
		return enums.EfficiencyPoor
	}
	if ratio >= threshold*1.5 {
		return enums.EfficiencyOptimal
	}
	if ratio >= threshold {
		return enums.EfficiencyGood
	}
	return enums.EfficiencyPoor
}

// generateInsights walks segments in snapshot order so output is
// deterministic. A segment can contribute up to two insights.
func generateInsights(ordered types.SegmentList, segments map[string]SegmentMetrics, overall SegmentMetrics, thresholdRatio float64) []string {
	insights := []string{}

	if overall.CAC == 0 {
		return append(insights, "No CAC data available. Please input customer acquisition costs.")
	}

	if overall.CLTVCACRatio < thresholdRatio {
		insights = append(insights, fmt.Sprintf(
			"Overall CLTV/CAC ratio (%.2fx) is below target %gx.",
			overall.CLTVCACRatio, thresholdRatio))
	}

	for _, segment := range ordered {
		metrics, ok := segments[segment.Name.String()]
		if !ok {
			continue
		}

		if metrics.CLTVCACRatio < thresholdRatio {
			insights = append(insights, fmt.Sprintf(
				"%s segment needs attention (%.2fx ratio).",
				segment.Name, metrics.CLTVCACRatio))
		}

		if metrics.PaybackPeriod > 12 {
			insights = append(insights, fmt.Sprintf(
				"%s segment has a long payback period (%.1f months).",
				segment.Name, metrics.PaybackPeriod))
		}
	}

	return insights
}

// GrowthInsights layers opportunity-oriented observations on top of the core
// analyzer output. Kept separate so Analyze's insight ordering stays stable.
func GrowthInsights(m Metrics) []string {
	insights := []string{}

	if m.Overall.CLTVCACRatio > 5 {
		insights = append(insights,
			"Opportunity: High LTV:CAC ratio indicates potential for more aggressive growth. Consider increasing marketing spend.")
	}
	if m.Overall.PaybackPeriod > 0 && m.Overall.PaybackPeriod < 6 {
		insights = append(insights,
			"Positive: Quick customer payback period indicates efficient customer acquisition. Consider scaling acquisition efforts.")
	}

	for _, name := range []string{"SMB", "Mid-Market", "Enterprise"} {
		metrics, ok := m.Segments[name]
		if !ok {
			continue
		}
		if metrics.CLTVCACRatio < m.Overall.CLTVCACRatio {
			insights = append(insights, fmt.Sprintf(
				"%s segment shows lower efficiency than average. Review acquisition strategy and pricing.", name))
		}
	}

	return insights
}
