// Package revenue decomposes MRR movement into new, expansion, contraction,
// and churned components per month and per segment. The monthly series is a
// modeled projection over current segment averages, not a replay of history.
package revenue

import (
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/enums"
	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

// SegmentAll selects every segment in the snapshot.
const SegmentAll = "all"

// Assumptions are the modeled expansion and contraction rates. They are not
// derived from data; override them through configuration when calibrating.
type Assumptions struct {
	ExpansionRate   float64
	ContractionRate float64
}

// DefaultAssumptions mirrors the product team's 10% expansion / 5%
// contraction placeholders.
var DefaultAssumptions = Assumptions{ExpansionRate: 0.10, ContractionRate: 0.05}

// MonthlyData is one synthetic month of the waterfall.
type MonthlyData struct {
	Month          string  `json:"month"`
	NewMRR         float64 `json:"newMrr"`
	ExpansionMRR   float64 `json:"expansionMrr"`
	ContractionMRR float64 `json:"contractionMrr"`
	ChurnedMRR     float64 `json:"churnedMrr"`
	NetMRR         float64 `json:"netMrr"`
}

// SegmentData is the single-period decomposition for one segment.
type SegmentData struct {
	Name           string  `json:"name"`
	NewMRR         float64 `json:"newMrr"`
	ExpansionMRR   float64 `json:"expansionMrr"`
	ContractionMRR float64 `json:"contractionMrr"`
	ChurnedMRR     float64 `json:"churnedMrr"`
	NetMRR         float64 `json:"netMrr"`
}

// Summary accumulates each component across the monthly series.
type Summary struct {
	NewMRR         float64 `json:"newMrr"`
	ExpansionMRR   float64 `json:"expansionMrr"`
	ContractionMRR float64 `json:"contractionMrr"`
	ChurnedMRR     float64 `json:"churnedMrr"`
	NetMRR         float64 `json:"netMrr"`
}

// Breakdown is the full waterfall output.
type Breakdown struct {
	MonthlyData []MonthlyData `json:"monthlyData"`
	SegmentData []SegmentData `json:"segmentData"`
	Summary     Summary       `json:"summary"`
}

// Compute decomposes MRR movement for the filtered segments over the last
// `months` calendar months ending at now. segmentFilter is SegmentAll or one
// segment name; a filter matching nothing yields zero-valued months.
func Compute(data types.SubscriptionData, segmentFilter string, months int, now time.Time, assume Assumptions) Breakdown {
	segments := filterSegments(data.Segments, segmentFilter)

	monthly := monthlySeries(segments, months, now, assume)
	perSegment := segmentSeries(segments, assume)

	var summary Summary
	for _, m := range monthly {
		summary.NewMRR += m.NewMRR
		summary.ExpansionMRR += m.ExpansionMRR
		summary.ContractionMRR += m.ContractionMRR
		summary.ChurnedMRR += m.ChurnedMRR
		summary.NetMRR += m.NetMRR
	}

	return Breakdown{
		MonthlyData: monthly,
		SegmentData: perSegment,
		Summary:     summary,
	}
}

func filterSegments(segments types.SegmentList, filter string) types.SegmentList {
	if filter == "" || filter == SegmentAll {
		return segments
	}
	filtered := make(types.SegmentList, 0, 1)
	for _, s := range segments {
		if s.Name == enums.SegmentType(filter) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func monthlySeries(segments types.SegmentList, months int, now time.Time, assume Assumptions) []MonthlyData {
	var totalMRR, avgGrowth, avgChurn float64
	for _, s := range segments {
		totalMRR += s.MRR
		avgGrowth += s.GrowthRate
		avgChurn += s.ChurnRate
	}
	if n := len(segments); n > 0 {
		avgGrowth /= float64(n)
		avgChurn /= float64(n)
	}

	series := make([]MonthlyData, 0, months)
	for i := 0; i < months; i++ {
		label := now.AddDate(0, -(months - i - 1), 0).Format("Jan 2006")

		newMRR := totalMRR * avgGrowth / 100
		expansion := totalMRR * assume.ExpansionRate
		contraction := totalMRR * assume.ContractionRate
		churned := totalMRR * avgChurn / 100

		series = append(series, MonthlyData{
			Month:          label,
			NewMRR:         newMRR,
			ExpansionMRR:   expansion,
			ContractionMRR: contraction,
			ChurnedMRR:     churned,
			NetMRR:         newMRR + expansion - contraction - churned,
		})
	}
	return series
}

func segmentSeries(segments types.SegmentList, assume Assumptions) []SegmentData {
	result := make([]SegmentData, 0, len(segments))
	for _, s := range segments {
		newMRR := s.MRR * s.GrowthRate / 100
		expansion := s.MRR * assume.ExpansionRate
		contraction := s.MRR * assume.ContractionRate
		churned := s.MRR * s.ChurnRate / 100

		result = append(result, SegmentData{
			Name:           s.Name.String(),
			NewMRR:         newMRR,
			ExpansionMRR:   expansion,
			ContractionMRR: contraction,
			ChurnedMRR:     churned,
			NetMRR:         newMRR + expansion - contraction - churned,
		})
	}
	return result
}
