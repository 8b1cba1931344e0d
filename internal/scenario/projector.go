// Package scenario projects a client's base metrics under named hypothetical
// inputs and compares the outcomes at fixed horizons.
package scenario

import (
	"strings"
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

// Input is a named hypothetical parameter set. CACAdjustment is accepted and
// stored but not yet consumed by the projector.
type Input struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	ChurnRate           float64             `json:"churnRate"`
	GrowthRate          float64             `json:"growthRate"`
	ARPU                float64             `json:"arpu"`
	CACAdjustment       float64             `json:"cacAdjustment"`
	SeasonalityEnabled  bool                `json:"seasonalityEnabled"`
	SeasonalAdjustments types.SeasonalChurn `json:"seasonalAdjustments,omitempty"`
}

// Projection is the 13-point forward series: index 0 holds the base values,
// indices 1-12 the projected months. Months labels the 12 forward months.
type Projection struct {
	MRR         []float64 `json:"mrr"`
	ARR         []float64 `json:"arr"`
	Subscribers []float64 `json:"subscribers"`
	CLTV        []float64 `json:"cltv"`
	Months      []string  `json:"months"`
}

// Snapshot is one fixed-horizon slice of a projection.
type Snapshot struct {
	MRR         float64 `json:"mrr"`
	ARR         float64 `json:"arr"`
	CLTV        float64 `json:"cltv"`
	Subscribers float64 `json:"subscribers"`
}

// Comparison pairs the six- and twelve-month snapshots for tabular display.
type Comparison struct {
	SixMonth    Snapshot `json:"sixMonth"`
	TwelveMonth Snapshot `json:"twelveMonth"`
}

// Project runs the scenario forward 12 months from the given base values.
// Subscribers grow by the same net-growth fraction as MRR; CLTV depends only
// on static scenario fields and is constant across the series.
func Project(in Input, baseMRR, baseSubscribers float64, now time.Time) Projection {
	months := make([]string, 12)
	for i := 0; i < 12; i++ {
		months[i] = now.AddDate(0, i+1, 0).Format("Jan 2006")
	}

	cltv := scenarioCLTV(in.ARPU, in.ChurnRate)

	projection := Projection{
		MRR:         []float64{baseMRR},
		ARR:         []float64{baseMRR * 12},
		Subscribers: []float64{baseSubscribers},
		CLTV:        []float64{cltv},
		Months:      months,
	}

	for i := 1; i <= 12; i++ {
		monthlyGrowth := in.GrowthRate / 100
		adjustedChurn := in.ChurnRate / 100

		if in.SeasonalityEnabled && in.SeasonalAdjustments != nil {
			monthKey := strings.ToLower(strings.Fields(months[i-1])[0])
			adjustedChurn *= 1 + in.SeasonalAdjustments[monthKey]/100
		}

		netGrowth := monthlyGrowth - adjustedChurn
		nextMRR := projection.MRR[i-1] * (1 + netGrowth)
		nextSubscribers := projection.Subscribers[i-1] * (1 + netGrowth)

		projection.MRR = append(projection.MRR, nextMRR)
		projection.ARR = append(projection.ARR, nextMRR*12)
		projection.Subscribers = append(projection.Subscribers, nextSubscribers)
		projection.CLTV = append(projection.CLTV, cltv)
	}

	return projection
}

func scenarioCLTV(arpu, churnRate float64) float64 {
	if churnRate == 0 {
		return 0
	}
	return arpu / (churnRate / 100)
}

// Compare extracts the fixed-horizon snapshots from each projection. The
// six- and twelve-month views read series indices 5 and 11.
func Compare(projections map[string]Projection) map[string]Comparison {
	comparisons := make(map[string]Comparison, len(projections))
	for id, p := range projections {
		if len(p.MRR) < 12 {
			continue
		}
		comparisons[id] = Comparison{
			SixMonth:    snapshotAt(p, 5),
			TwelveMonth: snapshotAt(p, 11),
		}
	}
	return comparisons
}

func snapshotAt(p Projection, index int) Snapshot {
	return Snapshot{
		MRR:         p.MRR[index],
		ARR:         p.ARR[index],
		CLTV:        p.CLTV[index],
		Subscribers: p.Subscribers[index],
	}
}
