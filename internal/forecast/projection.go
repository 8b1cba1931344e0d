// Package forecast compounds MRR month over month under growth, churn, and
// optional seasonal churn adjustment. All functions are pure; callers own the
// returned slices.
package forecast

// Project compounds mrr over the requested number of months. Element 0 is the
// input unchanged. Net monthly growth is growthRate/100 minus the adjusted
// churn rate; the model is additive, not growth-then-churn. When a seasonal
// table is supplied its 12 entries adjust churn multiplicatively, wrapping by
// calendar-relative month. Negative net growth is allowed and the series is
// not floored at zero.
func Project(mrr, growthRate, churnRate float64, months int, seasonal []float64) []float64 {
	projections := make([]float64, 0, months+1)
	projections = append(projections, mrr)

	for i := 0; i < months; i++ {
		current := projections[i]
		monthlyGrowth := growthRate / 100
		adjustedChurn := churnRate / 100

		if len(seasonal) > 0 {
			adjustment := seasonal[i%12] / 100
			adjustedChurn *= 1 + adjustment
		}

		netGrowth := monthlyGrowth - adjustedChurn
		projections = append(projections, current*(1+netGrowth))
	}

	return projections
}

// Impact holds a baseline projection, a what-if projection at a simulated
// churn rate, and their elementwise difference.
type Impact struct {
	Baseline   []float64 `json:"baseline"`
	Impacted   []float64 `json:"impacted"`
	Difference []float64 `json:"difference"`
}

// ChurnImpact runs the projection twice, at the current and the simulated
// churn rate, sharing the growth rate and seasonal table.
func ChurnImpact(mrr, growthRate, currentChurnRate, simulatedChurnRate float64, months int, seasonal []float64) Impact {
	baseline := Project(mrr, growthRate, currentChurnRate, months, seasonal)
	impacted := Project(mrr, growthRate, simulatedChurnRate, months, seasonal)

	difference := make([]float64, len(baseline))
	for i, base := range baseline {
		difference[i] = base - impacted[i]
	}

	return Impact{
		Baseline:   baseline,
		Impacted:   impacted,
		Difference: difference,
	}
}

// SeasonalImpact returns the effective churn rate per table entry.
func SeasonalImpact(baseChurnRate float64, adjustments []float64) []float64 {
	rates := make([]float64, len(adjustments))
	for i, adjustment := range adjustments {
		rates[i] = baseChurnRate * (1 + adjustment/100)
	}
	return rates
}

// NetRetention estimates net revenue retention from churn and expansion.
// The seasonal table, when present, scales base retention by the average
// adjustment across the year.
func NetRetention(churnRate, expansionRate float64, seasonal []float64) float64 {
	baseRetention := 100 - churnRate

	if len(seasonal) > 0 {
		var sum float64
		for _, adjustment := range seasonal {
			sum += adjustment
		}
		averageAdjustment := sum / 12
		baseRetention *= 1 + averageAdjustment/100
	}

	return baseRetention + expansionRate
}
