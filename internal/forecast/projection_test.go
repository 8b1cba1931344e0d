package forecast

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestProjectFirstElementIsInput(t *testing.T) {
	cases := []struct {
		name          string
		mrr           float64
		growth, churn float64
		months        int
	}{
		{"flat", 10000, 0, 0, 12},
		{"growth only", 5000, 10, 0, 6},
		{"churn only", 2500, 0, 8, 24},
		{"mixed", 10000, 10, 5, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			series := Project(tc.mrr, tc.growth, tc.churn, tc.months, nil)
			if len(series) != tc.months+1 {
				t.Fatalf("expected %d points, got %d", tc.months+1, len(series))
			}
			if series[0] != tc.mrr {
				t.Fatalf("expected series[0]=%v, got %v", tc.mrr, series[0])
			}
		})
	}
}

func TestProjectPureGrowthCompounds(t *testing.T) {
	mrr := 10000.0
	growth := 7.0
	months := 18

	series := Project(mrr, growth, 0, months, nil)
	want := mrr * math.Pow(1+growth/100, float64(months))
	if math.Abs(series[months]-want) > 1e-6 {
		t.Fatalf("expected %v at month %d, got %v", want, months, series[months])
	}
}

func TestProjectPureChurnIsNonIncreasing(t *testing.T) {
	series := Project(10000, 0, 4, 24, nil)
	for i := 1; i < len(series); i++ {
		if series[i] > series[i-1] {
			t.Fatalf("series increased at %d: %v > %v", i, series[i], series[i-1])
		}
	}
}

func TestProjectKnownValues(t *testing.T) {
	series := Project(10000, 10, 5, 12, nil)
	if series[0] != 10000 {
		t.Fatalf("expected 10000 at month 0, got %v", series[0])
	}
	if math.Abs(series[1]-10500) > tolerance {
		t.Fatalf("expected 10500 at month 1, got %v", series[1])
	}
}

func TestProjectSeasonalAdjustmentWraps(t *testing.T) {
	// +100% churn adjustment in January only; table wraps after month 12.
	seasonal := make([]float64, 12)
	seasonal[0] = 100

	series := Project(10000, 0, 5, 13, seasonal)

	// Month 1 uses entry 0: churn doubled to 10%.
	if math.Abs(series[1]-9000) > tolerance {
		t.Fatalf("expected 9000 at month 1, got %v", series[1])
	}
	// Month 2 uses entry 1: unadjusted 5% churn.
	if math.Abs(series[2]-9000*0.95) > tolerance {
		t.Fatalf("expected %v at month 2, got %v", 9000*0.95, series[2])
	}
	// Month 13 wraps to entry 0 again.
	ratio := series[13] / series[12]
	if math.Abs(ratio-0.90) > tolerance {
		t.Fatalf("expected wrap to doubled churn at month 13, got ratio %v", ratio)
	}
}

func TestProjectNegativeNetGrowthNotFloored(t *testing.T) {
	series := Project(100, 0, 150, 3, nil)
	// 150% churn drives the series negative; the engine does not clamp.
	if series[1] >= 0 {
		t.Fatalf("expected negative value at month 1, got %v", series[1])
	}
}

func TestChurnImpactDifference(t *testing.T) {
	impact := ChurnImpact(10000, 10, 5, 8, 12, nil)

	if len(impact.Baseline) != 13 || len(impact.Impacted) != 13 || len(impact.Difference) != 13 {
		t.Fatalf("expected 13-point series, got %d/%d/%d",
			len(impact.Baseline), len(impact.Impacted), len(impact.Difference))
	}
	if impact.Difference[0] != 0 {
		t.Fatalf("expected zero difference at month 0, got %v", impact.Difference[0])
	}
	for i := range impact.Baseline {
		want := impact.Baseline[i] - impact.Impacted[i]
		if math.Abs(impact.Difference[i]-want) > tolerance {
			t.Fatalf("difference mismatch at %d: %v vs %v", i, impact.Difference[i], want)
		}
	}
	// Higher simulated churn means the baseline stays above the impacted run.
	if impact.Difference[12] <= 0 {
		t.Fatalf("expected positive difference at month 12, got %v", impact.Difference[12])
	}
}

func TestSeasonalImpact(t *testing.T) {
	rates := SeasonalImpact(5, []float64{0, 100, -100})
	want := []float64{5, 10, 0}
	for i := range want {
		if math.Abs(rates[i]-want[i]) > tolerance {
			t.Fatalf("entry %d: expected %v got %v", i, want[i], rates[i])
		}
	}
}

func TestNetRetention(t *testing.T) {
	if got := NetRetention(5, 10, nil); math.Abs(got-105) > tolerance {
		t.Fatalf("expected 105, got %v", got)
	}

	// Average +12%/12 = +1% adjustment scales base retention.
	seasonal := make([]float64, 12)
	seasonal[0] = 12
	if got := NetRetention(5, 0, seasonal); math.Abs(got-95*1.01) > tolerance {
		t.Fatalf("expected %v, got %v", 95*1.01, got)
	}
}
