package cohort

import (
	"math"
	"testing"

	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

func snapshot(date string, subscribers int, mrr float64) types.SubscriptionData {
	return types.SubscriptionData{
		Date:        date,
		Subscribers: subscribers,
		MRR:         mrr,
	}
}

func TestComputeEmptyHistory(t *testing.T) {
	if got := Compute(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d cohorts", len(got))
	}
}

func TestComputeSingleSnapshot(t *testing.T) {
	cohorts := Compute([]types.SubscriptionData{
		snapshot("2026-03-15T00:00:00Z", 100, 10000),
	})

	if len(cohorts) != 1 {
		t.Fatalf("expected 1 cohort, got %d", len(cohorts))
	}
	c := cohorts[0]
	if c.CohortDate != "Mar 2026" {
		t.Fatalf("expected label Mar 2026, got %s", c.CohortDate)
	}
	if c.Size != 100 || c.ActiveCustomers != 100 || c.ChurnedCustomers != 0 {
		t.Fatalf("unexpected counts: %+v", c)
	}
	if c.RetentionRate != 100 {
		t.Fatalf("expected retention 100, got %v", c.RetentionRate)
	}
	if c.TotalRevenue != 10000 || c.AverageRevenue != 100 {
		t.Fatalf("unexpected revenue: %+v", c)
	}
}

func TestComputeSumsSnapshotsWithinMonth(t *testing.T) {
	cohorts := Compute([]types.SubscriptionData{
		snapshot("2026-01-05T00:00:00Z", 100, 10000),
		snapshot("2026-01-20T00:00:00Z", 90, 9500),
	})

	if len(cohorts) != 1 {
		t.Fatalf("expected 1 cohort, got %d", len(cohorts))
	}
	c := cohorts[0]
	if c.Size != 190 {
		t.Fatalf("size sums snapshots: expected 190, got %d", c.Size)
	}
	if c.ActiveCustomers != 90 {
		t.Fatalf("active comes from the last snapshot: expected 90, got %d", c.ActiveCustomers)
	}
	if c.ChurnedCustomers != 100 {
		t.Fatalf("expected churned 100, got %d", c.ChurnedCustomers)
	}
	want := float64(90) / float64(190) * 100
	if math.Abs(c.RetentionRate-want) > 1e-9 {
		t.Fatalf("expected retention %v, got %v", want, c.RetentionRate)
	}
}

func TestComputeSortsMostRecentFirst(t *testing.T) {
	cohorts := Compute([]types.SubscriptionData{
		snapshot("2025-11-01T00:00:00Z", 50, 5000),
		snapshot("2026-02-01T00:00:00Z", 70, 7000),
		snapshot("2025-12-01T00:00:00Z", 60, 6000),
	})

	if len(cohorts) != 3 {
		t.Fatalf("expected 3 cohorts, got %d", len(cohorts))
	}
	wantOrder := []string{"Feb 2026", "Dec 2025", "Nov 2025"}
	for i, want := range wantOrder {
		if cohorts[i].CohortDate != want {
			t.Fatalf("position %d: expected %s got %s", i, want, cohorts[i].CohortDate)
		}
	}
}

func TestComputeSkipsInvalidDates(t *testing.T) {
	cohorts := Compute([]types.SubscriptionData{
		snapshot("not-a-date", 10, 1000),
		snapshot("2026-01-01T00:00:00Z", 20, 2000),
		snapshot("", 30, 3000),
	})

	if len(cohorts) != 1 {
		t.Fatalf("expected invalid dates to be skipped, got %d cohorts", len(cohorts))
	}
	if cohorts[0].Size != 20 {
		t.Fatalf("expected only valid snapshot counted, got size %d", cohorts[0].Size)
	}
}

func TestComputeZeroSubscriberBucket(t *testing.T) {
	cohorts := Compute([]types.SubscriptionData{
		snapshot("2026-01-01T00:00:00Z", 0, 0),
	})

	if len(cohorts) != 1 {
		t.Fatalf("expected 1 cohort, got %d", len(cohorts))
	}
	if cohorts[0].RetentionRate != 0 || cohorts[0].AverageRevenue != 0 {
		t.Fatalf("expected zero-guarded metrics, got %+v", cohorts[0])
	}
}
