// Package cohort groups historical subscription snapshots into calendar-month
// buckets and derives size, retention, and revenue per cohort.
package cohort

import (
	"sort"
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/types"
)

// Metrics is the derived view of one calendar-month cohort.
type Metrics struct {
	CohortDate       string  `json:"cohortDate"`
	Size             int     `json:"size"`
	ActiveCustomers  int     `json:"activeCustomers"`
	ChurnedCustomers int     `json:"churnedCustomers"`
	RetentionRate    float64 `json:"retentionRate"`
	AverageRevenue   float64 `json:"averageRevenue"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

type bucket struct {
	month     time.Time
	snapshots []types.SubscriptionData
}

// Compute buckets the history by the UTC year and month of each snapshot's
// date. Size sums subscribers across every snapshot in the bucket; active
// customers come from the chronologically last snapshot, which for an
// append-only history is the last bucketed entry. Snapshots with unparseable
// dates are skipped. Output is ordered most recent cohort first.
func Compute(history []types.SubscriptionData) []Metrics {
	buckets := map[time.Time]*bucket{}

	for _, entry := range history {
		parsed, err := time.Parse(time.RFC3339, entry.Date)
		if err != nil {
			continue
		}
		month := time.Date(parsed.UTC().Year(), parsed.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
		b, ok := buckets[month]
		if !ok {
			b = &bucket{month: month}
			buckets[month] = b
		}
		b.snapshots = append(b.snapshots, entry)
	}

	cohorts := make([]Metrics, 0, len(buckets))
	for _, b := range buckets {
		cohorts = append(cohorts, metricsFor(b))
	}

	sortByMonthDesc(cohorts, buckets)

	return cohorts
}

func metricsFor(b *bucket) Metrics {
	var size int
	var totalRevenue float64
	for _, entry := range b.snapshots {
		size += entry.Subscribers
		totalRevenue += entry.MRR
	}

	active := b.snapshots[len(b.snapshots)-1].Subscribers
	churned := size - active

	var retention, averageRevenue float64
	if size > 0 {
		retention = float64(active) / float64(size) * 100
		averageRevenue = totalRevenue / float64(size)
	}

	return Metrics{
		CohortDate:       b.month.Format("Jan 2006"),
		Size:             size,
		ActiveCustomers:  active,
		ChurnedCustomers: churned,
		RetentionRate:    retention,
		AverageRevenue:   averageRevenue,
		TotalRevenue:     totalRevenue,
	}
}

func sortByMonthDesc(cohorts []Metrics, buckets map[time.Time]*bucket) {
	monthByLabel := make(map[string]time.Time, len(buckets))
	for month := range buckets {
		monthByLabel[month.Format("Jan 2006")] = month
	}
	sort.Slice(cohorts, func(i, j int) bool {
		return monthByLabel[cohorts[i].CohortDate].After(monthByLabel[cohorts[j].CohortDate])
	})
}
