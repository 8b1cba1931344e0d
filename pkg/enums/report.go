package enums

// ReportType selects which metric family a CFO report focuses on.
type ReportType string

const (
	ReportRevenue  ReportType = "revenue"
	ReportChurn    ReportType = "churn"
	ReportCohort   ReportType = "cohort"
	ReportForecast ReportType = "forecast"
)

func (r ReportType) Valid() bool {
	switch r {
	case ReportRevenue, ReportChurn, ReportCohort, ReportForecast:
		return true
	}
	return false
}

// DateRange bounds how much snapshot history feeds a report.
type DateRange string

const (
	Range30d DateRange = "30d"
	Range90d DateRange = "90d"
	Range6m  DateRange = "6m"
	Range1y  DateRange = "1y"
	RangeAll DateRange = "all"
)

// Days returns the range length in days and whether the range is bounded.
func (d DateRange) Days() (int, bool) {
	switch d {
	case Range30d:
		return 30, true
	case Range90d:
		return 90, true
	case Range6m:
		return 180, true
	case Range1y:
		return 365, true
	}
	return 0, false
}

func (d DateRange) Valid() bool {
	if _, ok := d.Days(); ok {
		return true
	}
	return d == RangeAll
}

// Trend is the direction of a metric over the reporting window.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)
