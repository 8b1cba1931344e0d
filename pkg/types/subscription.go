package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/Okleeqo/forecastIQ-app/pkg/enums"
)

// SubscriptionData is one time-stamped snapshot of a client's subscription
// metrics. Snapshots are append-only and never mutated after creation.
// Segment totals are entered independently and are not reconciled against the
// top-level mrr/subscribers.
type SubscriptionData struct {
	MRR           float64       `json:"mrr"`
	Subscribers   int           `json:"subscribers"`
	ARPU          float64       `json:"arpu"`
	ChurnRate     float64       `json:"churnRate"`
	GrowthRate    float64       `json:"growthRate"`
	Date          string        `json:"date"`
	Segments      SegmentList   `json:"segments"`
	SeasonalChurn SeasonalChurn `json:"seasonalChurn"`
	CAC           CACData       `json:"cac"`
}

// Segment holds the same metrics as the snapshot, scoped to one segment.
type Segment struct {
	Name        enums.SegmentType `json:"name"`
	Subscribers int               `json:"subscribers"`
	MRR         float64           `json:"mrr"`
	ChurnRate   float64           `json:"churnRate"`
	GrowthRate  float64           `json:"growthRate"`
}

// CACData carries per-segment acquisition costs plus an overridable average.
// A zero average means "compute the mean of the non-zero segment values".
type CACData struct {
	SMB        float64 `json:"smb"`
	MidMarket  float64 `json:"midMarket"`
	Enterprise float64 `json:"enterprise"`
	Average    float64 `json:"average"`
}

// SegmentList is a JSONB-backed ordered list of segments.
type SegmentList []Segment

func (s SegmentList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *SegmentList) Scan(value any) error {
	return scanJSON(value, s, "SegmentList")
}

// SeasonalChurn maps lowercase short month names ("jan".."dec") to a churn
// adjustment percentage in the range -100..100.
type SeasonalChurn map[string]float64

var monthKeys = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// Table expands the map into the 12-entry adjustment table consumed by the
// projection engine, ordered January through December. Missing months are 0.
func (s SeasonalChurn) Table() []float64 {
	if len(s) == 0 {
		return nil
	}
	table := make([]float64, 12)
	for i, key := range monthKeys {
		table[i] = s[key]
	}
	return table
}

func (s SeasonalChurn) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

func (s *SeasonalChurn) Scan(value any) error {
	return scanJSON(value, s, "SeasonalChurn")
}

func (c CACData) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *CACData) Scan(value any) error {
	return scanJSON(value, c, "CACData")
}

func scanJSON(value, dest any, label string) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return fmt.Errorf("unsupported %s column type %T", label, value)
}
