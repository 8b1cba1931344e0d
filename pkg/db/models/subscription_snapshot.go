package models

import (
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/types"
	"github.com/google/uuid"
)

// SubscriptionSnapshot is one append-only entry in a client's metrics history.
// Rows are never updated after insert.
type SubscriptionSnapshot struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	MRR           float64             `gorm:"type:numeric;not null"`
	Subscribers   int                 `gorm:"not null"`
	ChurnRate     float64             `gorm:"type:numeric;not null"`
	GrowthRate    float64             `gorm:"type:numeric;not null"`
	Date          time.Time           `gorm:"type:timestamptz;not null"`
	Segments      types.SegmentList   `gorm:"type:jsonb;not null"`
	SeasonalChurn types.SeasonalChurn `gorm:"type:jsonb;not null"`
	CAC           types.CACData       `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time           `gorm:"type:timestamptz;default:now()"`
}

// ToDomain maps the row onto the engine's value object. ARPU is derived, not
// stored.
func (s SubscriptionSnapshot) ToDomain() types.SubscriptionData {
	arpu := 0.0
	if s.Subscribers > 0 {
		arpu = s.MRR / float64(s.Subscribers)
	}
	return types.SubscriptionData{
		MRR:           s.MRR,
		Subscribers:   s.Subscribers,
		ARPU:          arpu,
		ChurnRate:     s.ChurnRate,
		GrowthRate:    s.GrowthRate,
		Date:          s.Date.UTC().Format(time.RFC3339),
		Segments:      s.Segments,
		SeasonalChurn: s.SeasonalChurn,
		CAC:           s.CAC,
	}
}
