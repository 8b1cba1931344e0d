package models

import (
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/types"
	"github.com/google/uuid"
)

// Scenario is a named hypothetical input set for the scenario projector.
// Scenarios are client-independent; projections are computed against whichever
// client's base metrics the caller supplies.
type Scenario struct {
	ID                  uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name                string              `gorm:"type:text;not null"`
	ChurnRate           float64             `gorm:"type:numeric;not null"`
	GrowthRate          float64             `gorm:"type:numeric;not null"`
	ARPU                float64             `gorm:"type:numeric;not null"`
	CACAdjustment       float64             `gorm:"type:numeric;not null;default:0"`
	SeasonalityEnabled  bool                `gorm:"not null;default:false"`
	SeasonalAdjustments types.SeasonalChurn `gorm:"type:jsonb;not null"`
	CreatedAt           time.Time           `gorm:"type:timestamptz;default:now()"`
	UpdatedAt           time.Time           `gorm:"type:timestamptz;default:now()"`
}
