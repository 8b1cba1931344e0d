package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a tracked SaaS business whose subscription history feeds the
// derivation engine.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:text;not null"`
	Industry  *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"type:timestamptz;default:now()"`
}
