package subscriptions

import (
	"context"

	"github.com/Okleeqo/forecastIQ-app/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles snapshot persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to snapshot operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append inserts a snapshot row. Rows are append-only.
func (r *Repository) Append(ctx context.Context, snapshot *models.SubscriptionSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// History returns a client's snapshots ordered oldest first.
func (r *Repository) History(ctx context.Context, clientID uuid.UUID) ([]models.SubscriptionSnapshot, error) {
	var rows []models.SubscriptionSnapshot
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Latest returns the client's most recent snapshot, or gorm.ErrRecordNotFound
// when the history is empty.
func (r *Repository) Latest(ctx context.Context, clientID uuid.UUID) (*models.SubscriptionSnapshot, error) {
	var row models.SubscriptionSnapshot
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Reset deletes the client's entire snapshot history.
func (r *Repository) Reset(ctx context.Context, clientID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&models.SubscriptionSnapshot{}).Error
}
