package clients

import (
	"context"

	"github.com/Okleeqo/forecastIQ-app/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles client persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to client operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new client row.
func (r *Repository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// FindByID loads a client by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List returns all clients ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]models.Client, error) {
	var result []models.Client
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the client row; snapshots cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id).Error
}
