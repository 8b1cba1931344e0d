package scenario

import (
	"context"

	"github.com/Okleeqo/forecastIQ-app/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles scenario persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to scenario operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new scenario row.
func (r *Repository) Create(ctx context.Context, scenario *models.Scenario) error {
	return r.db.WithContext(ctx).Create(scenario).Error
}

// FindByID loads a scenario by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&scenario).Error; err != nil {
		return nil, err
	}
	return &scenario, nil
}

// List returns all scenarios ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]models.Scenario, error) {
	var scenarios []models.Scenario
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

// Update saves the provided scenario.
func (r *Repository) Update(ctx context.Context, scenario *models.Scenario) error {
	return r.db.WithContext(ctx).Save(scenario).Error
}

// Delete removes the scenario row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Scenario{}, "id = ?", id).Error
}
