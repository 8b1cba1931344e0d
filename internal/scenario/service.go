package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/db/models"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/Okleeqo/forecastIQ-app/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scenarioRepository interface {
	Create(ctx context.Context, scenario *models.Scenario) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error)
	List(ctx context.Context) ([]models.Scenario, error)
	Update(ctx context.Context, scenario *models.Scenario) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateScenarioInput captures the fields accepted when defining a scenario.
type CreateScenarioInput struct {
	Name                string
	ChurnRate           float64
	GrowthRate          float64
	ARPU                float64
	CACAdjustment       float64
	SeasonalityEnabled  bool
	SeasonalAdjustments types.SeasonalChurn
}

// Service exposes scenario CRUD plus projection and comparison derivations.
type Service interface {
	Create(ctx context.Context, input CreateScenarioInput) (*Input, error)
	List(ctx context.Context) ([]Input, error)
	Update(ctx context.Context, id uuid.UUID, input CreateScenarioInput) (*Input, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Projections(ctx context.Context, baseMRR, baseSubscribers float64, now time.Time) (map[string]Projection, error)
	Comparisons(ctx context.Context, baseMRR, baseSubscribers float64, now time.Time) (map[string]Comparison, error)
}

type service struct {
	repo scenarioRepository
}

// NewService builds a scenario service with the provided repository.
func NewService(repo scenarioRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("scenario repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateScenarioInput) (*Input, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scenario name is required")
	}

	row := &models.Scenario{
		Name:                input.Name,
		ChurnRate:           input.ChurnRate,
		GrowthRate:          input.GrowthRate,
		ARPU:                input.ARPU,
		CACAdjustment:       input.CACAdjustment,
		SeasonalityEnabled:  input.SeasonalityEnabled,
		SeasonalAdjustments: input.SeasonalAdjustments,
	}
	if row.SeasonalAdjustments == nil {
		row.SeasonalAdjustments = types.SeasonalChurn{}
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating scenario")
	}

	domain := toInput(*row)
	return &domain, nil
}

func (s *service) List(ctx context.Context) ([]Input, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing scenarios")
	}

	inputs := make([]Input, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, toInput(row))
	}
	return inputs, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input CreateScenarioInput) (*Input, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "scenario not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading scenario")
	}

	if input.Name != "" {
		row.Name = input.Name
	}
	row.ChurnRate = input.ChurnRate
	row.GrowthRate = input.GrowthRate
	row.ARPU = input.ARPU
	row.CACAdjustment = input.CACAdjustment
	row.SeasonalityEnabled = input.SeasonalityEnabled
	if input.SeasonalAdjustments != nil {
		row.SeasonalAdjustments = input.SeasonalAdjustments
	}
	row.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating scenario")
	}

	domain := toInput(*row)
	return &domain, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "scenario not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading scenario")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting scenario")
	}
	return nil
}

func (s *service) Projections(ctx context.Context, baseMRR, baseSubscribers float64, now time.Time) (map[string]Projection, error) {
	inputs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	projections := make(map[string]Projection, len(inputs))
	for _, in := range inputs {
		projections[in.ID] = Project(in, baseMRR, baseSubscribers, now)
	}
	return projections, nil
}

func (s *service) Comparisons(ctx context.Context, baseMRR, baseSubscribers float64, now time.Time) (map[string]Comparison, error) {
	projections, err := s.Projections(ctx, baseMRR, baseSubscribers, now)
	if err != nil {
		return nil, err
	}
	return Compare(projections), nil
}

func toInput(row models.Scenario) Input {
	return Input{
		ID:                  row.ID.String(),
		Name:                row.Name,
		ChurnRate:           row.ChurnRate,
		GrowthRate:          row.GrowthRate,
		ARPU:                row.ARPU,
		CACAdjustment:       row.CACAdjustment,
		SeasonalityEnabled:  row.SeasonalityEnabled,
		SeasonalAdjustments: row.SeasonalAdjustments,
	}
}
