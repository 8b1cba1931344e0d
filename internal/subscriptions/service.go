// Package subscriptions owns the append-only metric history each client
// accumulates. Every analytics endpoint reads through this service; writes
// only ever add rows or wipe a client's history outright.
package subscriptions

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

type snapshotRepository interface {
	Append(ctx context.Context, snapshot *models.SubscriptionSnapshot) error
	History(ctx context.Context, clientID uuid.UUID) ([]models.SubscriptionSnapshot, error)
	Latest(ctx context.Context, clientID uuid.UUID) (*models.SubscriptionSnapshot, error)
	Reset(ctx context.Context, clientID uuid.UUID) error
}

// AppendSnapshotInput captures one metrics observation for a client.
type AppendSnapshotInput struct {
	MRR           float64
	Subscribers   int
	ChurnRate     float64
	GrowthRate    float64
	Date          time.Time
	Segments      types.SegmentList
	SeasonalChurn types.SeasonalChurn
	CAC           types.CACData
}

// Service exposes snapshot history operations.
type Service interface {
	Append(ctx context.Context, clientID uuid.UUID, input AppendSnapshotInput) (*types.SubscriptionData, error)
	History(ctx context.Context, clientID uuid.UUID) ([]types.SubscriptionData, error)
	Current(ctx context.Context, clientID uuid.UUID) (*types.SubscriptionData, error)
	Reset(ctx context.Context, clientID uuid.UUID) error
}

type service struct {
	repo snapshotRepository
}

// NewService builds a subscriptions service with the provided repository.
func NewService(repo snapshotRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("snapshot repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Append(ctx context.Context, clientID uuid.UUID, input AppendSnapshotInput) (*types.SubscriptionData, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	row := &models.SubscriptionSnapshot{
		ClientID:      clientID,
		MRR:           input.MRR,
		Subscribers:   input.Subscribers,
		ChurnRate:     input.ChurnRate,
		GrowthRate:    input.GrowthRate,
		Date:          date.UTC(),
		Segments:      input.Segments,
		SeasonalChurn: input.SeasonalChurn,
		CAC:           input.CAC,
	}
	if row.Segments == nil {
		row.Segments = types.SegmentList{}
	}
	if row.SeasonalChurn == nil {
		row.SeasonalChurn = types.SeasonalChurn{}
	}
	if err := s.repo.Append(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "appending snapshot")
	}

	data := row.ToDomain()
	return &data, nil
}

func (s *service) History(ctx context.Context, clientID uuid.UUID) ([]types.SubscriptionData, error) {
	rows, err := s.repo.History(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading history")
	}

	history := make([]types.SubscriptionData, 0, len(rows))
	for _, row := range rows {
		history = append(history, row.ToDomain())
	}
	return history, nil
}

func (s *service) Current(ctx context.Context, clientID uuid.UUID) (*types.SubscriptionData, error) {
	row, err := s.repo.Latest(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no subscription data recorded")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading latest snapshot")
	}

	data := row.ToDomain()
	return &data, nil
}

func (s *service) Reset(ctx context.Context, clientID uuid.UUID) error {
	if err := s.repo.Reset(ctx, clientID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resetting history")
	}
	return nil
}

func validateInput(input AppendSnapshotInput) error {
	if input.MRR < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "mrr must not be negative")
	}
	if input.Subscribers < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "subscribers must not be negative")
	}
	if input.ChurnRate < 0 || input.ChurnRate > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "churn rate must be between 0 and 100")
	}
	for _, seg := range input.Segments {
		if !seg.Name.Valid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown segment %q", seg.Name))
		}
	}
	return nil
}
