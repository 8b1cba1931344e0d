// Package clients manages the keyed collection of tracked businesses. It is
// pure CRUD; all derivation happens in the engine packages.
package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Okleeqo/forecastIQ-app/pkg/db/models"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientDTO is the API-facing shape of a client.
type ClientDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Industry  *string   `json:"industry,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateClientInput captures the fields accepted when registering a client.
type CreateClientInput struct {
	Name     string
	Industry *string
}

// Service exposes client operations.
type Service interface {
	Create(ctx context.Context, input CreateClientInput) (*ClientDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ClientDTO, error)
	List(ctx context.Context) ([]ClientDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo clientRepository
}

// NewService builds a client service with the provided repository.
func NewService(repo clientRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateClientInput) (*ClientDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client name is required")
	}

	row := &models.Client{Name: name, Industry: input.Industry}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating client")
	}
	return toDTO(row), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading client")
	}
	return toDTO(row), nil
}

func (s *service) List(ctx context.Context) ([]ClientDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing clients")
	}
	dtos := make([]ClientDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *toDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading client")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting client")
	}
	return nil
}

func toDTO(row *models.Client) *ClientDTO {
	return &ClientDTO{
		ID:        row.ID,
		Name:      row.Name,
		Industry:  row.Industry,
		CreatedAt: row.CreatedAt,
	}
}
