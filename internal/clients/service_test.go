package clients

import (
	"context"
	"errors"
	"testing"

	"github.com/Okleeqo/forecastIQ-app/pkg/db/models"
	pkgerrors "github.com/Okleeqo/forecastIQ-app/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubClientRepo struct {
	rows    map[uuid.UUID]*models.Client
	listErr error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{rows: map[uuid.UUID]*models.Client{}}
}

func (r *stubClientRepo) Create(_ context.Context, client *models.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	copied := *client
	r.rows[client.ID] = &copied
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]models.Client, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Client, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, err := NewService(newStubClientRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateClientInput{Name: "   "})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestCreateTrimsAndLists(t *testing.T) {
	svc, err := NewService(newStubClientRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	industry := "B2B SaaS"
	created, err := svc.Create(context.Background(), CreateClientInput{Name: "  Acme Corp  ", Industry: &industry})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Acme Corp" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Industry == nil || *created.Industry != "B2B SaaS" {
		t.Fatalf("unexpected industry: %v", created.Industry)
	}

	listed, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("unexpected list result: %+v", listed)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, err := NewService(newStubClientRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc, err := NewService(newStubClientRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}

func TestListDependencyError(t *testing.T) {
	repo := newStubClientRepo()
	repo.listErr = errors.New("boom")
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.List(context.Background())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}
