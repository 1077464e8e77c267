package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/models"
)

type memoryStore struct {
	mu   sync.Mutex
	regs map[string]*models.Registration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{regs: make(map[string]*models.Registration)}
}

func (m *memoryStore) Insert(_ context.Context, reg *models.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *reg
	m.regs[reg.ID] = &cp
	return nil
}

func (m *memoryStore) UpdateEnrichment(_ context.Context, id string, nearestCityID int, distanceKm float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return errors.New("not found")
	}
	reg.Status = StatusEnriched
	_ = nearestCityID
	_ = distanceKm
	return nil
}

func (m *memoryStore) ListByStatus(_ context.Context, status string, limit int) ([]models.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Registration
	for _, r := range m.regs {
		if r.Status == status && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

type capturingPublisher struct {
	events []*models.RegistrationEvent
}

func (p *capturingPublisher) PublishRegistration(_ context.Context, event *models.RegistrationEvent) error {
	p.events = append(p.events, event)
	return nil
}

func testService(t *testing.T) (*Service, *memoryStore, *capturingPublisher) {
	t.Helper()
	c, err := catalog.LoadStatic()
	if err != nil {
		t.Fatalf("loading seed catalog: %v", err)
	}
	store := newMemoryStore()
	pub := &capturingPublisher{}
	return New(c, store, pub, zap.NewNop()), store, pub
}

func validRegistration() *models.Registration {
	return &models.Registration{
		Name:        "Padaria Central",
		CategoryID:  1,
		SubCategory: "Padaria",
		Address:     "Av. Goiás, 500",
		CityID:      1,
		Latitude:    -11.7301,
		Longitude:   -49.0681,
	}
}

func TestRegister_AcceptsAndPublishes(t *testing.T) {
	svc, store, pub := testService(t)

	got, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" {
		t.Error("expected a generated id")
	}
	if got.Status != StatusPending {
		t.Errorf("expected status pending, got %q", got.Status)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	if _, ok := store.regs[got.ID]; !ok {
		t.Error("registration not persisted")
	}
	if len(pub.events) != 1 || pub.events[0].RegistrationID != got.ID {
		t.Errorf("expected one published event for %s, got %v", got.ID, pub.events)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := testService(t)

	for _, tt := range []struct {
		name   string
		mutate func(*models.Registration)
		want   error
	}{
		{"missing name", func(r *models.Registration) { r.Name = "  " }, ErrMissingName},
		{"missing address", func(r *models.Registration) { r.Address = "" }, ErrMissingAddress},
		{"unknown city", func(r *models.Registration) { r.CityID = 999 }, ErrUnknownCity},
	} {
		t.Run(tt.name, func(t *testing.T) {
			reg := validRegistration()
			tt.mutate(reg)
			_, err := svc.Register(context.Background(), reg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRegister_PublishFailureKeepsRegistration(t *testing.T) {
	c, err := catalog.LoadStatic()
	if err != nil {
		t.Fatalf("loading seed catalog: %v", err)
	}
	store := newMemoryStore()
	svc := New(c, store, failingPublisher{}, zap.NewNop())

	got, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("publish failure must not fail the request: %v", err)
	}
	if _, ok := store.regs[got.ID]; !ok {
		t.Error("registration must stay persisted after publish failure")
	}
}

type failingPublisher struct{}

func (failingPublisher) PublishRegistration(context.Context, *models.RegistrationEvent) error {
	return errors.New("broker down")
}

func TestWorker_EnrichesWithNearestCity(t *testing.T) {
	c, err := catalog.LoadStatic()
	if err != nil {
		t.Fatalf("loading seed catalog: %v", err)
	}
	store := newMemoryStore()
	store.regs["r1"] = &models.Registration{ID: "r1", Status: StatusPending}

	w := NewWorker(c, store, zap.NewNop())
	err = w.Handle(context.Background(), &models.RegistrationEvent{
		RegistrationID: "r1",
		CityID:         1,
		Latitude:       -11.73,
		Longitude:      -49.07,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.regs["r1"].Status != StatusEnriched {
		t.Errorf("expected enriched status, got %q", store.regs["r1"].Status)
	}
}

func TestWorker_UnknownRegistrationFails(t *testing.T) {
	c, err := catalog.LoadStatic()
	if err != nil {
		t.Fatalf("loading seed catalog: %v", err)
	}
	w := NewWorker(c, newMemoryStore(), zap.NewNop())

	err = w.Handle(context.Background(), &models.RegistrationEvent{
		RegistrationID: "missing",
		Latitude:       -11.73,
		Longitude:      -49.07,
	})
	if err == nil {
		t.Error("expected error for unknown registration")
	}
}
