package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/matchday-travel/lead-service/internal/domain"
	"github.com/matchday-travel/lead-service/internal/events"
	"github.com/matchday-travel/lead-service/internal/repository"
)

type mockLeadRepo struct {
	mock.Mock
}

func (m *mockLeadRepo) CreateWithInitialHistory(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *mockLeadRepo) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if lead, ok := args.Get(0).(*domain.Lead); ok {
		return lead, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadRepo) List(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	args := m.Called(ctx, filter)
	if leads, ok := args.Get(0).([]domain.Lead); ok {
		return leads, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadRepo) Count(ctx context.Context, filter repository.LeadFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockLeadRepo) TransitionStatus(ctx context.Context, leadID string, from, to domain.LeadStatus) (*domain.LeadStatusHistory, error) {
	args := m.Called(ctx, leadID, from, to)
	if entry, ok := args.Get(0).(*domain.LeadStatusHistory); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) ListRecentByLead(ctx context.Context, leadID string, limit int) ([]domain.LeadStatusHistory, error) {
	args := m.Called(ctx, leadID, limit)
	if entries, ok := args.Get(0).([]domain.LeadStatusHistory); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if event, ok := args.Get(0).(*domain.Event); ok {
		return event, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPackageRepo struct {
	mock.Mock
}

func (m *mockPackageRepo) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if pkg, ok := args.Get(0).(*domain.Package); ok {
		return pkg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPackageRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Package, error) {
	args := m.Called(ctx, eventID)
	if list, ok := args.Get(0).([]domain.Package); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockQuoteRepo struct {
	mock.Mock
}

func (m *mockQuoteRepo) CreateWithStatusAdvance(ctx context.Context, quote *domain.Quote, advanceFrom *domain.LeadStatus) error {
	args := m.Called(ctx, quote, advanceFrom)
	return args.Error(0)
}

func (m *mockQuoteRepo) ListByLead(ctx context.Context, leadID string) ([]domain.Quote, error) {
	args := m.Called(ctx, leadID)
	if list, ok := args.Get(0).([]domain.Quote); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStaffRepo struct {
	mock.Mock
}

func (m *mockStaffRepo) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	args := m.Called(ctx, id)
	if staff, ok := args.Get(0).(*domain.StaffMember); ok {
		return staff, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	args := m.Called(ctx, email)
	if staff, ok := args.Get(0).(*domain.StaffMember); ok {
		return staff, args.Error(1)
	}
	return nil, args.Error(1)
}

// capturingDispatcher records published events for assertions.
type capturingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.published...)
}
