package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/matchday-travel/lead-service/internal/domain"
	"github.com/matchday-travel/lead-service/internal/events"
	"github.com/matchday-travel/lead-service/internal/persistence"
	"github.com/matchday-travel/lead-service/internal/repository"
	apperrors "github.com/matchday-travel/lead-service/pkg/util"
)

const historyPreviewLimit = 5

// MaxPageSize caps lead listing pages; larger requests are clamped.
const MaxPageSize = 100

// CreateLeadInput carries the fields for a new inquiry.
type CreateLeadInput struct {
	Name           string
	Email          string
	Phone          *string
	EventID        string
	TravellerCount int
}

// LeadListInput carries listing filters and pagination.
type LeadListInput struct {
	Status     *domain.LeadStatus
	EventID    *string
	EventMonth *int
	Page       int
	PageSize   int
}

// LeadPage is one page of leads plus pagination totals.
type LeadPage struct {
	Leads      []domain.Lead
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// LeadService exposes lead lifecycle operations.
type LeadService interface {
	CreateLead(ctx context.Context, input CreateLeadInput) (*domain.Lead, error)
	ListLeads(ctx context.Context, input LeadListInput) (*LeadPage, error)
	TransitionStatus(ctx context.Context, leadID string, next domain.LeadStatus) (*domain.Lead, error)
}

type leadService struct {
	leads      repository.LeadRepository
	history    repository.LeadHistoryRepository
	eventsRepo repository.EventRepository
	dispatcher events.Dispatcher
}

// NewLeadService wires the lead service.
func NewLeadService(
	leads repository.LeadRepository,
	history repository.LeadHistoryRepository,
	eventsRepo repository.EventRepository,
	dispatcher events.Dispatcher,
) LeadService {
	return &leadService{
		leads:      leads,
		history:    history,
		eventsRepo: eventsRepo,
		dispatcher: dispatcher,
	}
}

// CreateLead registers a new inquiry in status New together with its
// creation audit entry.
func (s *leadService) CreateLead(ctx context.Context, input CreateLeadInput) (*domain.Lead, error) {
	event, err := s.eventsRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": input.EventID})
		}
		return nil, apperrors.MapError(err)
	}

	lead := &domain.Lead{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		EventID:        input.EventID,
		TravellerCount: input.TravellerCount,
		Status:         domain.LeadStatusNew,
	}
	if err := s.leads.CreateWithInitialHistory(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}
	lead.Event = event

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:   events.EventLeadCreated,
		LeadID: lead.ID,
		Payload: events.LeadCreatedPayload{
			EventID:        lead.EventID,
			Email:          lead.Email,
			TravellerCount: lead.TravellerCount,
		},
	})
	return lead, nil
}

// ListLeads returns one page of leads with their event and the five most
// recent history entries attached. The page query and the total count
// run concurrently; both are reads, so both go through the retry
// wrapper.
func (s *leadService) ListLeads(ctx context.Context, input LeadListInput) (*LeadPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	filter := repository.LeadFilter{
		Status:     input.Status,
		EventID:    input.EventID,
		EventMonth: input.EventMonth,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}

	var (
		leads []domain.Lead
		total int
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		result, err := persistence.RetryRead(groupCtx, func(ctx context.Context) ([]domain.Lead, error) {
			return s.leads.List(ctx, filter)
		})
		if err != nil {
			return err
		}
		leads = result
		return nil
	})
	group.Go(func() error {
		result, err := persistence.RetryRead(groupCtx, func(ctx context.Context) (int, error) {
			return s.leads.Count(ctx, filter)
		})
		if err != nil {
			return err
		}
		total = result
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, apperrors.MapError(err)
	}

	for i := range leads {
		entries, err := persistence.RetryRead(ctx, func(ctx context.Context) ([]domain.LeadStatusHistory, error) {
			return s.history.ListRecentByLead(ctx, leads[i].ID, historyPreviewLimit)
		})
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		leads[i].History = entries
	}

	return &LeadPage{
		Leads:      leads,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// TransitionStatus moves a lead along the lifecycle. The workflow rules
// are checked against the current status first; the repository then
// re-checks it inside the transaction, so a concurrent transition
// surfaces as a conflict instead of a lost update.
func (s *leadService) TransitionStatus(ctx context.Context, leadID string, next domain.LeadStatus) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}

	if !domain.IsValidTransition(lead.Status, next) {
		return nil, apperrors.NewInvalidTransition(
			string(lead.Status), string(next), statusStrings(domain.ValidNextStatuses(lead.Status)))
	}

	entry, err := s.leads.TransitionStatus(ctx, leadID, lead.Status, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("lead status changed concurrently, retry with the current status",
				map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := lead.Status
	lead.Status = next
	lead.UpdatedAt = entry.ChangedAt
	lead.History = []domain.LeadStatusHistory{*entry}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:   events.EventLeadStatusChanged,
		LeadID: lead.ID,
		Payload: events.LeadStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next,
		},
	})
	return lead, nil
}

// publishEvent stamps identity and time on the event before handing it
// to the dispatcher. A nil dispatcher turns publication into a no-op.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = dispatcher.Publish(ctx, event)
}

func statusStrings(statuses []domain.LeadStatus) []string {
	out := make([]string, len(statuses))
	for i, status := range statuses {
		out[i] = string(status)
	}
	return out
}
