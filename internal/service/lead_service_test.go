package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matchday-travel/lead-service/internal/domain"
	"github.com/matchday-travel/lead-service/internal/events"
	"github.com/matchday-travel/lead-service/internal/repository"
	apperrors "github.com/matchday-travel/lead-service/pkg/util"
)

func newLeadServiceForTest(leads *mockLeadRepo, history *mockHistoryRepo, eventsRepo *mockEventRepo) (LeadService, *capturingDispatcher) {
	dispatcher := &capturingDispatcher{}
	return NewLeadService(leads, history, eventsRepo, dispatcher), dispatcher
}

func TestCreateLeadUnknownEvent(t *testing.T) {
	leads := new(mockLeadRepo)
	history := new(mockHistoryRepo)
	eventsRepo := new(mockEventRepo)
	eventsRepo.On("GetByID", mock.Anything, "missing-event").Return(nil, pgx.ErrNoRows)

	svc, _ := newLeadServiceForTest(leads, history, eventsRepo)
	_, err := svc.CreateLead(context.Background(), CreateLeadInput{
		Name:           "Ada",
		Email:          "ada@example.com",
		EventID:        "missing-event",
		TravellerCount: 2,
	})

	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	leads.AssertNotCalled(t, "CreateWithInitialHistory", mock.Anything, mock.Anything)
}

func TestCreateLeadStartsAsNewWithHistory(t *testing.T) {
	leads := new(mockLeadRepo)
	history := new(mockHistoryRepo)
	eventsRepo := new(mockEventRepo)

	event := &domain.Event{ID: "ev-1", Name: "Champions League Final"}
	eventsRepo.On("GetByID", mock.Anything, "ev-1").Return(event, nil)
	leads.On("CreateWithInitialHistory", mock.Anything, mock.MatchedBy(func(lead *domain.Lead) bool {
		return lead.Status == domain.LeadStatusNew && lead.EventID == "ev-1"
	})).Run(func(args mock.Arguments) {
		lead := args.Get(1).(*domain.Lead)
		lead.ID = "lead-1"
		lead.History = []domain.LeadStatusHistory{{LeadID: "lead-1", NewStatus: domain.LeadStatusNew}}
	}).Return(nil)

	svc, dispatcher := newLeadServiceForTest(leads, history, eventsRepo)
	lead, err := svc.CreateLead(context.Background(), CreateLeadInput{
		Name:           "Ada",
		Email:          "ada@example.com",
		EventID:        "ev-1",
		TravellerCount: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	assert.Equal(t, event, lead.Event)
	require.Len(t, lead.History, 1)
	assert.Nil(t, lead.History[0].OldStatus)

	published := dispatcher.events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventLeadCreated, published[0].Type)
	assert.Equal(t, "lead-1", published[0].LeadID)
}

func TestTransitionStatusRejectsSkippingStages(t *testing.T) {
	leads := new(mockLeadRepo)
	history := new(mockHistoryRepo)
	eventsRepo := new(mockEventRepo)
	leads.On("GetByID", mock.Anything, "lead-1").Return(&domain.Lead{
		ID:     "lead-1",
		Status: domain.LeadStatusNew,
	}, nil)

	svc, dispatcher := newLeadServiceForTest(leads, history, eventsRepo)
	_, err := svc.TransitionStatus(context.Background(), "lead-1", domain.LeadStatusQuoteSent)

	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	assert.Equal(t, "New", domainErr.Details["current_status"])
	assert.Equal(t, []string{"Contacted"}, domainErr.Details["valid_next_statuses"])
	leads.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, dispatcher.events())
}

func TestTransitionStatusRejectsTerminalStates(t *testing.T) {
	leads := new(mockLeadRepo)
	history := new(mockHistoryRepo)
	eventsRepo := new(mockEventRepo)
	leads.On("GetByID", mock.Anything, "lead-1").Return(&domain.Lead{
		ID:     "lead-1",
		Status: domain.LeadStatusClosedWon,
	}, nil)

	svc, _ := newLeadServiceForTest(leads, history, eventsRepo)
	_, err := svc.TransitionStatus(context.Background(), "lead-1", domain.LeadStatusClosedWon)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
}

func TestTransitionStatusAppendsHistoryAndPublishes(t *testing.T) {
	leads := new(mockLeadRepo)
	history := new(mockHistoryRepo)
	eventsRepo := new(mockEventRepo)

	changedAt := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	oldStatus := domain.LeadStatusNew
	leads.On("GetByID", mock.Anything, "lead-1").Return(&domain.Lead{
		ID:     "lead-1",
		Status: domain.LeadStatusNew,
	}, nil)
	leads.On("TransitionStatus", mock.Anything, "lead-1", domain.LeadStatusNew, domain.LeadStatusContacted).
		Return(&domain.LeadStatusHistory{
			ID:        "hist-2",
			LeadID:    "lead-1",
			OldStatus: &oldStatus,
			NewStatus: domain.LeadStatusContacted,
			ChangedAt: changedAt,
		}, nil)

	svc, dispatcher := newLeadServiceForTest(leads, history, eventsRepo)
	lead, err := svc.TransitionStatus(context.Background(), "lead-1", domain.LeadStatusContacted)

	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusContacted, lead.Status)
	assert.Equal(t, changedAt, lead.UpdatedAt)
	require.Len(t, lead.History, 1)
	assert.Equal(t, domain.LeadStatusContacted, lead.History[0].NewStatus)

	published := dispatcher.events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventLeadStatusChanged, published[0].Type)
	payload := published[0].Payload.(events.LeadStatusChangedPayload)
	assert.Equal(t, domain.LeadStatusNew, payload.OldStatus)
	assert.Equal(t, domain.LeadStatusContacted, payload.NewStatus)
}

func TestTransitionStatusConcurrentConflict(t *testing.T) {
	leads := new(mockLeadRepo)
	history := new(mockHistoryRepo)
	eventsRepo := new(mockEventRepo)
	leads.On("GetByID", mock.Anything, "lead-1").Return(&domain.Lead{
		ID:     "lead-1",
		Status: domain.LeadStatusContacted,
	}, nil)
	leads.On("TransitionStatus", mock.Anything, "lead-1", domain.LeadStatusContacted, domain.LeadStatusQuoteSent).
		Return(nil, pgx.ErrNoRows)

	svc, dispatcher := newLeadServiceForTest(leads, history, eventsRepo)
	_, err := svc.TransitionStatus(context.Background(), "lead-1", domain.LeadStatusQuoteSent)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Empty(t, dispatcher.events())
}

func TestListLeadsPaginatesAndAttachesHistory(t *testing.T) {
	leads := new(mockLeadRepo)
	history := new(mockHistoryRepo)
	eventsRepo := new(mockEventRepo)

	status := domain.LeadStatusContacted
	expectedFilter := repository.LeadFilter{
		Status: &status,
		Limit:  10,
		Offset: 10,
	}
	leads.On("List", mock.Anything, expectedFilter).Return([]domain.Lead{
		{ID: "lead-1", Status: domain.LeadStatusContacted},
		{ID: "lead-2", Status: domain.LeadStatusContacted},
	}, nil)
	leads.On("Count", mock.Anything, expectedFilter).Return(23, nil)
	history.On("ListRecentByLead", mock.Anything, "lead-1", 5).
		Return([]domain.LeadStatusHistory{{LeadID: "lead-1", NewStatus: domain.LeadStatusContacted}}, nil)
	history.On("ListRecentByLead", mock.Anything, "lead-2", 5).
		Return([]domain.LeadStatusHistory{}, nil)

	svc, _ := newLeadServiceForTest(leads, history, eventsRepo)
	page, err := svc.ListLeads(context.Background(), LeadListInput{
		Status:   &status,
		Page:     2,
		PageSize: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 23, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Leads, 2)
	assert.Len(t, page.Leads[0].History, 1)
}

func TestListLeadsClampsOversizedPageSize(t *testing.T) {
	leads := new(mockLeadRepo)
	history := new(mockHistoryRepo)
	eventsRepo := new(mockEventRepo)

	expectedFilter := repository.LeadFilter{Limit: MaxPageSize, Offset: 0}
	leads.On("List", mock.Anything, expectedFilter).Return([]domain.Lead{}, nil)
	leads.On("Count", mock.Anything, expectedFilter).Return(0, nil)

	svc, _ := newLeadServiceForTest(leads, history, eventsRepo)
	page, err := svc.ListLeads(context.Background(), LeadListInput{Page: 1, PageSize: 5000})

	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.PageSize)
	leads.AssertExpectations(t)
}

func TestListLeadsDefaultsPagination(t *testing.T) {
	leads := new(mockLeadRepo)
	history := new(mockHistoryRepo)
	eventsRepo := new(mockEventRepo)

	expectedFilter := repository.LeadFilter{Limit: 10, Offset: 0}
	leads.On("List", mock.Anything, expectedFilter).Return([]domain.Lead{}, nil)
	leads.On("Count", mock.Anything, expectedFilter).Return(0, nil)

	svc, _ := newLeadServiceForTest(leads, history, eventsRepo)
	page, err := svc.ListLeads(context.Background(), LeadListInput{Page: 0, PageSize: -1})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 0, page.TotalPages)
}
