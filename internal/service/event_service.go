package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/matchday-travel/lead-service/internal/cache"
	"github.com/matchday-travel/lead-service/internal/domain"
	"github.com/matchday-travel/lead-service/internal/persistence"
	"github.com/matchday-travel/lead-service/internal/repository"
	apperrors "github.com/matchday-travel/lead-service/pkg/util"
)

// EventService exposes the public event catalogue.
type EventService interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEventPackages(ctx context.Context, eventID string) ([]domain.Package, error)
}

type eventService struct {
	eventsRepo repository.EventRepository
	packages   repository.PackageRepository
	eventCache *cache.EventCache
	logger     *zap.Logger
}

// NewEventService wires the event service. The cache may be nil, in
// which case every read goes to Postgres.
func NewEventService(
	eventsRepo repository.EventRepository,
	packages repository.PackageRepository,
	eventCache *cache.EventCache,
	logger *zap.Logger,
) EventService {
	return &eventService{
		eventsRepo: eventsRepo,
		packages:   packages,
		eventCache: eventCache,
		logger:     logger,
	}
}

// ListEvents returns all events with package counts, cache-aside over
// Redis. Cache failures degrade to a database read.
func (s *eventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	cached, err := s.eventCache.GetEvents(ctx)
	if err != nil {
		s.logger.Warn("event list cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	result, err := persistence.RetryRead(ctx, func(ctx context.Context) ([]domain.Event, error) {
		return s.eventsRepo.List(ctx)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.eventCache.SetEvents(ctx, result); err != nil {
		s.logger.Warn("event list cache write failed", zap.Error(err))
	}
	return result, nil
}

// GetEvent returns one event by id.
func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	cached, err := s.eventCache.GetEvent(ctx, id)
	if err != nil {
		s.logger.Warn("event cache read failed", zap.String("event_id", id), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	event, err := persistence.RetryRead(ctx, func(ctx context.Context) (*domain.Event, error) {
		return s.eventsRepo.GetByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.eventCache.SetEvent(ctx, event); err != nil {
		s.logger.Warn("event cache write failed", zap.String("event_id", id), zap.Error(err))
	}
	return event, nil
}

// ListEventPackages returns the packages of one event, cheapest first.
// The event is looked up first so an unknown id reports not-found
// instead of an empty list.
func (s *eventService) ListEventPackages(ctx context.Context, eventID string) ([]domain.Package, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	result, err := persistence.RetryRead(ctx, func(ctx context.Context) ([]domain.Package, error) {
		return s.packages.ListByEvent(ctx, eventID)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}
