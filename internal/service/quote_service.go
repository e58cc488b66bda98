package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/matchday-travel/lead-service/internal/domain"
	"github.com/matchday-travel/lead-service/internal/events"
	"github.com/matchday-travel/lead-service/internal/persistence"
	"github.com/matchday-travel/lead-service/internal/pricing"
	"github.com/matchday-travel/lead-service/internal/repository"
	apperrors "github.com/matchday-travel/lead-service/pkg/util"
)

// GenerateQuoteInput carries the quote request.
type GenerateQuoteInput struct {
	LeadID         string
	PackageID      string
	TravellerCount *int
}

// QuoteResult bundles the persisted quote with summaries of the lead
// and package it was priced for. LeadStatus always reads QuoteSent:
// either the quote just moved the lead there or the lead was already at
// that stage or beyond.
type QuoteResult struct {
	Quote        *domain.Quote
	LeadID       string
	LeadName     string
	LeadStatus   domain.LeadStatus
	PackageID    string
	PackageTitle string
	EventID      string
}

// QuoteService generates priced offers for leads.
type QuoteService interface {
	GenerateQuote(ctx context.Context, input GenerateQuoteInput) (*QuoteResult, error)
	ListQuotesForLead(ctx context.Context, leadID string) ([]domain.Quote, error)
}

type quoteService struct {
	quotes     repository.QuoteRepository
	leads      repository.LeadRepository
	packages   repository.PackageRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewQuoteService wires the quote service.
func NewQuoteService(
	quotes repository.QuoteRepository,
	leads repository.LeadRepository,
	packages repository.PackageRepository,
	dispatcher events.Dispatcher,
) QuoteService {
	return &quoteService{
		quotes:     quotes,
		leads:      leads,
		packages:   packages,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// GenerateQuote prices the package for the lead and persists an
// immutable quote. When the lead is still in New or Contacted it is
// advanced to QuoteSent in the same transaction; leads already at
// QuoteSent or further keep their status.
func (s *quoteService) GenerateQuote(ctx context.Context, input GenerateQuoteInput) (*QuoteResult, error) {
	var (
		lead *domain.Lead
		pkg  *domain.Package
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		result, err := persistence.RetryRead(groupCtx, func(ctx context.Context) (*domain.Lead, error) {
			return s.leads.GetByID(ctx, input.LeadID)
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("lead", map[string]any{"lead_id": input.LeadID})
			}
			return err
		}
		lead = result
		return nil
	})
	group.Go(func() error {
		result, err := persistence.RetryRead(groupCtx, func(ctx context.Context) (*domain.Package, error) {
			return s.packages.GetByID(ctx, input.PackageID)
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("package", map[string]any{"package_id": input.PackageID})
			}
			return err
		}
		pkg = result
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, apperrors.MapError(err)
	}

	if pkg.EventID != lead.EventID {
		return nil, apperrors.NewEventMismatch()
	}

	travellers := lead.TravellerCount
	if input.TravellerCount != nil {
		travellers = *input.TravellerCount
	}

	eventStart := lead.Event.StartDate
	breakdown := pricing.Compute(pricing.Input{
		BasePrice:      pkg.BasePrice,
		EventStartDate: eventStart,
		TravellerCount: travellers,
		Now:            s.now(),
	})

	quote := &domain.Quote{
		LeadID:               lead.ID,
		PackageID:            pkg.ID,
		BasePrice:            breakdown.BasePrice,
		SeasonalAdjustment:   breakdown.SeasonalAdjustment,
		EarlyBirdAdjustment:  breakdown.EarlyBirdAdjustment,
		LastMinuteAdjustment: breakdown.LastMinuteAdjustment,
		GroupDiscount:        breakdown.GroupDiscount,
		WeekendSurcharge:     breakdown.WeekendSurcharge,
		FinalPrice:           breakdown.FinalPrice,
	}

	var advanceFrom *domain.LeadStatus
	if lead.Status == domain.LeadStatusNew || lead.Status == domain.LeadStatusContacted {
		current := lead.Status
		advanceFrom = &current
	}

	if err := s.quotes.CreateWithStatusAdvance(ctx, quote, advanceFrom); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("lead status changed concurrently, retry the quote request",
				map[string]any{"lead_id": lead.ID})
		}
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:   events.EventQuoteGenerated,
		LeadID: lead.ID,
		Payload: events.QuoteGeneratedPayload{
			QuoteID:    quote.ID,
			PackageID:  quote.PackageID,
			FinalPrice: quote.FinalPrice,
		},
	})

	return &QuoteResult{
		Quote:        quote,
		LeadID:       lead.ID,
		LeadName:     lead.Name,
		LeadStatus:   domain.LeadStatusQuoteSent,
		PackageID:    pkg.ID,
		PackageTitle: pkg.Title,
		EventID:      pkg.EventID,
	}, nil
}

// ListQuotesForLead returns the lead's quotes, newest first.
func (s *quoteService) ListQuotesForLead(ctx context.Context, leadID string) ([]domain.Quote, error) {
	if _, err := s.leads.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}

	quotes, err := persistence.RetryRead(ctx, func(ctx context.Context) ([]domain.Quote, error) {
		return s.quotes.ListByLead(ctx, leadID)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return quotes, nil
}
