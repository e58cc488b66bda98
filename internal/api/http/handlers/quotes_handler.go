package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchday-travel/lead-service/internal/api/dto"
	"github.com/matchday-travel/lead-service/internal/service"
)

// QuotesHandler exposes quote generation for staff.
type QuotesHandler struct {
	service service.QuoteService
}

// NewQuotesHandler constructs handler.
func NewQuotesHandler(quoteService service.QuoteService) *QuotesHandler {
	return &QuotesHandler{service: quoteService}
}

// GenerateQuote POST /api/quotes/generate.
func (h *QuotesHandler) GenerateQuote(c *fiber.Ctx) error {
	var req dto.GenerateQuoteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.service.GenerateQuote(c.UserContext(), service.GenerateQuoteInput{
		LeadID:         req.LeadID,
		PackageID:      req.PackageID,
		TravellerCount: req.TravellerCount,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, dto.QuoteResponse{
		ID:                   result.Quote.ID,
		LeadID:               result.LeadID,
		LeadName:             result.LeadName,
		LeadStatus:           result.LeadStatus,
		PackageID:            result.PackageID,
		PackageTitle:         result.PackageTitle,
		EventID:              result.EventID,
		BasePrice:            result.Quote.BasePrice,
		SeasonalAdjustment:   result.Quote.SeasonalAdjustment,
		EarlyBirdAdjustment:  result.Quote.EarlyBirdAdjustment,
		LastMinuteAdjustment: result.Quote.LastMinuteAdjustment,
		GroupDiscount:        result.Quote.GroupDiscount,
		WeekendSurcharge:     result.Quote.WeekendSurcharge,
		FinalPrice:           result.Quote.FinalPrice,
		CreatedAt:            result.Quote.CreatedAt,
	})
}

// ListLeadQuotes GET /api/leads/:id/quotes.
func (h *QuotesHandler) ListLeadQuotes(c *fiber.Ctx) error {
	quotes, err := h.service.ListQuotesForLead(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.LeadQuoteResponse, 0, len(quotes))
	for _, quote := range quotes {
		items = append(items, dto.LeadQuoteResponse{
			ID:                   quote.ID,
			PackageID:            quote.PackageID,
			BasePrice:            quote.BasePrice,
			SeasonalAdjustment:   quote.SeasonalAdjustment,
			EarlyBirdAdjustment:  quote.EarlyBirdAdjustment,
			LastMinuteAdjustment: quote.LastMinuteAdjustment,
			GroupDiscount:        quote.GroupDiscount,
			WeekendSurcharge:     quote.WeekendSurcharge,
			FinalPrice:           quote.FinalPrice,
			CreatedAt:            quote.CreatedAt,
		})
	}
	return respond(c, http.StatusOK, items)
}
