package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/matchday-travel/lead-service/internal/api/dto"
	"github.com/matchday-travel/lead-service/internal/domain"
	"github.com/matchday-travel/lead-service/internal/service"
	apperrors "github.com/matchday-travel/lead-service/pkg/util"
)

// LeadsHandler manages lead intake and lifecycle endpoints.
type LeadsHandler struct {
	service service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leadService service.LeadService) *LeadsHandler {
	return &LeadsHandler{service: leadService}
}

// CreateLead POST /api/leads.
func (h *LeadsHandler) CreateLead(c *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	lead, err := h.service.CreateLead(c.UserContext(), service.CreateLeadInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		EventID:        req.EventID,
		TravellerCount: req.TravellerCount,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, leadResponse(lead))
}

// ListLeads GET /api/leads.
func (h *LeadsHandler) ListLeads(c *fiber.Ctx) error {
	input, err := parseLeadListQuery(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListLeads(c.UserContext(), input)
	if err != nil {
		return err
	}

	items := make([]dto.LeadResponse, 0, len(page.Leads))
	for i := range page.Leads {
		items = append(items, leadResponse(&page.Leads[i]))
	}
	return respond(c, http.StatusOK, dto.LeadListResponse{
		Leads:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	})
}

// UpdateLeadStatus PATCH /api/leads/:id/status.
func (h *LeadsHandler) UpdateLeadStatus(c *fiber.Ctx) error {
	var req dto.UpdateLeadStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	status, ok := domain.ParseLeadStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError("unknown status", map[string]any{
			"status":   req.Status,
			"statuses": domain.AllLeadStatuses,
		})
	}

	lead, err := h.service.TransitionStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, leadResponse(lead))
}

func parseLeadListQuery(c *fiber.Ctx) (service.LeadListInput, error) {
	input := service.LeadListInput{
		Page:     parseInt(c.Query("page"), 1),
		PageSize: 10,
	}

	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > service.MaxPageSize {
			return input, apperrors.NewValidationError(
				fmt.Sprintf("page_size must be between 1 and %d", service.MaxPageSize),
				map[string]any{"page_size": raw})
		}
		input.PageSize = size
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseLeadStatus(raw)
		if !ok {
			return input, apperrors.NewValidationError("unknown status filter", map[string]any{"status": raw})
		}
		input.Status = &status
	}
	if raw := c.Query("event_id"); raw != "" {
		input.EventID = &raw
	}
	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return input, apperrors.NewValidationError("month must be between 1 and 12", map[string]any{"month": raw})
		}
		input.EventMonth = &month
	}
	return input, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func leadResponse(lead *domain.Lead) dto.LeadResponse {
	resp := dto.LeadResponse{
		ID:             lead.ID,
		Name:           lead.Name,
		Email:          lead.Email,
		Phone:          lead.Phone,
		EventID:        lead.EventID,
		TravellerCount: lead.TravellerCount,
		Status:         lead.Status,
		CreatedAt:      lead.CreatedAt,
		UpdatedAt:      lead.UpdatedAt,
	}
	if lead.Event != nil {
		event := eventResponse(lead.Event)
		resp.Event = &event
	}
	if len(lead.History) > 0 {
		resp.History = make([]dto.LeadHistoryResponse, 0, len(lead.History))
		for _, entry := range lead.History {
			resp.History = append(resp.History, dto.LeadHistoryResponse{
				ID:        entry.ID,
				OldStatus: entry.OldStatus,
				NewStatus: entry.NewStatus,
				ChangedAt: entry.ChangedAt,
			})
		}
	}
	return resp
}
