package dto

import (
	"time"

	"github.com/matchday-travel/lead-service/internal/domain"
)

// CreateLeadRequest payload.
type CreateLeadRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=120"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          *string `json:"phone" validate:"omitempty,min=5,max=32"`
	EventID        string  `json:"event_id" validate:"required,uuid4"`
	TravellerCount int     `json:"traveller_count" validate:"required,min=1,max=100"`
}

// UpdateLeadStatusRequest payload.
type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// LeadResponse is the full lead representation.
type LeadResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Phone          *string               `json:"phone"`
	EventID        string                `json:"event_id"`
	TravellerCount int                   `json:"traveller_count"`
	Status         domain.LeadStatus     `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Event          *EventResponse        `json:"event,omitempty"`
	History        []LeadHistoryResponse `json:"status_history,omitempty"`
}

// LeadHistoryResponse is one audit trail entry.
type LeadHistoryResponse struct {
	ID        string             `json:"id"`
	OldStatus *domain.LeadStatus `json:"old_status"`
	NewStatus domain.LeadStatus  `json:"new_status"`
	ChangedAt time.Time          `json:"changed_at"`
}

// LeadListResponse is one page of leads.
type LeadListResponse struct {
	Leads      []LeadResponse `json:"leads"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}
