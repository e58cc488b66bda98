package events

import (
	"time"

	"github.com/matchday-travel/lead-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventLeadStatusChanged EventType = "lead_status_changed"
	EventQuoteGenerated    EventType = "quote_generated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	LeadID    string      `json:"lead_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	EventID        string `json:"event_id"`
	Email          string `json:"email"`
	TravellerCount int    `json:"traveller_count"`
}

// LeadStatusChangedPayload payload.
type LeadStatusChangedPayload struct {
	OldStatus domain.LeadStatus `json:"old_status"`
	NewStatus domain.LeadStatus `json:"new_status"`
}

// QuoteGeneratedPayload payload.
type QuoteGeneratedPayload struct {
	QuoteID    string  `json:"quote_id"`
	PackageID  string  `json:"package_id"`
	FinalPrice float64 `json:"final_price"`
}
