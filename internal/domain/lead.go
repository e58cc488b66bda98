package domain

import "time"

// LeadStatus enumerates lifecycle states for sales leads.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "New"
	LeadStatusContacted  LeadStatus = "Contacted"
	LeadStatusQuoteSent  LeadStatus = "QuoteSent"
	LeadStatusInterested LeadStatus = "Interested"
	LeadStatusClosedWon  LeadStatus = "ClosedWon"
	LeadStatusClosedLost LeadStatus = "ClosedLost"
)

// AllLeadStatuses lists every lifecycle state in workflow order.
var AllLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQuoteSent,
	LeadStatusInterested,
	LeadStatusClosedWon,
	LeadStatusClosedLost,
}

// ParseLeadStatus validates a raw status value.
func ParseLeadStatus(raw string) (LeadStatus, bool) {
	for _, status := range AllLeadStatuses {
		if string(status) == raw {
			return status, true
		}
	}
	return "", false
}

// Lead is the aggregate for a travel-package sales inquiry. Status is
// the only mutable field and changes exclusively through the lifecycle
// transition operation.
type Lead struct {
	ID             string
	Name           string
	Email          string
	Phone          *string
	EventID        string
	TravellerCount int
	Status         LeadStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Event and History are populated by read paths when requested.
	Event   *Event
	History []LeadStatusHistory
}
