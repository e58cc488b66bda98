package domain

import "time"

// LeadStatusHistory is an immutable audit entry recording one status
// change. OldStatus is nil only for the entry written at lead creation.
type LeadStatusHistory struct {
	ID        string
	LeadID    string
	OldStatus *LeadStatus
	NewStatus LeadStatus
	ChangedAt time.Time
}
