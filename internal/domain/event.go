package domain

import "time"

// Event is a sporting event that packages and leads attach to.
// Events are immutable once created.
type Event struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time

	// PackageCount is populated by listing queries.
	PackageCount int
}
