package domain

import "time"

// Package is a purchasable travel bundle for an event. Read-only input
// to pricing; never mutated after creation.
type Package struct {
	ID        string
	EventID   string
	Title     string
	BasePrice float64
	CreatedAt time.Time
}
