package dto

import "time"

// EventResponse describes one sports event.
type EventResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	PackageCount int       `json:"package_count,omitempty"`
}

// PackageResponse describes one travel package.
type PackageResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Title     string    `json:"title"`
	BasePrice float64   `json:"base_price"`
	CreatedAt time.Time `json:"created_at"`
}
