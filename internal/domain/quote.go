package domain

import "time"

// Quote is an immutable priced offer for a lead/package pair. A new
// quote request always produces a new row, never an update.
type Quote struct {
	ID                   string
	LeadID               string
	PackageID            string
	BasePrice            float64
	SeasonalAdjustment   float64
	EarlyBirdAdjustment  float64
	LastMinuteAdjustment float64
	GroupDiscount        float64
	WeekendSurcharge     float64
	FinalPrice           float64
	CreatedAt            time.Time
}
