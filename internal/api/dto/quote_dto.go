package dto

import (
	"time"

	"github.com/matchday-travel/lead-service/internal/domain"
)

// GenerateQuoteRequest payload.
type GenerateQuoteRequest struct {
	LeadID         string `json:"lead_id" validate:"required,uuid4"`
	PackageID      string `json:"package_id" validate:"required,uuid4"`
	TravellerCount *int   `json:"traveller_count" validate:"omitempty,min=1,max=100"`
}

// LeadQuoteResponse is one quote in a lead's quote listing.
type LeadQuoteResponse struct {
	ID                   string    `json:"id"`
	PackageID            string    `json:"package_id"`
	BasePrice            float64   `json:"base_price"`
	SeasonalAdjustment   float64   `json:"seasonal_adjustment"`
	EarlyBirdAdjustment  float64   `json:"early_bird_adjustment"`
	LastMinuteAdjustment float64   `json:"last_minute_adjustment"`
	GroupDiscount        float64   `json:"group_discount"`
	WeekendSurcharge     float64   `json:"weekend_surcharge"`
	FinalPrice           float64   `json:"final_price"`
	CreatedAt            time.Time `json:"created_at"`
}

// QuoteResponse itemizes the priced offer.
type QuoteResponse struct {
	ID                   string            `json:"id"`
	LeadID               string            `json:"lead_id"`
	LeadName             string            `json:"lead_name"`
	LeadStatus           domain.LeadStatus `json:"lead_status"`
	PackageID            string            `json:"package_id"`
	PackageTitle         string            `json:"package_title"`
	EventID              string            `json:"event_id"`
	BasePrice            float64           `json:"base_price"`
	SeasonalAdjustment   float64           `json:"seasonal_adjustment"`
	EarlyBirdAdjustment  float64           `json:"early_bird_adjustment"`
	LastMinuteAdjustment float64           `json:"last_minute_adjustment"`
	GroupDiscount        float64           `json:"group_discount"`
	WeekendSurcharge     float64           `json:"weekend_surcharge"`
	FinalPrice           float64           `json:"final_price"`
	CreatedAt            time.Time         `json:"created_at"`
}
