// Package pricing computes itemized price breakdowns for travel
// packages. All rules are pure functions of the inputs; the reference
// time is passed in explicitly so results are deterministic.
package pricing

import (
	"math"
	"time"
)

const (
	highSeasonRate  = 0.20
	midSeasonRate   = 0.10
	earlyBirdRate   = 0.10
	lastMinuteRate  = 0.25
	groupRate       = 0.08
	weekendRate     = 0.08
	earlyBirdDays   = 120
	lastMinuteDays  = 15
	minGroupSize    = 4
	weekendScanDays = 7
)

// Input carries everything the pricing rules depend on.
type Input struct {
	BasePrice      float64
	EventStartDate time.Time
	TravellerCount int
	Now            time.Time
}

// Breakdown itemizes each adjustment plus the final price. Every
// component is a rounded snapshot of its contribution at the moment it
// was applied to the running price.
type Breakdown struct {
	BasePrice            float64
	SeasonalAdjustment   float64
	EarlyBirdAdjustment  float64
	LastMinuteAdjustment float64
	GroupDiscount        float64
	WeekendSurcharge     float64
	FinalPrice           float64
}

// Compute applies the adjustment rules in a fixed order, each against
// the running price rather than the original base:
// seasonal, early-bird, last-minute, group discount, weekend surcharge.
// The final price is clamped at zero and everything is rounded to two
// decimals on the way out.
func Compute(in Input) Breakdown {
	price := in.BasePrice
	b := Breakdown{BasePrice: in.BasePrice}

	switch in.EventStartDate.Month() {
	case time.June, time.July, time.December:
		b.SeasonalAdjustment = price * highSeasonRate
		price += b.SeasonalAdjustment
	case time.April, time.May, time.September:
		b.SeasonalAdjustment = price * midSeasonRate
		price += b.SeasonalAdjustment
	}

	daysUntil := daysBetween(in.Now, in.EventStartDate)

	if daysUntil >= earlyBirdDays {
		b.EarlyBirdAdjustment = -price * earlyBirdRate
		price += b.EarlyBirdAdjustment
	}

	if daysUntil >= 0 && daysUntil < lastMinuteDays {
		b.LastMinuteAdjustment = price * lastMinuteRate
		price += b.LastMinuteAdjustment
	}

	if in.TravellerCount >= minGroupSize {
		b.GroupDiscount = -price * groupRate
		price += b.GroupDiscount
	}

	if touchesWeekend(in.EventStartDate) {
		b.WeekendSurcharge = price * weekendRate
		price += b.WeekendSurcharge
	}

	if price < 0 {
		price = 0
	}

	b.BasePrice = round2(b.BasePrice)
	b.SeasonalAdjustment = round2(b.SeasonalAdjustment)
	b.EarlyBirdAdjustment = round2(b.EarlyBirdAdjustment)
	b.LastMinuteAdjustment = round2(b.LastMinuteAdjustment)
	b.GroupDiscount = round2(b.GroupDiscount)
	b.WeekendSurcharge = round2(b.WeekendSurcharge)
	b.FinalPrice = round2(price)
	return b
}

// daysBetween counts whole calendar days from now to the event start,
// both normalized to midnight UTC so daylight-saving shifts cannot skew
// the count.
func daysBetween(now, event time.Time) int {
	nowDay := atMidnightUTC(now)
	eventDay := atMidnightUTC(event)
	return int(eventDay.Sub(nowDay) / (24 * time.Hour))
}

func atMidnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// touchesWeekend scans the seven calendar days starting at the event
// start date, inclusive, for a Saturday or Sunday.
func touchesWeekend(start time.Time) bool {
	for i := 0; i < weekendScanDays; i++ {
		switch start.AddDate(0, 0, i).Weekday() {
		case time.Saturday, time.Sunday:
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
