package utils

import (
	"math"
	"time"

	"unirent-backend/internal/domain"
)

const daysPerMonth = 30

// CalculateRentalTotal computes the billed total for a rental span. Spans are
// measured as wall-clock differences and rounded up per rate unit: a partial
// hour, day, or 30-day month is always billed as a full unit.
//
//	hourly:  ceil(hours)  * rate
//	daily:   ceil(days)   * rate
//	monthly: ceil(days/30) * rate
func CalculateRentalTotal(rateType domain.RateType, rateAmount float64, start, end time.Time) (float64, error) {
	if !rateType.Valid() {
		return 0, domain.NewValidationError("rate_type", "must be hourly, daily or monthly")
	}
	if rateAmount < 0 {
		return 0, domain.NewValidationError("rate_amount", "must not be negative")
	}
	if !end.After(start) {
		return 0, domain.NewValidationError("planned_end_date", "must be after start date")
	}

	span := end.Sub(start)

	var units float64
	switch rateType {
	case domain.RateTypeHourly:
		units = math.Ceil(span.Hours())
	case domain.RateTypeDaily:
		units = math.Ceil(span.Hours() / 24)
	case domain.RateTypeMonthly:
		days := math.Ceil(span.Hours() / 24)
		units = math.Ceil(days / daysPerMonth)
	}

	return units * rateAmount, nil
}
