package utils

import (
	"time"

	"car-rental-backend/internal/domain"
)

const hoursPerDay = 24

// ComputeRentalPrice returns the total charge in cents for renting a car at
// dailyPriceCents between start and end. Partial days are billed as whole
// days, and every rental is billed for at least one day.
func ComputeRentalPrice(start, end time.Time, dailyPriceCents int64) (int64, error) {
	if !end.After(start) {
		return 0, domain.ErrInvalidRange
	}

	days := BillableDays(start, end)
	return days * dailyPriceCents, nil
}

// BillableDays returns ceil((end-start)/24h) with a floor of one day.
// Callers must ensure end is after start.
func BillableDays(start, end time.Time) int64 {
	hours := end.Sub(start).Hours()
	days := int64(hours) / hoursPerDay
	if float64(days*hoursPerDay) < hours {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
