package utils

import (
	"math"
	"time"
)

// DateOnly truncates t to midnight UTC. All rental dates are stored as
// calendar days; comparing anything finer invites off-by-one bugs.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day, midnight UTC.
func Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// DaysBetween returns the number of whole days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(math.Ceil(DateOnly(end).Sub(DateOnly(start)).Hours() / 24))
}

// BillableMonths converts a rental span into billing units. Partial
// 30-day units round up, and every rental is billed at least one month.
func BillableMonths(start, end time.Time) int {
	days := DaysBetween(start, end)
	months := int(math.Ceil(float64(days) / 30.0))
	if months < 1 {
		months = 1
	}
	return months
}

// RentalCost is the total price for renting at monthlyCost over [start, end].
func RentalCost(monthlyCost float64, start, end time.Time) float64 {
	return monthlyCost * float64(BillableMonths(start, end))
}
