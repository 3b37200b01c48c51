package utils

import (
	"fmt"
	"math"
	"time"

	"charlymatloc-backend/internal/domain"
)

// DateLayout is the yyyy-mm-dd format used for rental dates
const DateLayout = "2006-01-02"

// RentalCostBreakdown provides detailed cost breakdown for one rented line
type RentalCostBreakdown struct {
	Days        int
	Quantity    int
	PricePerDay float64
	TotalCost   float64
}

// ParseDate converts a yyyy-mm-dd formatted string into a UTC date
func ParseDate(dateStr string) (time.Time, error) {
	if len(dateStr) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected yyyy-mm-dd", dateStr)
	}
	return t, nil
}

// FormatDate renders a date as yyyy-mm-dd
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateToDay drops the time of day, keeping the calendar date in UTC
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RentalDays counts rental days with both start and end dates included.
// A same-day rental counts as one day.
func RentalDays(startDate, endDate time.Time) (int, error) {
	start := TruncateToDay(startDate)
	end := TruncateToDay(endDate)
	if end.Before(start) {
		return 0, fmt.Errorf("end date must be >= start date")
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// RoundCents rounds an amount to two decimals
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CalculateRentalCost prices a rental line from the tool's tiers. The tier is
// the first one covering the duration, or the first tier when none does.
func CalculateRentalCost(startDate, endDate time.Time, tool *domain.Tool, quantity int) (RentalCostBreakdown, error) {
	if quantity < 1 {
		return RentalCostBreakdown{}, fmt.Errorf("quantity must be at least 1")
	}

	days, err := RentalDays(startDate, endDate)
	if err != nil {
		return RentalCostBreakdown{}, err
	}

	breakdown := RentalCostBreakdown{Days: days, Quantity: quantity}
	tier := tool.TierFor(days)
	if tier == nil {
		return breakdown, nil
	}

	breakdown.PricePerDay = tier.PricePerDay
	breakdown.TotalCost = RoundCents(tier.PricePerDay * float64(days) * float64(quantity))
	return breakdown, nil
}
