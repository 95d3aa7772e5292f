package utils

import (
	"time"

	"skirentals-backend/internal/domain"
)

// Fallback multipliers applied when an equipment item has no explicit
// weekly or seasonal rate.
const (
	WeeklyFallbackDays   = 5
	SeasonalFallbackDays = 90
)

// Derived checkout surcharges. Neither value is persisted; both are
// recomputed for display on every cart read.
const (
	InsuranceFeeCents = 2500 // flat $25.00 per checkout
	TaxRatePermille   = 85   // 8.5%, applied to subtotal + insurance
)

// PriceForDuration returns the rate for one unit of the given duration.
// Missing weekly/seasonal rates fall back to multiples of the daily rate;
// an unknown duration falls back to the daily rate.
func PriceForDuration(e *domain.Equipment, d domain.RentalDuration) int64 {
	switch d {
	case domain.RentalDurationDaily:
		return e.DailyRateCents
	case domain.RentalDurationWeekly:
		if e.WeeklyRateCents != nil {
			return *e.WeeklyRateCents
		}
		return e.DailyRateCents * WeeklyFallbackDays
	case domain.RentalDurationSeasonal:
		if e.SeasonalRateCents != nil {
			return *e.SeasonalRateCents
		}
		return e.DailyRateCents * SeasonalFallbackDays
	}
	return e.DailyRateCents
}

// RentalDays returns the number of calendar days covered by the item's
// date range, counting both endpoints. Time-of-day is ignored. Never
// returns less than 1.
func RentalDays(item *domain.CartItem) int64 {
	sy, sm, sd := item.StartDate.Date()
	ey, em, ed := item.EndDate.Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	days := int64(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// CartItemSubtotal prices a single cart item. DAILY charges per inclusive
// day, WEEKLY charges per started week, SEASONAL is flat regardless of the
// date span. The item's Equipment must be populated.
func CartItemSubtotal(item *domain.CartItem) int64 {
	e := item.Equipment
	switch item.Duration {
	case domain.RentalDurationDaily:
		return PriceForDuration(e, domain.RentalDurationDaily) * RentalDays(item)
	case domain.RentalDurationWeekly:
		weeks := (RentalDays(item) + 6) / 7
		return PriceForDuration(e, domain.RentalDurationWeekly) * weeks
	case domain.RentalDurationSeasonal:
		return PriceForDuration(e, domain.RentalDurationSeasonal)
	}
	return e.DailyRateCents * RentalDays(item)
}

// CartTotal sums the subtotals of all items.
func CartTotal(items []domain.CartItem) int64 {
	var total int64
	for i := range items {
		total += CartItemSubtotal(&items[i])
	}
	return total
}

// TaxCents computes 8.5% of the given amount, rounded half up to the
// nearest cent.
func TaxCents(amountCents int64) int64 {
	return (amountCents*TaxRatePermille + 500) / 1000
}

// SummarizeCart computes the display totals for a cart: item subtotal,
// flat insurance fee, tax on subtotal plus insurance, and the grand total.
func SummarizeCart(items []domain.CartItem) domain.CartSummary {
	subtotal := CartTotal(items)
	withInsurance := subtotal + InsuranceFeeCents
	tax := TaxCents(withInsurance)
	return domain.CartSummary{
		SubtotalCents:         subtotal,
		InsuranceFeeCents:     InsuranceFeeCents,
		SubtotalWithInsurance: withInsurance,
		TaxCents:              tax,
		TotalCents:            withInsurance + tax,
	}
}
