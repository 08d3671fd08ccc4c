package utils

import (
	"time"

	"dresscircle-checkout/internal/domain"
)

// SummaryOptions are the named business defaults for order aggregation.
// They live here, not as inline constants, so a deploy can override any of
// them through configuration without hunting through call sites.
type SummaryOptions struct {
	// TaxRateBasisPoints is the tax rate applied to the subtotal,
	// in basis points (1000 = 10%).
	TaxRateBasisPoints int64
	// ShippingFlatCents is the flat shipping fee charged on small orders.
	ShippingFlatCents int64
	// FreeShippingThresholdCents is the subtotal at or above which shipping
	// is free.
	FreeShippingThresholdCents int64
	// BuyPriceMultiplier is the fallback used when a BUY line carries no
	// explicit purchase price: purchase price = price per day * multiplier.
	BuyPriceMultiplier int64
	// Currency is the ISO code stamped on every summary. One currency per
	// order; no conversion.
	Currency string
}

// DefaultSummaryOptions returns the platform defaults: 10% tax, $10 flat
// shipping waived at a $100 subtotal, and a 10x daily-rate purchase fallback.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		TaxRateBasisPoints:         1000,
		ShippingFlatCents:          1000,
		FreeShippingThresholdCents: 10000,
		BuyPriceMultiplier:         10,
		Currency:                   "USD",
	}
}

// ParseDate converts a yyyy-mm-dd formatted string into a UTC time.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// DurationInDays computes the rental duration between two calendar dates,
// inclusive of both boundary days: a same-day rental is 1 day, D to D+2 is 3.
//
// The function fails closed rather than erroring: a zero time (the
// unparseable-date case) or an inverted range (end before start) yields the
// minimum 1-day duration. Callers that need to reject inverted ranges do so
// at the service boundary before the dates reach pricing.
func DurationInDays(start, end time.Time) int32 {
	if start.IsZero() || end.IsZero() {
		return 1
	}

	// Normalize to calendar dates so the count is immune to time-of-day and
	// timezone offsets in the inputs.
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	days := int32(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// durationFromStrings parses a rental window and falls back to a 1-day
// duration when either bound is unparseable.
func durationFromStrings(startDate, endDate string) int32 {
	start, err := ParseDate(startDate)
	if err != nil {
		return 1
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 1
	}
	return DurationInDays(start, end)
}

// RentalLineTotal computes the monetary contribution of one rental line for
// the given duration. A BUY line uses its purchase price, falling back to
// price per day * buyMultiplier when no purchase price is set. Missing or
// negative inputs degrade to zero; the result is never negative and the
// function never errors, so one incomplete line renders as free instead of
// corrupting the whole summary.
func RentalLineTotal(item domain.RentalItem, days int32, buyMultiplier int64) int64 {
	qty := int64(item.Quantity)
	if qty < 0 {
		qty = 0
	}
	if days < 1 {
		days = 1
	}

	if item.PurchaseType == domain.PurchaseTypeBuy {
		price := item.PurchasePriceCents
		if price <= 0 {
			price = nonNegative(item.PricePerDayCents) * buyMultiplier
		}
		return nonNegative(price) * qty
	}

	return nonNegative(item.PricePerDayCents) * int64(days) * qty
}

// ServiceLineTotal computes the contribution of a one-off service booking.
// Quantity is fixed at 1 and duration is ignored.
func ServiceLineTotal(item domain.ServiceItem) int64 {
	return nonNegative(item.PriceCents)
}

func nonNegative(cents int64) int64 {
	if cents < 0 {
		return 0
	}
	return cents
}

// Summarize aggregates a draft order's lines into the full money breakdown.
// It is a pure function: callers must re-run it from scratch after every
// mutation instead of patching a previous summary incrementally.
//
// The rental window is taken from the first rental item (one rental window
// per order). An order with no lines at all produces an all-zero summary,
// which is a valid displayable state, not an error.
func Summarize(items []domain.RentalItem, services []domain.ServiceItem, opts SummaryOptions) domain.OrderSummary {
	summary := domain.OrderSummary{Currency: opts.Currency}

	var days int32
	if len(items) > 0 {
		days = durationFromStrings(items[0].StartDate, items[0].EndDate)
		summary.RentalDays = days
	}

	var subtotal int64
	for _, item := range items {
		subtotal += RentalLineTotal(item, days, opts.BuyPriceMultiplier)
	}
	for _, item := range services {
		subtotal += ServiceLineTotal(item)
	}

	tax := subtotal * opts.TaxRateBasisPoints / 10000

	var shipping int64
	if subtotal > 0 && subtotal < opts.FreeShippingThresholdCents {
		shipping = opts.ShippingFlatCents
	}

	total := subtotal + tax + shipping

	// The deposit is half the total; the remainder is derived by subtraction
	// so deposit + remaining == total holds exactly for odd cent totals.
	deposit := total / 2

	summary.SubtotalCents = subtotal
	summary.TaxCents = tax
	summary.ShippingCents = shipping
	summary.TotalCents = total
	summary.InitialDepositCents = deposit
	summary.RemainingPaymentCents = total - deposit
	return summary
}
