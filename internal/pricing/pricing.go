// Package pricing implements the booking kernel's Pricing Engine: a
// pure, deterministic, side-effect-free function of (pricePerDay,
// startDate, endDate).
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/money"
)

// Quote is the pricing snapshot computed at booking creation time.
// Deposit is intentionally absent: it is snapshotted by the caller from
// the item, not computed here.
type Quote struct {
	TotalDays      int
	BaseTotal      decimal.Decimal
	DiscountRate   decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
}

var (
	rateNone = decimal.Zero
	rateLow  = decimal.NewFromFloat(0.10)
	rateHigh = decimal.NewFromFloat(0.20)
)

// discountRate applies the tiered discount table top-to-bottom: the
// first matching row wins.
func discountRate(totalDays int) decimal.Decimal {
	switch {
	case totalDays >= 30:
		return rateHigh
	case totalDays >= 7:
		return rateLow
	default:
		return rateNone
	}
}

// Compute returns the pricing snapshot for a rental of [start, end]
// (inclusive on both ends, matching the overlap semantics used elsewhere).
// It fails with apperr.ErrInvalidDateRange if start >= end: a rental must
// span a strict gap of at least one calendar day, so the shortest legal
// booking is two inclusive days.
func Compute(pricePerDay decimal.Decimal, start, end time.Time) (Quote, error) {
	start = dateOnly(start)
	end = dateOnly(end)

	if !start.Before(end) {
		return Quote{}, apperr.ErrInvalidDateRange
	}
	if pricePerDay.IsNegative() {
		return Quote{}, apperr.Validation("pricePerDay must not be negative")
	}

	totalDays := int(end.Sub(start).Hours()/24) + 1

	base := pricePerDay.Mul(decimal.NewFromInt(int64(totalDays)))
	base = money.RoundHalfUp(base)

	rate := discountRate(totalDays)
	discount := money.RoundHalfUp(base.Mul(rate))
	final := base.Sub(discount)

	return Quote{
		TotalDays:      totalDays,
		BaseTotal:      base,
		DiscountRate:   rate,
		DiscountAmount: discount,
		FinalTotal:     final,
	}, nil
}

// dateOnly truncates a timestamp down to UTC midnight so that duration
// arithmetic is calendar-day arithmetic, never sub-day.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
