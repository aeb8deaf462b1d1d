// internal/service/discount/selector.go
package discount

import (
	"math"

	"mealbox-service/internal/domain/discount"
)

// savingsEpsilon is the tolerance under which two savings figures count as a
// tie and the lexicographically smaller label wins.
const savingsEpsilon = 1e-4

// Savings computes how much a discount takes off a baseline subtotal.
// Percentage discounts save subtotal*value/100; fixed discounts save at most
// the subtotal itself.
func Savings(d *discount.DurationDiscount, subtotal float64) float64 {
	switch d.DiscountType {
	case discount.DiscountTypePercentage:
		return subtotal * d.DiscountValue / 100
	case discount.DiscountTypeFixed:
		return math.Min(subtotal, d.DiscountValue)
	default:
		return 0
	}
}

// betterThan imposes the selector's total order: higher savings first, and on
// a tie the smaller label. The order is deterministic under permutation of
// the candidate list.
func betterThan(a *discount.DurationDiscount, aSavings float64, b *discount.DurationDiscount, bSavings float64, compareRaw bool) bool {
	av, bv := aSavings, bSavings
	if compareRaw {
		av, bv = a.DiscountValue, b.DiscountValue
	}
	if math.Abs(av-bv) < savingsEpsilon {
		return a.Label < b.Label
	}
	return av > bv
}

// SelectBest picks the single best-saving discount among candidates for the
// given day-count, or none. Candidates are assumed to have passed scope
// filtering already (BuildIndex output). A pinned discount id is honored only
// while it remains among the candidates; otherwise auto-selection resumes.
func SelectBest(candidates []discount.DurationDiscount, perDayTotal float64, dayCount int, pinnedID string) discount.Selection {
	if len(candidates) == 0 {
		return discount.Selection{}
	}

	subtotal := perDayTotal * float64(dayCount)
	compareRaw := subtotal == 0

	if pinnedID != "" {
		for i := range candidates {
			if candidates[i].ID == pinnedID {
				d := candidates[i]
				return discount.Selection{Discount: &d, Savings: Savings(&d, subtotal), Pinned: true}
			}
		}
	}

	var best *discount.DurationDiscount
	var bestSavings float64
	for i := range candidates {
		c := candidates[i]
		s := Savings(&c, subtotal)
		if best == nil || betterThan(&c, s, best, bestSavings, compareRaw) {
			best = &c
			bestSavings = s
		}
	}

	return discount.Selection{Discount: best, Savings: bestSavings}
}
