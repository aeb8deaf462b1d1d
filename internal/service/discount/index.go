// internal/service/discount/index.go
package discount

import (
	"math"

	"mealbox-service/internal/domain/discount"
)

// MatchIDs is the single matcher used for category and package scoping.
// MatchAll requires the selection to equal the candidate set exactly (same
// cardinality, full containment); MatchAny requires at least one overlap.
func MatchIDs(candidateIDs, selectionIDs []string, match discount.MatchType) bool {
	if len(candidateIDs) == 0 {
		return false
	}

	candidates := make(map[string]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		candidates[id] = true
	}

	switch match {
	case discount.MatchAll:
		if len(selectionIDs) != len(candidates) {
			return false
		}
		for _, id := range selectionIDs {
			if !candidates[id] {
				return false
			}
		}
		return true
	default: // MatchAny
		for _, id := range selectionIDs {
			if candidates[id] {
				return true
			}
		}
		return false
	}
}

// MatchesScope reports whether a discount targets the cart. A subscription
// carries exactly one category, so category scope collapses to a membership
// test regardless of the discount's match type.
func MatchesScope(d *discount.DurationDiscount, cart discount.CartContext) bool {
	switch d.Scope {
	case discount.ScopeAll:
		return true
	case discount.ScopeCategories:
		return MatchIDs(d.CategoryIDs, []string{cart.CategoryID}, discount.MatchAny)
	case discount.ScopePackages:
		return MatchIDs(d.PackageIDs, cart.SelectedPackageIDs, d.MatchType)
	default:
		return false
	}
}

// NormalizeDayCount rounds an operator-entered day count to a usable integer.
// The second return is false for non-positive values, which are discarded.
func NormalizeDayCount(v float64) (int, bool) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	days := int(math.Round(v))
	if days < 1 {
		days = 1
	}
	return days, true
}

// BuildIndex groups the discounts applicable to the cart by normalized
// day-count. Pure function of its inputs; the catalog slice is not mutated.
func BuildIndex(discounts []discount.DurationDiscount, cart discount.CartContext) map[int][]discount.DurationDiscount {
	index := make(map[int][]discount.DurationDiscount)
	for i := range discounts {
		d := discounts[i]
		days, ok := NormalizeDayCount(d.DayCount)
		if !ok {
			continue
		}
		if !MatchesScope(&d, cart) {
			continue
		}
		index[days] = append(index[days], d)
	}
	return index
}
