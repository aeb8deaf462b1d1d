// internal/service/refund/tiers.go
package refund

import (
	"errors"
	"fmt"
	"sort"

	"mealbox-service/internal/domain/refund"
)

// ErrNoApplicableTier is a redemption-time failure: the persisted schedule
// has a gap covering the elapsed day. It is a data-integrity signal for the
// operator, never silently defaulted to 0%.
var ErrNoApplicableTier = errors.New("no applicable refund tier for elapsed days")

// ClampTiers bounds every day value to [0, lengthDays] so a tier cannot
// reference a day beyond the subscription length. Returns a new slice.
func ClampTiers(tiers []refund.RefundTier, lengthDays int) []refund.RefundTier {
	out := make([]refund.RefundTier, len(tiers))
	for i, t := range tiers {
		if t.StartDay < 0 {
			t.StartDay = 0
		}
		if t.StartDay > lengthDays {
			t.StartDay = lengthDays
		}
		if t.EndDay != nil {
			end := *t.EndDay
			if end < 0 {
				end = 0
			}
			if end > lengthDays {
				end = lengthDays
			}
			t.EndDay = &end
		}
		out[i] = t
	}
	return out
}

// ValidateSchedule checks a tier schedule at authoring time and returns every
// violation found rather than stopping at the first. An empty result means
// the schedule may be saved. Gaps between tiers are not violations; they are
// surfaced separately by LintSchedule.
func ValidateSchedule(lengthDays int, tiers []refund.RefundTier) []refund.Violation {
	var violations []refund.Violation

	if lengthDays < 1 {
		violations = append(violations, refund.Violation{TierIndex: -1,
			Message: "subscription length must be at least 1 day"})
	}
	if len(tiers) == 0 {
		violations = append(violations, refund.Violation{TierIndex: -1,
			Message: "schedule must contain at least one tier"})
		return violations
	}

	for i, t := range tiers {
		if t.StartDay < 0 {
			violations = append(violations, refund.Violation{TierIndex: i,
				Message: "start day must not be negative"})
		}
		if t.RefundPercent < 0 || t.RefundPercent > 100 {
			violations = append(violations, refund.Violation{TierIndex: i,
				Message: "refund percent must be between 0 and 100"})
		}
		if t.EndDay != nil && *t.EndDay < t.StartDay {
			violations = append(violations, refund.Violation{TierIndex: i,
				Message: "end day must not precede start day"})
		}
	}

	clamped := ClampTiers(tiers, lengthDays)
	order := sortedIndexes(clamped)

	for pos := 0; pos < len(order)-1; pos++ {
		i, next := order[pos], order[pos+1]
		cur := clamped[i]
		if cur.EndDay == nil {
			violations = append(violations, refund.Violation{TierIndex: i,
				Message: "only the last tier may be open-ended"})
			continue
		}
		if *cur.EndDay >= clamped[next].StartDay {
			violations = append(violations, refund.Violation{TierIndex: i,
				Message: fmt.Sprintf("overlaps tier %d", next)})
		}
	}

	return violations
}

// LintSchedule flags non-fatal schedule smells: gaps between tiers and a
// bounded last tier that stops short of the subscription length. Either can
// leave elapsed days with no applicable tier at redemption time.
func LintSchedule(lengthDays int, tiers []refund.RefundTier) []string {
	if len(tiers) == 0 {
		return nil
	}

	clamped := ClampTiers(tiers, lengthDays)
	order := sortedIndexes(clamped)

	var warnings []string
	if clamped[order[0]].StartDay > 0 {
		warnings = append(warnings, fmt.Sprintf("days 0-%d are not covered by any tier",
			clamped[order[0]].StartDay-1))
	}
	for pos := 0; pos < len(order)-1; pos++ {
		cur, next := clamped[order[pos]], clamped[order[pos+1]]
		if cur.EndDay != nil && *cur.EndDay+1 < next.StartDay {
			warnings = append(warnings, fmt.Sprintf("gap between day %d and day %d",
				*cur.EndDay, next.StartDay))
		}
	}
	last := clamped[order[len(order)-1]]
	if last.EndDay != nil && *last.EndDay < lengthDays {
		warnings = append(warnings, fmt.Sprintf("days after %d are not covered by any tier",
			*last.EndDay))
	}
	return warnings
}

// Resolve finds the tier whose band contains the elapsed-day offset. The
// returned index refers to the input slice.
func Resolve(tiers []refund.RefundTier, elapsedDays int) (refund.RefundTier, int, error) {
	for i, t := range tiers {
		if elapsedDays < t.StartDay {
			continue
		}
		if t.EndDay == nil || elapsedDays <= *t.EndDay {
			return t, i, nil
		}
	}
	return refund.RefundTier{}, -1, ErrNoApplicableTier
}

// RefundAmount computes the refund paid out via the tier's refund source.
func RefundAmount(paidAmount float64, t refund.RefundTier) float64 {
	return paidAmount * t.RefundPercent / 100
}

func sortedIndexes(tiers []refund.RefundTier) []int {
	order := make([]int, len(tiers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tiers[order[a]].StartDay < tiers[order[b]].StartDay
	})
	return order
}
