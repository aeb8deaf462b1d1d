// internal/service/coupon/evaluator.go
package coupon

import (
	"fmt"
	"math"
	"time"

	"mealbox-service/internal/domain/coupon"
)

// EvalInput is the cart state a coupon is judged against. TotalBeforeCoupon
// is the already-discounted total (duration and student discounts applied);
// percentage coupons compute against it, not the raw subtotal.
type EvalInput struct {
	SelectedPackageIDs []string
	Subtotal           float64
	TotalBeforeCoupon  float64
	Eligibility        coupon.Eligibility
}

// Evaluate runs the ordered validity checks and computes the discount a
// coupon yields. It short-circuits on the first failing check with that
// check's rejection kind. Pure function of (coupon, input, now).
func Evaluate(c *coupon.Coupon, in EvalInput, now time.Time) coupon.Evaluation {
	if !c.Active {
		return rejected(coupon.ReasonInactive, "This coupon is no longer active")
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return rejected(coupon.ReasonNotStarted,
			fmt.Sprintf("Coupon %s is not valid before %s", c.Code, c.ValidFrom.Format("2 Jan 2006")))
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return rejected(coupon.ReasonExpired,
			fmt.Sprintf("Coupon %s expired on %s", c.Code, c.ValidUntil.Format("2 Jan 2006")))
	}
	if len(in.SelectedPackageIDs) == 0 {
		return rejected(coupon.ReasonEmptyCart, "Add at least one meal package before applying a coupon")
	}
	if in.TotalBeforeCoupon <= 0 {
		return rejected(coupon.ReasonZeroTotal, "Coupon cannot be applied to a zero-value order")
	}
	if c.MinOrderValue != nil && in.Subtotal < *c.MinOrderValue {
		return rejected(coupon.ReasonMinOrderNotMet,
			fmt.Sprintf("Coupon %s requires a minimum order of ₹%.2f", c.Code, *c.MinOrderValue))
	}
	if len(c.RequiredPackageIDs) > 0 {
		missing := missingPackages(c.RequiredPackageIDs, in.SelectedPackageIDs)
		if len(missing) > 0 {
			ev := rejected(coupon.ReasonMissingPackages,
				fmt.Sprintf("Coupon %s requires packages not in your cart", c.Code))
			ev.MissingPackageIDs = missing
			return ev
		}
	}
	if c.RequireStudentVerification {
		if !in.Eligibility.IsStudent || !in.Eligibility.VerificationApproved {
			return rejected(coupon.ReasonStudentOnly,
				fmt.Sprintf("Coupon %s is only available to verified students", c.Code))
		}
	}

	amount := DiscountAmount(c, in.TotalBeforeCoupon)
	if amount <= 0 {
		return rejected(coupon.ReasonNoEffect, "This coupon would not change your total")
	}

	return coupon.Evaluation{
		Valid:          true,
		DiscountAmount: amount,
		Message:        fmt.Sprintf("Coupon %s applied, you save ₹%.2f", c.Code, amount),
	}
}

// DiscountAmount computes the raw discount a coupon takes off the given
// total, clamped to [0, total] and rounded to the paisa.
func DiscountAmount(c *coupon.Coupon, total float64) float64 {
	var amount float64
	switch c.DiscountType {
	case coupon.DiscountTypePercentage:
		amount = total * c.DiscountValue / 100
	case coupon.DiscountTypeFixed:
		amount = c.DiscountValue
	}
	if amount < 0 {
		amount = 0
	}
	if amount > total {
		amount = total
	}
	return math.Round(amount*100) / 100
}

func missingPackages(required, selected []string) []string {
	inCart := make(map[string]bool, len(selected))
	for _, id := range selected {
		inCart[id] = true
	}
	var missing []string
	for _, id := range required {
		if !inCart[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func rejected(reason coupon.RejectionReason, detail string) coupon.Evaluation {
	return coupon.Evaluation{Valid: false, Reason: reason, Detail: detail}
}
