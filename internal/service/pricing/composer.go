// internal/service/pricing/composer.go
package pricing

import (
	"math"

	"mealbox-service/internal/domain/pricing"
)

// Discount stacking order is a business decision and is not commutative:
// duration discount first, student percent on what remains, coupon on what
// remains after that. Reordering changes totals.

// TotalAfterDuration subtracts the selected duration discount from the
// subtotal, floored at zero.
func TotalAfterDuration(subtotal float64, durationAmount float64) float64 {
	return clampMoney(subtotal - durationAmount)
}

// StudentAmount computes the student discount taken off the post-duration
// total, not the original subtotal.
func StudentAmount(afterDuration float64, percent float64) float64 {
	if percent <= 0 {
		return 0
	}
	return roundMoney(afterDuration * percent / 100)
}

// TotalBeforeCoupon is the figure coupon evaluation operates on: subtotal
// with duration and student discounts already applied.
func TotalBeforeCoupon(subtotal float64, durationAmount float64, studentPercent float64, studentEligible bool) float64 {
	afterDuration := TotalAfterDuration(subtotal, durationAmount)
	if !studentEligible {
		return afterDuration
	}
	return clampMoney(afterDuration - StudentAmount(afterDuration, studentPercent))
}

// Compose assembles the final pricing summary. The coupon discount, when
// present, must have been computed against TotalBeforeCoupon by the caller.
func Compose(cart pricing.Cart, duration *pricing.AppliedDiscount, coupon *pricing.CouponDiscount) pricing.PricingSummary {
	summary := pricing.PricingSummary{Subtotal: cart.Subtotal}

	total := cart.Subtotal
	if duration != nil {
		summary.DurationDiscount = duration
		total = TotalAfterDuration(total, duration.Amount)
	}
	if cart.IsStudentEligible && cart.StudentDiscountPercent > 0 {
		amount := StudentAmount(total, cart.StudentDiscountPercent)
		summary.StudentDiscount = &pricing.StudentDiscount{
			Percent: cart.StudentDiscountPercent,
			Amount:  amount,
		}
		total = clampMoney(total - amount)
	}
	if coupon != nil && coupon.Amount > 0 {
		summary.CouponDiscount = coupon
		total = clampMoney(total - coupon.Amount)
	}

	summary.Total = total
	if cart.Subtotal > 0 {
		summary.DiscountPercent = roundMoney((cart.Subtotal - total) / cart.Subtotal * 100)
	}
	return summary
}

func clampMoney(v float64) float64 {
	if v < 0 {
		return 0
	}
	return roundMoney(v)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
