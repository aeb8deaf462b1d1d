package pricing

import (
	"math"
	"testing"

	"mealbox-service/internal/domain/pricing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTotalBeforeCoupon(t *testing.T) {
	tests := []struct {
		name            string
		subtotal        float64
		durationAmount  float64
		studentPercent  float64
		studentEligible bool
		want            float64
	}{
		{"no discounts", 3000, 0, 0, false, 3000},
		{"duration only", 3000, 300, 0, false, 2700},
		{"student on post-duration total", 3000, 300, 10, true, 2430},
		{"student not eligible", 3000, 300, 10, false, 2700},
		{"duration exceeding subtotal floors at zero", 3000, 5000, 10, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalBeforeCoupon(tt.subtotal, tt.durationAmount, tt.studentPercent, tt.studentEligible)
			if !almostEqual(got, tt.want) {
				t.Errorf("TotalBeforeCoupon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeStacksInOrder(t *testing.T) {
	cart := pricing.Cart{
		Subtotal:               3000,
		IsStudentEligible:      true,
		StudentDiscountPercent: 10,
	}
	duration := &pricing.AppliedDiscount{Label: "monthly", Amount: 300}
	coupon := &pricing.CouponDiscount{Code: "SAVE100", Amount: 100}

	summary := Compose(cart, duration, coupon)

	// 3000 - 300 = 2700; student 10% of 2700 = 270 -> 2430; coupon -> 2330.
	if !almostEqual(summary.Total, 2330) {
		t.Errorf("Total = %v, want 2330", summary.Total)
	}
	if summary.StudentDiscount == nil || !almostEqual(summary.StudentDiscount.Amount, 270) {
		t.Errorf("StudentDiscount = %+v, want amount 270 (computed on post-duration total)", summary.StudentDiscount)
	}
	if summary.DurationDiscount == nil || summary.DurationDiscount.Label != "monthly" {
		t.Errorf("DurationDiscount = %+v, want monthly", summary.DurationDiscount)
	}
	if summary.CouponDiscount == nil || summary.CouponDiscount.Code != "SAVE100" {
		t.Errorf("CouponDiscount = %+v, want SAVE100", summary.CouponDiscount)
	}
	// (3000-2330)/3000 = 22.33% after paisa rounding.
	if !almostEqual(summary.DiscountPercent, 22.33) {
		t.Errorf("DiscountPercent = %v, want 22.33", summary.DiscountPercent)
	}
}

func TestComposeOrderingIsNotCommutative(t *testing.T) {
	cart := pricing.Cart{
		Subtotal:               1000,
		IsStudentEligible:      true,
		StudentDiscountPercent: 20,
	}
	duration := &pricing.AppliedDiscount{Label: "weekly", Amount: 500}

	summary := Compose(cart, duration, nil)

	// Student percent off the remaining 500, not the raw subtotal: were the
	// order reversed the total would be 300, not 400.
	if !almostEqual(summary.Total, 400) {
		t.Errorf("Total = %v, want 400", summary.Total)
	}
}

func TestComposeClampsAtZero(t *testing.T) {
	cart := pricing.Cart{Subtotal: 100}
	duration := &pricing.AppliedDiscount{Label: "big", Amount: 80}
	coupon := &pricing.CouponDiscount{Code: "HUGE", Amount: 50}

	summary := Compose(cart, duration, coupon)
	if summary.Total != 0 {
		t.Errorf("Total = %v, want clamp to 0", summary.Total)
	}
	if summary.DiscountPercent != 100 {
		t.Errorf("DiscountPercent = %v, want 100", summary.DiscountPercent)
	}
}

func TestComposeEmptyCart(t *testing.T) {
	summary := Compose(pricing.Cart{}, nil, nil)
	if summary.Total != 0 || summary.DiscountPercent != 0 {
		t.Errorf("summary = %+v, want zero-valued", summary)
	}
	if summary.DurationDiscount != nil || summary.StudentDiscount != nil || summary.CouponDiscount != nil {
		t.Error("no discounts should be attached to an empty cart")
	}
}
