package coupon

import (
	"math"
	"testing"
	"time"

	"mealbox-service/internal/domain/coupon"
)

func fixedCoupon(value float64) *coupon.Coupon {
	return &coupon.Coupon{
		Code:          "SAVE",
		DiscountType:  coupon.DiscountTypeFixed,
		DiscountValue: value,
		Active:        true,
	}
}

func baseInput() EvalInput {
	return EvalInput{
		SelectedPackageIDs: []string{"p1"},
		Subtotal:           1000,
		TotalBeforeCoupon:  900,
	}
}

func TestEvaluateRejectionOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	minOrder := 500.0

	tests := []struct {
		name   string
		mutate func(c *coupon.Coupon, in *EvalInput)
		reason coupon.RejectionReason
	}{
		{
			"inactive",
			func(c *coupon.Coupon, in *EvalInput) { c.Active = false },
			coupon.ReasonInactive,
		},
		{
			"inactive beats expired",
			func(c *coupon.Coupon, in *EvalInput) {
				c.Active = false
				c.ValidUntil = &past
			},
			coupon.ReasonInactive,
		},
		{
			"not started",
			func(c *coupon.Coupon, in *EvalInput) { c.ValidFrom = &future },
			coupon.ReasonNotStarted,
		},
		{
			"expired",
			func(c *coupon.Coupon, in *EvalInput) { c.ValidUntil = &past },
			coupon.ReasonExpired,
		},
		{
			"empty cart",
			func(c *coupon.Coupon, in *EvalInput) { in.SelectedPackageIDs = nil },
			coupon.ReasonEmptyCart,
		},
		{
			"zero total",
			func(c *coupon.Coupon, in *EvalInput) { in.TotalBeforeCoupon = 0 },
			coupon.ReasonZeroTotal,
		},
		{
			"min order judged on subtotal",
			func(c *coupon.Coupon, in *EvalInput) {
				c.MinOrderValue = &minOrder
				in.Subtotal = 499.99
			},
			coupon.ReasonMinOrderNotMet,
		},
		{
			"missing packages",
			func(c *coupon.Coupon, in *EvalInput) { c.RequiredPackageIDs = []string{"p9"} },
			coupon.ReasonMissingPackages,
		},
		{
			"student only",
			func(c *coupon.Coupon, in *EvalInput) { c.RequireStudentVerification = true },
			coupon.ReasonStudentOnly,
		},
		{
			"student pending verification",
			func(c *coupon.Coupon, in *EvalInput) {
				c.RequireStudentVerification = true
				in.Eligibility = coupon.Eligibility{IsStudent: true}
			},
			coupon.ReasonStudentOnly,
		},
		{
			"no effect",
			func(c *coupon.Coupon, in *EvalInput) { c.DiscountValue = 0 },
			coupon.ReasonNoEffect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fixedCoupon(100)
			in := baseInput()
			tt.mutate(c, &in)

			ev := Evaluate(c, in, now)
			if ev.Valid {
				t.Fatal("evaluation unexpectedly valid")
			}
			if ev.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", ev.Reason, tt.reason)
			}
		})
	}
}

func TestEvaluateMinOrderDetail(t *testing.T) {
	minOrder := 500.0
	c := fixedCoupon(100)
	c.MinOrderValue = &minOrder
	in := baseInput()
	in.Subtotal = 300

	ev := Evaluate(c, in, time.Now().UTC())
	want := "Coupon SAVE requires a minimum order of ₹500.00"
	if ev.Detail != want {
		t.Errorf("Detail = %q, want %q", ev.Detail, want)
	}
}

func TestEvaluateMissingPackageIDs(t *testing.T) {
	c := fixedCoupon(100)
	c.RequiredPackageIDs = []string{"p1", "p7", "p9"}
	in := baseInput()

	ev := Evaluate(c, in, time.Now().UTC())
	if len(ev.MissingPackageIDs) != 2 {
		t.Fatalf("MissingPackageIDs = %v, want p7 and p9", ev.MissingPackageIDs)
	}
	if ev.MissingPackageIDs[0] != "p7" || ev.MissingPackageIDs[1] != "p9" {
		t.Errorf("MissingPackageIDs = %v, want [p7 p9]", ev.MissingPackageIDs)
	}
}

func TestEvaluateValid(t *testing.T) {
	c := &coupon.Coupon{
		Code:          "TEN",
		DiscountType:  coupon.DiscountTypePercentage,
		DiscountValue: 10,
		Active:        true,
	}
	in := baseInput()

	ev := Evaluate(c, in, time.Now().UTC())
	if !ev.Valid {
		t.Fatalf("evaluation rejected: %q %q", ev.Reason, ev.Detail)
	}
	if math.Abs(ev.DiscountAmount-90) > 1e-9 {
		t.Errorf("DiscountAmount = %v, want 90 (10%% of discounted total, not subtotal)", ev.DiscountAmount)
	}
	want := "Coupon TEN applied, you save ₹90.00"
	if ev.Message != want {
		t.Errorf("Message = %q, want %q", ev.Message, want)
	}
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name  string
		c     *coupon.Coupon
		total float64
		want  float64
	}{
		{"percentage", &coupon.Coupon{DiscountType: coupon.DiscountTypePercentage, DiscountValue: 15}, 200, 30},
		{"fixed", &coupon.Coupon{DiscountType: coupon.DiscountTypeFixed, DiscountValue: 50}, 200, 50},
		{"fixed clamped to total", &coupon.Coupon{DiscountType: coupon.DiscountTypeFixed, DiscountValue: 500}, 200, 200},
		{"negative value clamps to zero", &coupon.Coupon{DiscountType: coupon.DiscountTypeFixed, DiscountValue: -10}, 200, 0},
		{"rounds to paisa", &coupon.Coupon{DiscountType: coupon.DiscountTypePercentage, DiscountValue: 10}, 99.99, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiscountAmount(tt.c, tt.total); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DiscountAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}
