package pricing

import (
	"context"
	"math"
	"testing"
	"time"

	"mealbox-service/internal/domain/coupon"
	"mealbox-service/internal/domain/discount"
	"mealbox-service/internal/domain/pricing"
	couponsvc "mealbox-service/internal/service/coupon"

	"go.uber.org/zap"
)

type stubCatalog struct {
	discounts []discount.DurationDiscount
}

func (s *stubCatalog) Catalog(ctx context.Context) ([]discount.DurationDiscount, error) {
	return s.discounts, nil
}

type stubValidator struct {
	coupons map[string]*coupon.Coupon
	lastReq *coupon.ValidateCouponRequest
}

func (s *stubValidator) ValidateCoupon(ctx context.Context, req *coupon.ValidateCouponRequest) (*coupon.Evaluation, error) {
	s.lastReq = req
	c, ok := s.coupons[req.Code]
	if !ok {
		return &coupon.Evaluation{Valid: false, Reason: coupon.ReasonInactive}, nil
	}
	ev := couponsvc.Evaluate(c, couponsvc.EvalInput{
		SelectedPackageIDs: req.SelectedPackageIDs,
		Subtotal:           req.Subtotal,
		TotalBeforeCoupon:  req.TotalBeforeCoupon,
		Eligibility:        req.Eligibility,
	}, time.Now().UTC())
	return &ev, nil
}

func newTestService(discounts []discount.DurationDiscount, coupons map[string]*coupon.Coupon) (*PricingService, *stubValidator) {
	validator := &stubValidator{coupons: coupons}
	svc := NewPricingService(&stubCatalog{discounts: discounts}, validator, zap.NewNop())
	return svc, validator
}

func testCart() pricing.Cart {
	return pricing.Cart{
		CategoryID:         "veg",
		SelectedPackageIDs: []string{"p1"},
		DurationDays:       30,
		PerDayTotal:        100,
		Subtotal:           3000,
	}
}

func TestQuoteAppliesBestDurationDiscount(t *testing.T) {
	svc, _ := newTestService([]discount.DurationDiscount{
		{ID: "d1", Label: "monthly 10%", DayCount: 30, DiscountType: discount.DiscountTypePercentage, DiscountValue: 10, Scope: discount.ScopeAll},
		{ID: "d2", Label: "flat 100", DayCount: 30, DiscountType: discount.DiscountTypeFixed, DiscountValue: 100, Scope: discount.ScopeAll},
		{ID: "d3", Label: "weekly", DayCount: 7, DiscountType: discount.DiscountTypePercentage, DiscountValue: 50, Scope: discount.ScopeAll},
	}, nil)

	resp, err := svc.Quote(context.Background(), &pricing.QuoteRequest{Cart: testCart()})
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}

	if resp.Summary.DurationDiscount == nil {
		t.Fatal("no duration discount applied")
	}
	if resp.Summary.DurationDiscount.Label != "monthly 10%" {
		t.Errorf("applied %q, want the 10%% discount", resp.Summary.DurationDiscount.Label)
	}
	if math.Abs(resp.Summary.Total-2700) > 1e-9 {
		t.Errorf("Total = %v, want 2700", resp.Summary.Total)
	}
}

func TestQuoteHonorsPin(t *testing.T) {
	svc, _ := newTestService([]discount.DurationDiscount{
		{ID: "d1", Label: "best", DayCount: 30, DiscountType: discount.DiscountTypePercentage, DiscountValue: 20, Scope: discount.ScopeAll},
		{ID: "d2", Label: "pinned", DayCount: 30, DiscountType: discount.DiscountTypePercentage, DiscountValue: 5, Scope: discount.ScopeAll},
	}, nil)

	resp, err := svc.Quote(context.Background(), &pricing.QuoteRequest{
		Cart:             testCart(),
		PinnedDiscountID: "d2",
	})
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if resp.Summary.DurationDiscount == nil || resp.Summary.DurationDiscount.Label != "pinned" {
		t.Errorf("applied %+v, want the pinned discount", resp.Summary.DurationDiscount)
	}
}

func TestQuoteCouponSeesDiscountedTotal(t *testing.T) {
	svc, validator := newTestService(
		[]discount.DurationDiscount{
			{ID: "d1", Label: "monthly 10%", DayCount: 30, DiscountType: discount.DiscountTypePercentage, DiscountValue: 10, Scope: discount.ScopeAll},
		},
		map[string]*coupon.Coupon{
			"TEN": {Code: "TEN", DiscountType: coupon.DiscountTypePercentage, DiscountValue: 10, Active: true},
		},
	)

	cart := testCart()
	cart.IsStudentEligible = true
	cart.StudentDiscountPercent = 10

	resp, err := svc.Quote(context.Background(), &pricing.QuoteRequest{
		Cart:               cart,
		CouponCode:         "TEN",
		StudentEligibility: coupon.Eligibility{IsStudent: true, VerificationApproved: true},
	})
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}

	// 3000 -10% duration = 2700; -10% student = 2430; coupon sees 2430.
	if math.Abs(validator.lastReq.TotalBeforeCoupon-2430) > 1e-9 {
		t.Errorf("coupon evaluated against %v, want 2430", validator.lastReq.TotalBeforeCoupon)
	}
	if resp.CouponEvaluation == nil || !resp.CouponEvaluation.Valid {
		t.Fatalf("coupon not applied: %+v", resp.CouponEvaluation)
	}
	if math.Abs(resp.Summary.Total-2187) > 1e-9 {
		t.Errorf("Total = %v, want 2187", resp.Summary.Total)
	}
}

func TestQuoteRejectedCouponLeavesSummaryIntact(t *testing.T) {
	svc, _ := newTestService(nil, map[string]*coupon.Coupon{
		"DEAD": {Code: "DEAD", DiscountType: coupon.DiscountTypeFixed, DiscountValue: 100, Active: false},
	})

	resp, err := svc.Quote(context.Background(), &pricing.QuoteRequest{
		Cart:       testCart(),
		CouponCode: "DEAD",
	})
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if resp.CouponEvaluation == nil || resp.CouponEvaluation.Valid {
		t.Fatal("inactive coupon must be rejected")
	}
	if resp.CouponEvaluation.Reason != coupon.ReasonInactive {
		t.Errorf("Reason = %q, want %q", resp.CouponEvaluation.Reason, coupon.ReasonInactive)
	}
	if resp.Summary.CouponDiscount != nil {
		t.Error("rejected coupon must not reach the summary")
	}
	if math.Abs(resp.Summary.Total-3000) > 1e-9 {
		t.Errorf("Total = %v, want undiscounted 3000", resp.Summary.Total)
	}
}

func TestQuoteDerivesSubtotal(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	cart := testCart()
	cart.Subtotal = 0

	resp, err := svc.Quote(context.Background(), &pricing.QuoteRequest{Cart: cart})
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if math.Abs(resp.Summary.Subtotal-3000) > 1e-9 {
		t.Errorf("Subtotal = %v, want 3000 derived from per-day total", resp.Summary.Subtotal)
	}
}

func TestQuoteStudentRateRequiresVerifiedToken(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	cart := testCart()
	cart.IsStudentEligible = true
	cart.StudentDiscountPercent = 50

	// Body flags alone claim the rate; without verified token flags the
	// quote stays at full price.
	resp, err := svc.Quote(context.Background(), &pricing.QuoteRequest{Cart: cart})
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if resp.Summary.StudentDiscount != nil {
		t.Errorf("StudentDiscount = %+v granted without a verified token", resp.Summary.StudentDiscount)
	}
	if math.Abs(resp.Summary.Total-3000) > 1e-9 {
		t.Errorf("Total = %v, want full 3000", resp.Summary.Total)
	}

	// A student token without approved verification is still no.
	resp, err = svc.Quote(context.Background(), &pricing.QuoteRequest{
		Cart:               cart,
		StudentEligibility: coupon.Eligibility{IsStudent: true},
	})
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if resp.Summary.StudentDiscount != nil {
		t.Error("StudentDiscount granted on an unverified student token")
	}

	// Verified student token unlocks the rate.
	resp, err = svc.Quote(context.Background(), &pricing.QuoteRequest{
		Cart:               cart,
		StudentEligibility: coupon.Eligibility{IsStudent: true, VerificationApproved: true},
	})
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if resp.Summary.StudentDiscount == nil || math.Abs(resp.Summary.StudentDiscount.Amount-1500) > 1e-9 {
		t.Errorf("StudentDiscount = %+v, want 1500 off", resp.Summary.StudentDiscount)
	}
}

func TestQuoteScopedDiscountSkipsOtherCategory(t *testing.T) {
	svc, _ := newTestService([]discount.DurationDiscount{
		{ID: "d1", Label: "nonveg only", DayCount: 30, DiscountType: discount.DiscountTypePercentage, DiscountValue: 10,
			Scope: discount.ScopeCategories, CategoryIDs: []string{"nonveg"}},
	}, nil)

	resp, err := svc.Quote(context.Background(), &pricing.QuoteRequest{Cart: testCart()})
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if resp.Summary.DurationDiscount != nil {
		t.Errorf("applied %+v to an out-of-scope cart", resp.Summary.DurationDiscount)
	}
}
