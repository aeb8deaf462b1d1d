// internal/service/pricing/service.go
package pricing

import (
	"context"
	"fmt"
	"math"

	"mealbox-service/internal/domain/coupon"
	"mealbox-service/internal/domain/discount"
	"mealbox-service/internal/domain/pricing"
	discountsvc "mealbox-service/internal/service/discount"

	"go.uber.org/zap"
)

// Catalog sources are interfaces so quoting can be exercised without a
// database behind it.
type DiscountCatalog interface {
	Catalog(ctx context.Context) ([]discount.DurationDiscount, error)
}

type CouponValidator interface {
	ValidateCoupon(ctx context.Context, req *coupon.ValidateCouponRequest) (*coupon.Evaluation, error)
}

type PricingService struct {
	discounts DiscountCatalog
	coupons   CouponValidator
	logger    *zap.Logger
}

func NewPricingService(discounts DiscountCatalog, coupons CouponValidator, logger *zap.Logger) *PricingService {
	return &PricingService{
		discounts: discounts,
		coupons:   coupons,
		logger:    logger,
	}
}

// Quote prices the cart from scratch: best (or pinned) duration discount,
// student percent, then coupon, stacked in that order. It holds no state
// between calls, so the host can re-quote on every cart change.
func (s *PricingService) Quote(ctx context.Context, req *pricing.QuoteRequest) (*pricing.QuoteResponse, error) {
	cart := req.Cart
	if cart.Subtotal == 0 && cart.PerDayTotal > 0 && cart.DurationDays > 0 {
		cart.Subtotal = cart.PerDayTotal * float64(cart.DurationDays)
	}

	// The student rate is granted by the verified token flags, never by the
	// body cart; a guest editing the payload gets no discount.
	cart.IsStudentEligible = req.StudentEligibility.IsStudent && req.StudentEligibility.VerificationApproved

	catalog, err := s.discounts.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load discount catalog: %w", err)
	}

	index := discountsvc.BuildIndex(catalog, discount.CartContext{
		CategoryID:         cart.CategoryID,
		SelectedPackageIDs: cart.SelectedPackageIDs,
	})

	var applied *pricing.AppliedDiscount
	selection := discountsvc.SelectBest(index[cart.DurationDays], cart.PerDayTotal, cart.DurationDays, req.PinnedDiscountID)
	if selection.Discount != nil && selection.Savings > 0 {
		applied = &pricing.AppliedDiscount{
			Label:  selection.Discount.Label,
			Amount: math.Min(selection.Savings, cart.Subtotal),
		}
	}

	var couponApplied *pricing.CouponDiscount
	var evaluation *coupon.Evaluation
	if req.CouponCode != "" {
		durationAmount := 0.0
		if applied != nil {
			durationAmount = applied.Amount
		}
		totalBeforeCoupon := TotalBeforeCoupon(cart.Subtotal, durationAmount,
			cart.StudentDiscountPercent, cart.IsStudentEligible)

		evaluation, err = s.coupons.ValidateCoupon(ctx, &coupon.ValidateCouponRequest{
			Code:               req.CouponCode,
			SelectedPackageIDs: cart.SelectedPackageIDs,
			Subtotal:           cart.Subtotal,
			TotalBeforeCoupon:  totalBeforeCoupon,
			Eligibility:        req.StudentEligibility,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate coupon: %w", err)
		}

		if evaluation.Valid {
			couponApplied = &pricing.CouponDiscount{
				Code:   req.CouponCode,
				Amount: evaluation.DiscountAmount,
			}
		} else {
			s.logger.Debug("coupon rejected during quote",
				zap.String("code", req.CouponCode),
				zap.String("reason", string(evaluation.Reason)),
			)
		}
	}

	summary := Compose(cart, applied, couponApplied)
	return &pricing.QuoteResponse{Summary: summary, CouponEvaluation: evaluation}, nil
}
