// internal/domain/pricing/dto.go
package pricing

import "mealbox-service/internal/domain/coupon"

// QuoteRequest asks for a full pricing summary of the current cart. The host
// re-sends it on every cart change; quoting is side-effect-free so rapid
// repeat calls are fine.
type QuoteRequest struct {
	Cart               Cart               `json:"cart" binding:"required"`
	CouponCode         string             `json:"coupon_code"`
	PinnedDiscountID   string             `json:"pinned_discount_id"`
	StudentEligibility coupon.Eligibility `json:"student_eligibility"`
}

type QuoteResponse struct {
	Summary          PricingSummary     `json:"summary"`
	CouponEvaluation *coupon.Evaluation `json:"coupon_evaluation,omitempty"`
}
