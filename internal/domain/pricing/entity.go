// internal/domain/pricing/entity.go
package pricing

// Cart is the transient engine input: what the customer has built so far.
// Subtotal is PerDayTotal x DurationDays as computed by the caller; the
// engine treats it as authoritative.
type Cart struct {
	CategoryID             string   `json:"category_id"`
	SelectedPackageIDs     []string `json:"selected_package_ids"`
	DurationDays           int      `json:"duration_days"`
	PerDayTotal            float64  `json:"per_day_total"`
	Subtotal               float64  `json:"subtotal"`
	IsStudentEligible      bool     `json:"is_student_eligible"`
	StudentDiscountPercent float64  `json:"student_discount_percent"`
}

type AppliedDiscount struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type StudentDiscount struct {
	Percent float64 `json:"percent"`
	Amount  float64 `json:"amount"`
}

type CouponDiscount struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// PricingSummary is the engine output: discounts applied in the fixed order
// duration, then student, then coupon, with the total floored at zero.
// DiscountPercent is display-only.
type PricingSummary struct {
	Subtotal         float64          `json:"subtotal"`
	DurationDiscount *AppliedDiscount `json:"duration_discount,omitempty"`
	StudentDiscount  *StudentDiscount `json:"student_discount,omitempty"`
	CouponDiscount   *CouponDiscount  `json:"coupon_discount,omitempty"`
	Total            float64          `json:"total"`
	DiscountPercent  float64          `json:"discount_percent"`
}
