// internal/domain/coupon/dto.go
package coupon

import "time"

type CreateCouponRequest struct {
	Code                       string       `json:"code" binding:"required,max=50"`
	DiscountType               DiscountType `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue              float64      `json:"discount_value" binding:"required,min=0"`
	MinOrderValue              *float64     `json:"min_order_value" binding:"omitempty,min=0"`
	RequiredPackageIDs         []string     `json:"required_package_ids"`
	RequireStudentVerification bool         `json:"require_student_verification"`
	ValidFrom                  *time.Time   `json:"valid_from"`
	ValidUntil                 *time.Time   `json:"valid_until"`
	Active                     *bool        `json:"active"`
}

type UpdateCouponRequest struct {
	DiscountType               *DiscountType `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue              *float64      `json:"discount_value" binding:"omitempty,min=0"`
	MinOrderValue              *float64      `json:"min_order_value" binding:"omitempty,min=0"`
	RequiredPackageIDs         []string      `json:"required_package_ids"`
	RequireStudentVerification *bool         `json:"require_student_verification"`
	ValidFrom                  *time.Time    `json:"valid_from"`
	ValidUntil                 *time.Time    `json:"valid_until"`
	Active                     *bool         `json:"active"`
}

// ValidateCouponRequest re-runs evaluation for a cart; the host calls this on
// every cart change so a previously applied code is dropped with its reason
// as soon as it stops qualifying.
type ValidateCouponRequest struct {
	Code               string      `json:"code" binding:"required"`
	SelectedPackageIDs []string    `json:"selected_package_ids"`
	Subtotal           float64     `json:"subtotal" binding:"min=0"`
	TotalBeforeCoupon  float64     `json:"total_before_coupon" binding:"min=0"`
	Eligibility        Eligibility `json:"eligibility"`
}

type CouponListResponse struct {
	Coupons []Coupon `json:"coupons"`
	Total   int      `json:"total"`
}
