// internal/domain/coupon/entity.go
package coupon

import (
	"time"

	"github.com/lib/pq"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Coupon is a promotional code redeemable against a cart. Codes are unique
// case-insensitively; validity bounds are open-ended when nil.
type Coupon struct {
	ID                         string         `json:"id" db:"id"`
	Code                       string         `json:"code" db:"code"`
	DiscountType               DiscountType   `json:"discount_type" db:"discount_type"`
	DiscountValue              float64        `json:"discount_value" db:"discount_value"`
	MinOrderValue              *float64       `json:"min_order_value,omitempty" db:"min_order_value"`
	RequiredPackageIDs         pq.StringArray `json:"required_package_ids,omitempty" db:"required_package_ids"`
	RequireStudentVerification bool           `json:"require_student_verification" db:"require_student_verification"`
	ValidFrom                  *time.Time     `json:"valid_from,omitempty" db:"valid_from"`
	ValidUntil                 *time.Time     `json:"valid_until,omitempty" db:"valid_until"`
	Active                     bool           `json:"active" db:"active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RejectionReason identifies which validity check a coupon failed. The engine
// reports kinds, not prose; handlers translate them for display.
type RejectionReason string

const (
	ReasonInactive        RejectionReason = "inactive"
	ReasonNotStarted      RejectionReason = "not_started"
	ReasonExpired         RejectionReason = "expired"
	ReasonEmptyCart       RejectionReason = "empty_cart"
	ReasonZeroTotal       RejectionReason = "zero_total"
	ReasonMinOrderNotMet  RejectionReason = "min_order_not_met"
	ReasonMissingPackages RejectionReason = "missing_packages"
	ReasonStudentOnly     RejectionReason = "student_only"
	ReasonNoEffect        RejectionReason = "no_effect"
)

// Eligibility carries the student-verification flags consumed by coupon
// evaluation. Producing them (auth, verification workflow) is the caller's
// concern.
type Eligibility struct {
	IsStudent            bool `json:"is_student"`
	VerificationApproved bool `json:"verification_approved"`
}

// Evaluation is the outcome of evaluating one coupon against one cart.
// Message is a confirmation string set only when Valid; Detail explains a
// rejection in user-facing terms.
type Evaluation struct {
	Valid             bool            `json:"valid"`
	DiscountAmount    float64         `json:"discount_amount"`
	Reason            RejectionReason `json:"reason,omitempty"`
	Detail            string          `json:"detail,omitempty"`
	MissingPackageIDs []string        `json:"missing_package_ids,omitempty"`
	Message           string          `json:"message,omitempty"`
}
