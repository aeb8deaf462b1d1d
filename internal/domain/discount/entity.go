// internal/domain/discount/entity.go
package discount

import (
	"time"

	"github.com/lib/pq"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Scope string

const (
	ScopeAll        Scope = "all"
	ScopeCategories Scope = "categories"
	ScopePackages   Scope = "packages"
)

type MatchType string

const (
	MatchAll MatchType = "all"
	MatchAny MatchType = "any"
)

// DurationDiscount is a promotional rate tied to a subscription day-count.
// DayCount is stored as entered by the operator; the catalog index normalizes
// it to a positive integer when grouping.
type DurationDiscount struct {
	ID            string         `json:"id" db:"id"`
	Label         string         `json:"label" db:"label"`
	DayCount      float64        `json:"day_count" db:"day_count"`
	DiscountType  DiscountType   `json:"discount_type" db:"discount_type"`
	DiscountValue float64        `json:"discount_value" db:"discount_value"`
	Scope         Scope          `json:"scope" db:"scope"`
	CategoryIDs   pq.StringArray `json:"category_ids,omitempty" db:"category_ids"`
	PackageIDs    pq.StringArray `json:"package_ids,omitempty" db:"package_ids"`
	MatchType     MatchType      `json:"match_type" db:"match_type"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CartContext is the slice of cart state scope matching depends on.
type CartContext struct {
	CategoryID         string
	SelectedPackageIDs []string
}

// Selection is the outcome of best-discount selection for one day-count.
type Selection struct {
	Discount *DurationDiscount `json:"discount,omitempty"`
	Savings  float64           `json:"savings"`
	Pinned   bool              `json:"pinned"`
}
