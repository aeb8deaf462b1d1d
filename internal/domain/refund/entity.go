// internal/domain/refund/entity.go
package refund

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

type RefundSource string

const (
	RefundSourceCoins RefundSource = "coins"
)

// RefundTier maps a band of elapsed subscription days to a refund percentage.
// EndDay is inclusive; nil means open-ended, which is only legal on the last
// tier of a schedule.
type RefundTier struct {
	StartDay      int          `json:"start_day"`
	EndDay        *int         `json:"end_day,omitempty"`
	RefundPercent float64      `json:"refund_percent"`
	RefundSource  RefundSource `json:"refund_source"`
}

// RefundPolicy is an operator-authored tier schedule for one subscription
// length. Schedules are validated once at save time and trusted afterwards.
type RefundPolicy struct {
	ID                     string         `json:"id" db:"id"`
	SubscriptionLengthDays int            `json:"subscription_length_days" db:"subscription_length_days"`
	Tiers                  []RefundTier   `json:"tiers" db:"tiers"`
	AppliesToCategoryIDs   pq.StringArray `json:"applies_to_category_ids,omitempty" db:"applies_to_category_ids"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Violation is one authoring-time schedule defect. TierIndex is -1 for
// schedule-level problems.
type Violation struct {
	TierIndex int    `json:"tier_index"`
	Message   string `json:"message"`
}

func (v Violation) String() string {
	if v.TierIndex < 0 {
		return v.Message
	}
	return fmt.Sprintf("tier %d: %s", v.TierIndex, v.Message)
}

// Resolution is the redemption-time outcome for an elapsed-day offset.
type Resolution struct {
	TierIndex     int          `json:"tier_index"`
	RefundPercent float64      `json:"refund_percent"`
	RefundSource  RefundSource `json:"refund_source"`
	RefundAmount  float64      `json:"refund_amount"`
}
