// internal/domain/refund/dto.go
package refund

type CreateRefundPolicyRequest struct {
	SubscriptionLengthDays int          `json:"subscription_length_days" binding:"required,min=1"`
	Tiers                  []RefundTier `json:"tiers" binding:"required,min=1"`
	AppliesToCategoryIDs   []string     `json:"applies_to_category_ids"`
}

type UpdateRefundPolicyRequest struct {
	SubscriptionLengthDays *int         `json:"subscription_length_days" binding:"omitempty,min=1"`
	Tiers                  []RefundTier `json:"tiers"`
	AppliesToCategoryIDs   []string     `json:"applies_to_category_ids"`
}

type ResolveRefundRequest struct {
	ElapsedDays int     `json:"elapsed_days" binding:"min=0"`
	PaidAmount  float64 `json:"paid_amount" binding:"min=0"`
}

type RefundPolicyListResponse struct {
	Policies []RefundPolicy `json:"policies"`
	Total    int            `json:"total"`
}
