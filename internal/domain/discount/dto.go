// internal/domain/discount/dto.go
package discount

type CreateDiscountRequest struct {
	Label         string       `json:"label" binding:"required,max=255"`
	DayCount      float64      `json:"day_count" binding:"required,gt=0"`
	DiscountType  DiscountType `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue float64      `json:"discount_value" binding:"required,min=0"`
	Scope         Scope        `json:"scope" binding:"required,oneof=all categories packages"`
	CategoryIDs   []string     `json:"category_ids"`
	PackageIDs    []string     `json:"package_ids"`
	MatchType     MatchType    `json:"match_type" binding:"omitempty,oneof=all any"`
}

type UpdateDiscountRequest struct {
	Label         *string       `json:"label" binding:"omitempty,max=255"`
	DayCount      *float64      `json:"day_count" binding:"omitempty,gt=0"`
	DiscountType  *DiscountType `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue *float64      `json:"discount_value" binding:"omitempty,min=0"`
	Scope         *Scope        `json:"scope" binding:"omitempty,oneof=all categories packages"`
	CategoryIDs   []string      `json:"category_ids"`
	PackageIDs    []string      `json:"package_ids"`
	MatchType     *MatchType    `json:"match_type" binding:"omitempty,oneof=all any"`
}

type DiscountListResponse struct {
	Discounts []DurationDiscount `json:"discounts"`
	Total     int                `json:"total"`
}
