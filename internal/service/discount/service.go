// internal/service/discount/service.go
package discount

import (
	"context"
	"fmt"

	"mealbox-service/internal/domain/discount"
	"mealbox-service/internal/repository/postgres"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// catalogNotifier lets the service tell connected carts that the discount
// catalog changed so they re-quote.
type catalogNotifier interface {
	CatalogChanged(kind string)
}

type DiscountService struct {
	discountRepo *postgres.DurationDiscountRepository
	notifier     catalogNotifier
	logger       *zap.Logger
}

func NewDiscountService(discountRepo *postgres.DurationDiscountRepository, notifier catalogNotifier, logger *zap.Logger) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// ========== Admin Operations ==========

// CreateDiscount creates a new duration discount (admin only).
func (s *DiscountService) CreateDiscount(ctx context.Context, req *discount.CreateDiscountRequest) (*discount.DurationDiscount, error) {
	if err := validateDiscountValue(req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}
	if err := validateScopeTargets(req.Scope, req.CategoryIDs, req.PackageIDs); err != nil {
		return nil, err
	}

	matchType := req.MatchType
	if matchType == "" {
		matchType = discount.MatchAny
	}

	d := &discount.DurationDiscount{
		Label:         req.Label,
		DayCount:      req.DayCount,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Scope:         req.Scope,
		CategoryIDs:   pq.StringArray(req.CategoryIDs),
		PackageIDs:    pq.StringArray(req.PackageIDs),
		MatchType:     matchType,
	}

	if err := s.discountRepo.Create(ctx, d); err != nil {
		s.logger.Error("failed to create duration discount", zap.Error(err))
		return nil, fmt.Errorf("failed to create duration discount: %w", err)
	}

	s.logger.Info("duration discount created",
		zap.String("discount_id", d.ID),
		zap.String("label", d.Label),
		zap.Float64("day_count", d.DayCount),
	)
	s.notifier.CatalogChanged("discounts")

	return d, nil
}

// UpdateDiscount updates a duration discount (admin only).
func (s *DiscountService) UpdateDiscount(ctx context.Context, id string, req *discount.UpdateDiscountRequest) (*discount.DurationDiscount, error) {
	d, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		d.Label = *req.Label
	}
	if req.DayCount != nil {
		d.DayCount = *req.DayCount
	}
	if req.DiscountType != nil {
		d.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		d.DiscountValue = *req.DiscountValue
	}
	if req.Scope != nil {
		d.Scope = *req.Scope
	}
	if req.CategoryIDs != nil {
		d.CategoryIDs = pq.StringArray(req.CategoryIDs)
	}
	if req.PackageIDs != nil {
		d.PackageIDs = pq.StringArray(req.PackageIDs)
	}
	if req.MatchType != nil {
		d.MatchType = *req.MatchType
	}

	if err := validateDiscountValue(d.DiscountType, d.DiscountValue); err != nil {
		return nil, err
	}
	if err := validateScopeTargets(d.Scope, d.CategoryIDs, d.PackageIDs); err != nil {
		return nil, err
	}

	if err := s.discountRepo.Update(ctx, id, d); err != nil {
		s.logger.Error("failed to update duration discount", zap.Error(err))
		return nil, fmt.Errorf("failed to update duration discount: %w", err)
	}

	s.logger.Info("duration discount updated", zap.String("discount_id", id))
	s.notifier.CatalogChanged("discounts")

	return s.discountRepo.FindByID(ctx, id)
}

// DeleteDiscount removes a duration discount (admin only).
func (s *DiscountService) DeleteDiscount(ctx context.Context, id string) error {
	if err := s.discountRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("duration discount deleted", zap.String("discount_id", id))
	s.notifier.CatalogChanged("discounts")
	return nil
}

// GetDiscount retrieves a single discount.
func (s *DiscountService) GetDiscount(ctx context.Context, id string) (*discount.DurationDiscount, error) {
	return s.discountRepo.FindByID(ctx, id)
}

// ListDiscounts returns the full catalog.
func (s *DiscountService) ListDiscounts(ctx context.Context) (*discount.DiscountListResponse, error) {
	discounts, err := s.discountRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}

	return &discount.DiscountListResponse{Discounts: discounts, Total: len(discounts)}, nil
}

// ========== Catalog source for pricing ==========

// Catalog returns the full discount list for the pricing engine to index.
func (s *DiscountService) Catalog(ctx context.Context) ([]discount.DurationDiscount, error) {
	return s.discountRepo.ListAll(ctx)
}

// ========== Helpers ==========

func validateDiscountValue(discountType discount.DiscountType, value float64) error {
	switch discountType {
	case discount.DiscountTypePercentage:
		if value < 0 || value > 100 {
			return fmt.Errorf("percentage discount must be between 0 and 100")
		}
	case discount.DiscountTypeFixed:
		if value < 0 {
			return fmt.Errorf("fixed discount cannot be negative")
		}
	default:
		return fmt.Errorf("invalid discount type: %s", discountType)
	}
	return nil
}

func validateScopeTargets(scope discount.Scope, categoryIDs, packageIDs []string) error {
	switch scope {
	case discount.ScopeAll:
		return nil
	case discount.ScopeCategories:
		if len(categoryIDs) == 0 {
			return fmt.Errorf("category-scoped discount needs at least one category")
		}
	case discount.ScopePackages:
		if len(packageIDs) == 0 {
			return fmt.Errorf("package-scoped discount needs at least one package")
		}
	default:
		return fmt.Errorf("invalid scope: %s", scope)
	}
	return nil
}
