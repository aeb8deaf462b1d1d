// internal/service/coupon/service.go
package coupon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mealbox-service/internal/cache"
	"mealbox-service/internal/domain/coupon"
	xerrors "mealbox-service/internal/pkg/errors"
	"mealbox-service/internal/repository/postgres"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type catalogNotifier interface {
	CatalogChanged(kind string)
}

type CouponService struct {
	couponRepo *postgres.CouponRepository
	cache      *cache.CouponCache
	notifier   catalogNotifier
	logger     *zap.Logger
}

func NewCouponService(couponRepo *postgres.CouponRepository, couponCache *cache.CouponCache, notifier catalogNotifier, logger *zap.Logger) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		cache:      couponCache,
		notifier:   notifier,
		logger:     logger,
	}
}

// ========== Admin Operations ==========

// CreateCoupon creates a new coupon (admin only).
func (s *CouponService) CreateCoupon(ctx context.Context, req *coupon.CreateCouponRequest) (*coupon.Coupon, error) {
	if err := validateCouponCode(req.Code); err != nil {
		return nil, err
	}
	if err := validateCouponValue(req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		return nil, fmt.Errorf("valid_until must be after valid_from")
	}

	exists, err := s.couponRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check coupon code: %w", err)
	}
	if exists {
		return nil, xerrors.Wrap(xerrors.ErrDuplicateEntry, fmt.Sprintf("coupon code '%s' already exists", strings.ToUpper(req.Code)))
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	c := &coupon.Coupon{
		Code:                       req.Code,
		DiscountType:               req.DiscountType,
		DiscountValue:              req.DiscountValue,
		MinOrderValue:              req.MinOrderValue,
		RequiredPackageIDs:         pq.StringArray(req.RequiredPackageIDs),
		RequireStudentVerification: req.RequireStudentVerification,
		ValidFrom:                  req.ValidFrom,
		ValidUntil:                 req.ValidUntil,
		Active:                     active,
	}

	if err := s.couponRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create coupon", zap.Error(err))
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.Info("coupon created",
		zap.String("coupon_id", c.ID),
		zap.String("code", c.Code),
	)
	s.notifier.CatalogChanged("coupons")

	return c, nil
}

// UpdateCoupon updates a coupon (admin only). The code itself is immutable.
func (s *CouponService) UpdateCoupon(ctx context.Context, id string, req *coupon.UpdateCouponRequest) (*coupon.Coupon, error) {
	c, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DiscountType != nil {
		c.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		c.DiscountValue = *req.DiscountValue
	}
	if req.MinOrderValue != nil {
		c.MinOrderValue = req.MinOrderValue
	}
	if req.RequiredPackageIDs != nil {
		c.RequiredPackageIDs = pq.StringArray(req.RequiredPackageIDs)
	}
	if req.RequireStudentVerification != nil {
		c.RequireStudentVerification = *req.RequireStudentVerification
	}
	if req.ValidFrom != nil {
		c.ValidFrom = req.ValidFrom
	}
	if req.ValidUntil != nil {
		c.ValidUntil = req.ValidUntil
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := validateCouponValue(c.DiscountType, c.DiscountValue); err != nil {
		return nil, err
	}
	if c.ValidFrom != nil && c.ValidUntil != nil && c.ValidUntil.Before(*c.ValidFrom) {
		return nil, fmt.Errorf("valid_until must be after valid_from")
	}

	if err := s.couponRepo.Update(ctx, id, c); err != nil {
		s.logger.Error("failed to update coupon", zap.Error(err))
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	if err := s.cache.Invalidate(ctx, c.Code); err != nil {
		s.logger.Warn("failed to invalidate coupon cache", zap.String("code", c.Code), zap.Error(err))
	}

	s.logger.Info("coupon updated", zap.String("coupon_id", id))
	s.notifier.CatalogChanged("coupons")

	return s.couponRepo.FindByID(ctx, id)
}

// DeleteCoupon removes a coupon (admin only).
func (s *CouponService) DeleteCoupon(ctx context.Context, id string) error {
	c, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.couponRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, c.Code); err != nil {
		s.logger.Warn("failed to invalidate coupon cache", zap.String("code", c.Code), zap.Error(err))
	}

	s.logger.Info("coupon deleted", zap.String("coupon_id", id), zap.String("code", c.Code))
	s.notifier.CatalogChanged("coupons")
	return nil
}

// GetCoupon retrieves a coupon by ID.
func (s *CouponService) GetCoupon(ctx context.Context, id string) (*coupon.Coupon, error) {
	return s.couponRepo.FindByID(ctx, id)
}

// ListCoupons returns every coupon.
func (s *CouponService) ListCoupons(ctx context.Context) (*coupon.CouponListResponse, error) {
	coupons, err := s.couponRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	return &coupon.CouponListResponse{Coupons: coupons, Total: len(coupons)}, nil
}

// ========== Evaluation ==========

// Lookup fetches a coupon by code through the cache.
func (s *CouponService) Lookup(ctx context.Context, code string) (*coupon.Coupon, error) {
	if c, ok := s.cache.Get(ctx, code); ok {
		return c, nil
	}

	c, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, c); err != nil {
		s.logger.Warn("failed to cache coupon", zap.String("code", c.Code), zap.Error(err))
	}

	return c, nil
}

// ValidateCoupon evaluates a code against the given cart state. An unknown
// code is reported as an inactive coupon rather than an error so the caller
// can surface it the same way as any other rejection.
func (s *CouponService) ValidateCoupon(ctx context.Context, req *coupon.ValidateCouponRequest) (*coupon.Evaluation, error) {
	c, err := s.Lookup(ctx, req.Code)
	if err != nil {
		if err == xerrors.ErrNotFound {
			return &coupon.Evaluation{
				Valid:  false,
				Reason: coupon.ReasonInactive,
				Detail: fmt.Sprintf("Coupon %s does not exist", strings.ToUpper(req.Code)),
			}, nil
		}
		return nil, err
	}

	ev := Evaluate(c, EvalInput{
		SelectedPackageIDs: req.SelectedPackageIDs,
		Subtotal:           req.Subtotal,
		TotalBeforeCoupon:  req.TotalBeforeCoupon,
		Eligibility:        req.Eligibility,
	}, time.Now().UTC())

	return &ev, nil
}

// ========== Helpers ==========

func validateCouponCode(code string) error {
	if len(code) < 3 || len(code) > 50 {
		return fmt.Errorf("coupon code must be between 3 and 50 characters")
	}
	for _, char := range code {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') || char == '-' || char == '_') {
			return fmt.Errorf("coupon code can only contain letters, numbers, hyphens, and underscores")
		}
	}
	return nil
}

func validateCouponValue(discountType coupon.DiscountType, value float64) error {
	switch discountType {
	case coupon.DiscountTypePercentage:
		if value < 0 || value > 100 {
			return fmt.Errorf("percentage discount must be between 0 and 100")
		}
	case coupon.DiscountTypeFixed:
		if value < 0 {
			return fmt.Errorf("fixed discount cannot be negative")
		}
	default:
		return fmt.Errorf("invalid discount type: %s", discountType)
	}
	return nil
}
