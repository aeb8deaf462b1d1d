// internal/service/refund/service.go
package refund

import (
	"context"
	"fmt"

	"mealbox-service/internal/domain/refund"
	"mealbox-service/internal/repository/postgres"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type catalogNotifier interface {
	CatalogChanged(kind string)
}

// ScheduleInvalidError blocks saving a refund policy whose tier schedule
// fails authoring validation. It carries the full violation list.
type ScheduleInvalidError struct {
	Violations []refund.Violation
}

func (e *ScheduleInvalidError) Error() string {
	return fmt.Sprintf("tier schedule invalid: %d violation(s)", len(e.Violations))
}

type RefundService struct {
	policyRepo *postgres.RefundPolicyRepository
	notifier   catalogNotifier
	logger     *zap.Logger
}

func NewRefundService(policyRepo *postgres.RefundPolicyRepository, notifier catalogNotifier, logger *zap.Logger) *RefundService {
	return &RefundService{
		policyRepo: policyRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// ========== Admin Operations ==========

// CreatePolicy validates and saves a refund policy. Validation failures
// reject the write with every violation listed; lint warnings (gaps) do not
// block saving and are returned alongside the policy.
func (s *RefundService) CreatePolicy(ctx context.Context, req *refund.CreateRefundPolicyRequest) (*refund.RefundPolicy, []string, error) {
	if violations := ValidateSchedule(req.SubscriptionLengthDays, req.Tiers); len(violations) > 0 {
		return nil, nil, &ScheduleInvalidError{Violations: violations}
	}

	p := &refund.RefundPolicy{
		SubscriptionLengthDays: req.SubscriptionLengthDays,
		Tiers:                  ClampTiers(req.Tiers, req.SubscriptionLengthDays),
		AppliesToCategoryIDs:   pq.StringArray(req.AppliesToCategoryIDs),
	}

	if err := s.policyRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create refund policy", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to create refund policy: %w", err)
	}

	warnings := LintSchedule(p.SubscriptionLengthDays, p.Tiers)
	if len(warnings) > 0 {
		s.logger.Warn("refund policy saved with schedule warnings",
			zap.String("policy_id", p.ID),
			zap.Strings("warnings", warnings),
		)
	}

	s.logger.Info("refund policy created",
		zap.String("policy_id", p.ID),
		zap.Int("subscription_length_days", p.SubscriptionLengthDays),
		zap.Int("tiers", len(p.Tiers)),
	)
	s.notifier.CatalogChanged("refund_policies")

	return p, warnings, nil
}

// UpdatePolicy validates and replaces a refund policy's schedule.
func (s *RefundService) UpdatePolicy(ctx context.Context, id string, req *refund.UpdateRefundPolicyRequest) (*refund.RefundPolicy, []string, error) {
	p, err := s.policyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if req.SubscriptionLengthDays != nil {
		p.SubscriptionLengthDays = *req.SubscriptionLengthDays
	}
	if req.Tiers != nil {
		p.Tiers = req.Tiers
	}
	if req.AppliesToCategoryIDs != nil {
		p.AppliesToCategoryIDs = pq.StringArray(req.AppliesToCategoryIDs)
	}

	if violations := ValidateSchedule(p.SubscriptionLengthDays, p.Tiers); len(violations) > 0 {
		return nil, nil, &ScheduleInvalidError{Violations: violations}
	}
	p.Tiers = ClampTiers(p.Tiers, p.SubscriptionLengthDays)

	if err := s.policyRepo.Update(ctx, id, p); err != nil {
		s.logger.Error("failed to update refund policy", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to update refund policy: %w", err)
	}

	warnings := LintSchedule(p.SubscriptionLengthDays, p.Tiers)
	s.logger.Info("refund policy updated", zap.String("policy_id", id))
	s.notifier.CatalogChanged("refund_policies")

	return p, warnings, nil
}

// DeletePolicy removes a refund policy.
func (s *RefundService) DeletePolicy(ctx context.Context, id string) error {
	if err := s.policyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("refund policy deleted", zap.String("policy_id", id))
	s.notifier.CatalogChanged("refund_policies")
	return nil
}

// GetPolicy retrieves a refund policy.
func (s *RefundService) GetPolicy(ctx context.Context, id string) (*refund.RefundPolicy, error) {
	return s.policyRepo.FindByID(ctx, id)
}

// ListPolicies returns every refund policy.
func (s *RefundService) ListPolicies(ctx context.Context) (*refund.RefundPolicyListResponse, error) {
	policies, err := s.policyRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list refund policies: %w", err)
	}

	return &refund.RefundPolicyListResponse{Policies: policies, Total: len(policies)}, nil
}

// ========== Redemption ==========

// ResolveRefund resolves the refund owed for a cancellation after the given
// elapsed days. ErrNoApplicableTier means the persisted schedule has a gap
// and must be surfaced to the operator, not defaulted to zero.
func (s *RefundService) ResolveRefund(ctx context.Context, policyID string, req *refund.ResolveRefundRequest) (*refund.Resolution, error) {
	p, err := s.policyRepo.FindByID(ctx, policyID)
	if err != nil {
		return nil, err
	}

	tier, idx, err := Resolve(p.Tiers, req.ElapsedDays)
	if err != nil {
		s.logger.Error("refund schedule gap hit at redemption",
			zap.String("policy_id", policyID),
			zap.Int("elapsed_days", req.ElapsedDays),
		)
		return nil, err
	}

	return &refund.Resolution{
		TierIndex:     idx,
		RefundPercent: tier.RefundPercent,
		RefundSource:  tier.RefundSource,
		RefundAmount:  RefundAmount(req.PaidAmount, tier),
	}, nil
}
