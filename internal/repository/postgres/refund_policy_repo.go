// internal/repository/postgres/refund_policy_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mealbox-service/internal/domain/refund"
	xerrors "mealbox-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type RefundPolicyRepository struct {
	db *pgxpool.Pool
}

func NewRefundPolicyRepository(db *pgxpool.Pool) *RefundPolicyRepository {
	return &RefundPolicyRepository{db: db}
}

// Create inserts a refund policy. Tier schedules are stored as JSONB; the
// service layer validates them before they reach this point.
func (r *RefundPolicyRepository) Create(ctx context.Context, p *refund.RefundPolicy) error {
	p.ID = ulid.Make().String()

	tiersJSON, err := json.Marshal(p.Tiers)
	if err != nil {
		return fmt.Errorf("failed to marshal tiers: %w", err)
	}

	query := `
		INSERT INTO refund_policies (
			id, subscription_length_days, tiers, applies_to_category_ids
		) VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(
		ctx, query,
		p.ID, p.SubscriptionLengthDays, tiersJSON, p.AppliesToCategoryIDs,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create refund policy: %w", err)
	}

	return nil
}

// FindByID retrieves a refund policy by ID.
func (r *RefundPolicyRepository) FindByID(ctx context.Context, id string) (*refund.RefundPolicy, error) {
	query := `
		SELECT id, subscription_length_days, tiers, applies_to_category_ids,
		       created_at, updated_at
		FROM refund_policies
		WHERE id = $1
	`

	var p refund.RefundPolicy
	var tiersJSON []byte

	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SubscriptionLengthDays, &tiersJSON, &p.AppliesToCategoryIDs,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find refund policy: %w", err)
	}

	if err := json.Unmarshal(tiersJSON, &p.Tiers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tiers: %w", err)
	}

	return &p, nil
}

// ListAll returns every refund policy, shortest subscription first.
func (r *RefundPolicyRepository) ListAll(ctx context.Context) ([]refund.RefundPolicy, error) {
	query := `
		SELECT id, subscription_length_days, tiers, applies_to_category_ids,
		       created_at, updated_at
		FROM refund_policies
		ORDER BY subscription_length_days ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list refund policies: %w", err)
	}
	defer rows.Close()

	var policies []refund.RefundPolicy
	for rows.Next() {
		var p refund.RefundPolicy
		var tiersJSON []byte
		if err := rows.Scan(
			&p.ID, &p.SubscriptionLengthDays, &tiersJSON, &p.AppliesToCategoryIDs,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan refund policy: %w", err)
		}
		if err := json.Unmarshal(tiersJSON, &p.Tiers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tiers: %w", err)
		}
		policies = append(policies, p)
	}

	return policies, rows.Err()
}

// Update replaces a policy's schedule and targeting.
func (r *RefundPolicyRepository) Update(ctx context.Context, id string, p *refund.RefundPolicy) error {
	tiersJSON, err := json.Marshal(p.Tiers)
	if err != nil {
		return fmt.Errorf("failed to marshal tiers: %w", err)
	}

	query := `
		UPDATE refund_policies
		SET subscription_length_days = $2, tiers = $3,
		    applies_to_category_ids = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, p.SubscriptionLengthDays, tiersJSON, p.AppliesToCategoryIDs)
	if err != nil {
		return fmt.Errorf("failed to update refund policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a refund policy.
func (r *RefundPolicyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM refund_policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete refund policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
