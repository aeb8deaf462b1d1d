// internal/repository/postgres/duration_discount_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"mealbox-service/internal/domain/discount"
	xerrors "mealbox-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type DurationDiscountRepository struct {
	db *pgxpool.Pool
}

func NewDurationDiscountRepository(db *pgxpool.Pool) *DurationDiscountRepository {
	return &DurationDiscountRepository{db: db}
}

// Create inserts a new duration discount, assigning it a ULID.
func (r *DurationDiscountRepository) Create(ctx context.Context, d *discount.DurationDiscount) error {
	d.ID = ulid.Make().String()

	query := `
		INSERT INTO duration_discounts (
			id, label, day_count, discount_type, discount_value,
			scope, category_ids, package_ids, match_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		d.ID, d.Label, d.DayCount, d.DiscountType, d.DiscountValue,
		d.Scope, d.CategoryIDs, d.PackageIDs, d.MatchType,
	).Scan(&d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create duration discount: %w", err)
	}

	return nil
}

// FindByID retrieves a duration discount by ID.
func (r *DurationDiscountRepository) FindByID(ctx context.Context, id string) (*discount.DurationDiscount, error) {
	query := `
		SELECT id, label, day_count, discount_type, discount_value,
		       scope, category_ids, package_ids, match_type,
		       created_at, updated_at
		FROM duration_discounts
		WHERE id = $1
	`

	var d discount.DurationDiscount
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Label, &d.DayCount, &d.DiscountType, &d.DiscountValue,
		&d.Scope, &d.CategoryIDs, &d.PackageIDs, &d.MatchType,
		&d.CreatedAt, &d.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find duration discount: %w", err)
	}

	return &d, nil
}

// ListAll returns the full discount catalog, newest first.
func (r *DurationDiscountRepository) ListAll(ctx context.Context) ([]discount.DurationDiscount, error) {
	query := `
		SELECT id, label, day_count, discount_type, discount_value,
		       scope, category_ids, package_ids, match_type,
		       created_at, updated_at
		FROM duration_discounts
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list duration discounts: %w", err)
	}
	defer rows.Close()

	var discounts []discount.DurationDiscount
	for rows.Next() {
		var d discount.DurationDiscount
		if err := rows.Scan(
			&d.ID, &d.Label, &d.DayCount, &d.DiscountType, &d.DiscountValue,
			&d.Scope, &d.CategoryIDs, &d.PackageIDs, &d.MatchType,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan duration discount: %w", err)
		}
		discounts = append(discounts, d)
	}

	return discounts, rows.Err()
}

// Update replaces the mutable fields of a discount.
func (r *DurationDiscountRepository) Update(ctx context.Context, id string, d *discount.DurationDiscount) error {
	query := `
		UPDATE duration_discounts
		SET label = $2, day_count = $3, discount_type = $4, discount_value = $5,
		    scope = $6, category_ids = $7, package_ids = $8, match_type = $9,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		id, d.Label, d.DayCount, d.DiscountType, d.DiscountValue,
		d.Scope, d.CategoryIDs, d.PackageIDs, d.MatchType,
	)
	if err != nil {
		return fmt.Errorf("failed to update duration discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a discount from the catalog.
func (r *DurationDiscountRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM duration_discounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete duration discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
