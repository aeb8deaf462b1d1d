// internal/repository/postgres/coupon_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mealbox-service/internal/domain/coupon"
	xerrors "mealbox-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type CouponRepository struct {
	db *pgxpool.Pool
}

func NewCouponRepository(db *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{db: db}
}

// Create inserts a new coupon. Codes are stored uppercased; lookups are
// case-insensitive.
func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	c.ID = ulid.Make().String()
	c.Code = strings.ToUpper(c.Code)

	query := `
		INSERT INTO coupons (
			id, code, discount_type, discount_value, min_order_value,
			required_package_ids, require_student_verification,
			valid_from, valid_until, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.ID, c.Code, c.DiscountType, c.DiscountValue, c.MinOrderValue,
		c.RequiredPackageIDs, c.RequireStudentVerification,
		c.ValidFrom, c.ValidUntil, c.Active,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

// FindByID retrieves a coupon by ID.
func (r *CouponRepository) FindByID(ctx context.Context, id string) (*coupon.Coupon, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByCode retrieves a coupon by its code, case-insensitively.
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.findOne(ctx, `WHERE UPPER(code) = UPPER($1)`, code)
}

// ExistsByCode reports whether a coupon with the given code already exists.
func (r *CouponRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM coupons WHERE UPPER(code) = UPPER($1))`, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check coupon code: %w", err)
	}
	return exists, nil
}

// ListAll returns every coupon, newest first.
func (r *CouponRepository) ListAll(ctx context.Context) ([]coupon.Coupon, error) {
	query := `
		SELECT id, code, discount_type, discount_value, min_order_value,
		       required_package_ids, require_student_verification,
		       valid_from, valid_until, active, created_at, updated_at
		FROM coupons
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []coupon.Coupon
	for rows.Next() {
		var c coupon.Coupon
		if err := rows.Scan(
			&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderValue,
			&c.RequiredPackageIDs, &c.RequireStudentVerification,
			&c.ValidFrom, &c.ValidUntil, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	return coupons, rows.Err()
}

// Update replaces the mutable fields of a coupon. The code itself is
// immutable once created.
func (r *CouponRepository) Update(ctx context.Context, id string, c *coupon.Coupon) error {
	query := `
		UPDATE coupons
		SET discount_type = $2, discount_value = $3, min_order_value = $4,
		    required_package_ids = $5, require_student_verification = $6,
		    valid_from = $7, valid_until = $8, active = $9, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		id, c.DiscountType, c.DiscountValue, c.MinOrderValue,
		c.RequiredPackageIDs, c.RequireStudentVerification,
		c.ValidFrom, c.ValidUntil, c.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a coupon.
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func (r *CouponRepository) findOne(ctx context.Context, where string, arg interface{}) (*coupon.Coupon, error) {
	query := `
		SELECT id, code, discount_type, discount_value, min_order_value,
		       required_package_ids, require_student_verification,
		       valid_from, valid_until, active, created_at, updated_at
		FROM coupons
	` + where

	var c coupon.Coupon
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderValue,
		&c.RequiredPackageIDs, &c.RequireStudentVerification,
		&c.ValidFrom, &c.ValidUntil, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}

	return &c, nil
}
