// internal/repository/postgres/coverage_region_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mealbox-service/internal/domain/geo"
	xerrors "mealbox-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type CoverageRegionRepository struct {
	db *pgxpool.Pool
}

func NewCoverageRegionRepository(db *pgxpool.Pool) *CoverageRegionRepository {
	return &CoverageRegionRepository{db: db}
}

// Create inserts a coverage region; polygon points are stored as JSONB.
func (r *CoverageRegionRepository) Create(ctx context.Context, region *geo.CoverageRegion) error {
	region.ID = ulid.Make().String()

	pointsJSON, err := json.Marshal(region.Points)
	if err != nil {
		return fmt.Errorf("failed to marshal points: %w", err)
	}

	query := `
		INSERT INTO coverage_regions (id, name, points)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query, region.ID, region.Name, pointsJSON).
		Scan(&region.CreatedAt, &region.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create coverage region: %w", err)
	}

	return nil
}

// FindByID retrieves a coverage region by ID.
func (r *CoverageRegionRepository) FindByID(ctx context.Context, id string) (*geo.CoverageRegion, error) {
	query := `
		SELECT id, name, points, created_at, updated_at
		FROM coverage_regions
		WHERE id = $1
	`

	var region geo.CoverageRegion
	var pointsJSON []byte

	err := r.db.QueryRow(ctx, query, id).Scan(
		&region.ID, &region.Name, &pointsJSON, &region.CreatedAt, &region.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find coverage region: %w", err)
	}

	if err := json.Unmarshal(pointsJSON, &region.Points); err != nil {
		return nil, fmt.Errorf("failed to unmarshal points: %w", err)
	}

	return &region, nil
}

// ListAll returns every coverage region.
func (r *CoverageRegionRepository) ListAll(ctx context.Context) ([]geo.CoverageRegion, error) {
	query := `
		SELECT id, name, points, created_at, updated_at
		FROM coverage_regions
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list coverage regions: %w", err)
	}
	defer rows.Close()

	var regions []geo.CoverageRegion
	for rows.Next() {
		var region geo.CoverageRegion
		var pointsJSON []byte
		if err := rows.Scan(
			&region.ID, &region.Name, &pointsJSON, &region.CreatedAt, &region.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan coverage region: %w", err)
		}
		if err := json.Unmarshal(pointsJSON, &region.Points); err != nil {
			return nil, fmt.Errorf("failed to unmarshal points: %w", err)
		}
		regions = append(regions, region)
	}

	return regions, rows.Err()
}

// Update replaces a region's name and polygon.
func (r *CoverageRegionRepository) Update(ctx context.Context, id string, region *geo.CoverageRegion) error {
	pointsJSON, err := json.Marshal(region.Points)
	if err != nil {
		return fmt.Errorf("failed to marshal points: %w", err)
	}

	query := `
		UPDATE coverage_regions
		SET name = $2, points = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, region.Name, pointsJSON)
	if err != nil {
		return fmt.Errorf("failed to update coverage region: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes a coverage region.
func (r *CoverageRegionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coverage_regions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coverage region: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
