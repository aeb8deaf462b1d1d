// internal/service/geo/service.go
package geo

import (
	"context"
	"fmt"

	"mealbox-service/internal/domain/geo"
	"mealbox-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type catalogNotifier interface {
	CatalogChanged(kind string)
}

type CoverageService struct {
	regionRepo *postgres.CoverageRegionRepository
	notifier   catalogNotifier
	logger     *zap.Logger
}

func NewCoverageService(regionRepo *postgres.CoverageRegionRepository, notifier catalogNotifier, logger *zap.Logger) *CoverageService {
	return &CoverageService{
		regionRepo: regionRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// ========== Admin Operations ==========

// CreateRegion saves a coverage polygon (admin only). Regions that cannot
// form an area are rejected outright rather than silently discarded later.
func (s *CoverageService) CreateRegion(ctx context.Context, req *geo.CreateRegionRequest) (*geo.CoverageRegion, error) {
	if _, ok := SanitizePolygon(req.Points); !ok {
		return nil, fmt.Errorf("region needs at least 3 valid points")
	}

	region := &geo.CoverageRegion{
		Name:   req.Name,
		Points: req.Points,
	}

	if err := s.regionRepo.Create(ctx, region); err != nil {
		s.logger.Error("failed to create coverage region", zap.Error(err))
		return nil, fmt.Errorf("failed to create coverage region: %w", err)
	}

	s.logger.Info("coverage region created",
		zap.String("region_id", region.ID),
		zap.String("name", region.Name),
		zap.Int("points", len(region.Points)),
	)
	s.notifier.CatalogChanged("coverage_regions")

	return region, nil
}

// UpdateRegion replaces a region's name or polygon (admin only).
func (s *CoverageService) UpdateRegion(ctx context.Context, id string, req *geo.UpdateRegionRequest) (*geo.CoverageRegion, error) {
	region, err := s.regionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		region.Name = *req.Name
	}
	if req.Points != nil {
		if _, ok := SanitizePolygon(req.Points); !ok {
			return nil, fmt.Errorf("region needs at least 3 valid points")
		}
		region.Points = req.Points
	}

	if err := s.regionRepo.Update(ctx, id, region); err != nil {
		s.logger.Error("failed to update coverage region", zap.Error(err))
		return nil, fmt.Errorf("failed to update coverage region: %w", err)
	}

	s.logger.Info("coverage region updated", zap.String("region_id", id))
	s.notifier.CatalogChanged("coverage_regions")

	return region, nil
}

// DeleteRegion removes a coverage region (admin only).
func (s *CoverageService) DeleteRegion(ctx context.Context, id string) error {
	if err := s.regionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("coverage region deleted", zap.String("region_id", id))
	s.notifier.CatalogChanged("coverage_regions")
	return nil
}

// GetRegion retrieves a coverage region.
func (s *CoverageService) GetRegion(ctx context.Context, id string) (*geo.CoverageRegion, error) {
	return s.regionRepo.FindByID(ctx, id)
}

// ListRegions returns every coverage region.
func (s *CoverageService) ListRegions(ctx context.Context) (*geo.RegionListResponse, error) {
	regions, err := s.regionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coverage regions: %w", err)
	}

	return &geo.RegionListResponse{Regions: regions, Total: len(regions)}, nil
}

// ========== Coverage Check ==========

// CheckCoverage fetches the region set and runs the coverage predicate. A
// fetch failure maps to the error status so the caller can distinguish it
// from a genuine outside verdict.
func (s *CoverageService) CheckCoverage(ctx context.Context, req *geo.CheckCoverageRequest) geo.Verdict {
	regions, err := s.regionRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load coverage regions", zap.Error(err))
		return geo.Verdict{Status: geo.StatusError}
	}

	return Evaluate(req.Location, regions)
}
