// internal/domain/geo/entity.go
package geo

import "time"

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoverageRegion is an operator-drawn polygon gating delivery eligibility.
// Fewer than 3 finite points cannot form a region and the predicate drops
// such polygons before testing.
type CoverageRegion struct {
	ID     string       `json:"id" db:"id"`
	Name   string       `json:"name" db:"name"`
	Points []Coordinate `json:"points" db:"points"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CoverageStatus is a 5-way outcome rather than a boolean: callers need to
// know why a location is not verified, not just that it isn't.
type CoverageStatus string

const (
	StatusLoading    CoverageStatus = "loading"
	StatusNoLocation CoverageStatus = "no-location"
	StatusNoCoverage CoverageStatus = "no-coverage"
	StatusOutside    CoverageStatus = "outside"
	StatusInside     CoverageStatus = "inside"
	StatusError      CoverageStatus = "error"
)

// Verdict reports coverage for one delivery coordinate. RegionID names the
// first polygon that contained the point, when Status is inside.
type Verdict struct {
	Status   CoverageStatus `json:"status"`
	RegionID string         `json:"region_id,omitempty"`
}

func (v Verdict) Covered() bool {
	return v.Status == StatusInside
}
