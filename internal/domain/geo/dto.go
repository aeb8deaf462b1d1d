// internal/domain/geo/dto.go
package geo

type CreateRegionRequest struct {
	Name   string       `json:"name" binding:"required,max=255"`
	Points []Coordinate `json:"points" binding:"required,min=3"`
}

type UpdateRegionRequest struct {
	Name   *string      `json:"name" binding:"omitempty,max=255"`
	Points []Coordinate `json:"points" binding:"omitempty,min=3"`
}

// CheckCoverageRequest carries an optional delivery coordinate; a missing
// coordinate resolves to the no-location status.
type CheckCoverageRequest struct {
	Location *Coordinate `json:"location"`
}

type RegionListResponse struct {
	Regions []CoverageRegion `json:"regions"`
	Total   int              `json:"total"`
}
