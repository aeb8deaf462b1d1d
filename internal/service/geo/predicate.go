// internal/service/geo/predicate.go
package geo

import (
	"math"

	"mealbox-service/internal/domain/geo"
)

// SanitizePolygon drops non-finite vertices and reports whether what remains
// can still form a region (at least 3 points).
func SanitizePolygon(points []geo.Coordinate) ([]geo.Coordinate, bool) {
	valid := make([]geo.Coordinate, 0, len(points))
	for _, p := range points {
		if !finite(p.Lat) || !finite(p.Lng) {
			continue
		}
		valid = append(valid, p)
	}
	return valid, len(valid) >= 3
}

// PointInPolygon is the standard ray-casting (even-odd) test. Points exactly
// on an edge may resolve either way, which is acceptable for coverage gating.
func PointInPolygon(p geo.Coordinate, polygon []geo.Coordinate) bool {
	inside := false
	n := len(polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Lng > p.Lng) != (b.Lng > p.Lng) {
			x := (b.Lat-a.Lat)*(p.Lng-a.Lng)/(b.Lng-a.Lng) + a.Lat
			if p.Lat < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Evaluate decides coverage for a delivery coordinate against a region set.
// A point is covered if it falls inside any valid region. The loading and
// error statuses belong to the data-fetch layer and are constructed by the
// caller, not here.
func Evaluate(location *geo.Coordinate, regions []geo.CoverageRegion) geo.Verdict {
	if location == nil || !finite(location.Lat) || !finite(location.Lng) {
		return geo.Verdict{Status: geo.StatusNoLocation}
	}

	validRegions := 0
	for i := range regions {
		polygon, ok := SanitizePolygon(regions[i].Points)
		if !ok {
			continue
		}
		validRegions++
		if PointInPolygon(*location, polygon) {
			return geo.Verdict{Status: geo.StatusInside, RegionID: regions[i].ID}
		}
	}

	if validRegions == 0 {
		return geo.Verdict{Status: geo.StatusNoCoverage}
	}
	return geo.Verdict{Status: geo.StatusOutside}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
