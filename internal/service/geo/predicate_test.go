package geo

import (
	"math"
	"testing"

	"mealbox-service/internal/domain/geo"
)

func square() []geo.Coordinate {
	return []geo.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 10, Lng: 10},
		{Lat: 10, Lng: 0},
	}
}

func TestPointInPolygon(t *testing.T) {
	concave := []geo.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 5, Lng: 5},
		{Lat: 10, Lng: 10},
		{Lat: 10, Lng: 0},
	}

	tests := []struct {
		name    string
		point   geo.Coordinate
		polygon []geo.Coordinate
		want    bool
	}{
		{"center of square", geo.Coordinate{Lat: 5, Lng: 5}, square(), true},
		{"outside square", geo.Coordinate{Lat: 15, Lng: 15}, square(), false},
		{"outside one axis", geo.Coordinate{Lat: 5, Lng: 15}, square(), false},
		{"near corner inside", geo.Coordinate{Lat: 0.1, Lng: 0.1}, square(), true},
		{"inside concave body", geo.Coordinate{Lat: 2, Lng: 3}, concave, true},
		{"in concave notch", geo.Coordinate{Lat: 5, Lng: 8}, concave, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.point, tt.polygon); got != tt.want {
				t.Errorf("PointInPolygon(%+v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestSanitizePolygon(t *testing.T) {
	points := []geo.Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: math.NaN(), Lng: 5},
		{Lat: 0, Lng: 10},
		{Lat: 10, Lng: math.Inf(1)},
		{Lat: 10, Lng: 5},
	}

	valid, ok := SanitizePolygon(points)
	if !ok {
		t.Fatal("three finite points should form a region")
	}
	if len(valid) != 3 {
		t.Errorf("kept %d points, want 3", len(valid))
	}

	if _, ok := SanitizePolygon(points[:3]); ok {
		t.Error("two finite points must not form a region")
	}
}

func TestEvaluate(t *testing.T) {
	regions := []geo.CoverageRegion{
		{ID: "r1", Name: "south zone", Points: square()},
		{ID: "r2", Name: "north zone", Points: []geo.Coordinate{
			{Lat: 20, Lng: 20}, {Lat: 20, Lng: 30}, {Lat: 30, Lng: 30}, {Lat: 30, Lng: 20},
		}},
	}

	tests := []struct {
		name       string
		location   *geo.Coordinate
		regions    []geo.CoverageRegion
		wantStatus geo.CoverageStatus
		wantRegion string
	}{
		{"inside first region", &geo.Coordinate{Lat: 5, Lng: 5}, regions, geo.StatusInside, "r1"},
		{"inside second region", &geo.Coordinate{Lat: 25, Lng: 25}, regions, geo.StatusInside, "r2"},
		{"outside all regions", &geo.Coordinate{Lat: 50, Lng: 50}, regions, geo.StatusOutside, ""},
		{"nil location", nil, regions, geo.StatusNoLocation, ""},
		{"non-finite location", &geo.Coordinate{Lat: math.NaN(), Lng: 5}, regions, geo.StatusNoLocation, ""},
		{"no regions", &geo.Coordinate{Lat: 5, Lng: 5}, nil, geo.StatusNoCoverage, ""},
		{
			"degenerate regions only",
			&geo.Coordinate{Lat: 5, Lng: 5},
			[]geo.CoverageRegion{{ID: "r3", Points: []geo.Coordinate{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}}},
			geo.StatusNoCoverage,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(tt.location, tt.regions)
			if v.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", v.Status, tt.wantStatus)
			}
			if v.RegionID != tt.wantRegion {
				t.Errorf("RegionID = %q, want %q", v.RegionID, tt.wantRegion)
			}
			if v.Covered() != (tt.wantStatus == geo.StatusInside) {
				t.Errorf("Covered() = %v inconsistent with status %q", v.Covered(), v.Status)
			}
		})
	}
}
