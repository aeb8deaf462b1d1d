package discount

import (
	"math"
	"testing"

	"mealbox-service/internal/domain/discount"
)

func TestMatchIDs(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		selection  []string
		match      discount.MatchType
		want       bool
	}{
		{"any with overlap", []string{"a", "b"}, []string{"b", "c"}, discount.MatchAny, true},
		{"any without overlap", []string{"a", "b"}, []string{"c", "d"}, discount.MatchAny, false},
		{"any empty selection", []string{"a"}, nil, discount.MatchAny, false},
		{"all exact set", []string{"a", "b"}, []string{"b", "a"}, discount.MatchAll, true},
		{"all superset selection", []string{"a", "b"}, []string{"a", "b", "c"}, discount.MatchAll, false},
		{"all subset selection", []string{"a", "b"}, []string{"a"}, discount.MatchAll, false},
		{"all disjoint same size", []string{"a", "b"}, []string{"c", "d"}, discount.MatchAll, false},
		{"empty candidates never match", nil, []string{"a"}, discount.MatchAny, false},
		{"empty candidates all", nil, nil, discount.MatchAll, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchIDs(tt.candidates, tt.selection, tt.match); got != tt.want {
				t.Errorf("MatchIDs(%v, %v, %q) = %v, want %v", tt.candidates, tt.selection, tt.match, got, tt.want)
			}
		})
	}
}

func TestMatchesScope(t *testing.T) {
	cart := discount.CartContext{
		CategoryID:         "veg",
		SelectedPackageIDs: []string{"p1", "p2"},
	}

	tests := []struct {
		name string
		d    discount.DurationDiscount
		want bool
	}{
		{
			"all scope always matches",
			discount.DurationDiscount{Scope: discount.ScopeAll},
			true,
		},
		{
			"category scope with cart category",
			discount.DurationDiscount{Scope: discount.ScopeCategories, CategoryIDs: []string{"veg", "vegan"}},
			true,
		},
		{
			"category scope without cart category",
			discount.DurationDiscount{Scope: discount.ScopeCategories, CategoryIDs: []string{"nonveg"}},
			false,
		},
		{
			"category scope ignores match type",
			discount.DurationDiscount{Scope: discount.ScopeCategories, CategoryIDs: []string{"veg", "vegan"}, MatchType: discount.MatchAll},
			true,
		},
		{
			"package scope any",
			discount.DurationDiscount{Scope: discount.ScopePackages, PackageIDs: []string{"p2", "p9"}, MatchType: discount.MatchAny},
			true,
		},
		{
			"package scope all requires exact selection",
			discount.DurationDiscount{Scope: discount.ScopePackages, PackageIDs: []string{"p1"}, MatchType: discount.MatchAll},
			false,
		},
		{
			"package scope all exact selection",
			discount.DurationDiscount{Scope: discount.ScopePackages, PackageIDs: []string{"p2", "p1"}, MatchType: discount.MatchAll},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesScope(&tt.d, cart); got != tt.want {
				t.Errorf("MatchesScope() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDayCount(t *testing.T) {
	tests := []struct {
		name  string
		in    float64
		want  int
		valid bool
	}{
		{"whole number", 30, 30, true},
		{"rounds half up", 6.5, 7, true},
		{"rounds down", 6.4, 6, true},
		{"fraction below one clamps to one", 0.4, 1, true},
		{"zero invalid", 0, 0, false},
		{"negative invalid", -3, 0, false},
		{"nan invalid", math.NaN(), 0, false},
		{"inf invalid", math.Inf(1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDayCount(tt.in)
			if ok != tt.valid || got != tt.want {
				t.Errorf("NormalizeDayCount(%v) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.valid)
			}
		})
	}
}

func TestBuildIndex(t *testing.T) {
	cart := discount.CartContext{CategoryID: "veg", SelectedPackageIDs: []string{"p1"}}
	catalog := []discount.DurationDiscount{
		{ID: "d1", Label: "weekly", DayCount: 7, Scope: discount.ScopeAll},
		{ID: "d2", Label: "weekly-ish", DayCount: 6.8, Scope: discount.ScopeAll},
		{ID: "d3", Label: "monthly", DayCount: 30, Scope: discount.ScopeCategories, CategoryIDs: []string{"nonveg"}},
		{ID: "d4", Label: "broken", DayCount: -1, Scope: discount.ScopeAll},
	}

	index := BuildIndex(catalog, cart)

	if got := len(index[7]); got != 2 {
		t.Errorf("index[7] has %d entries, want 2", got)
	}
	if _, ok := index[30]; ok {
		t.Error("out-of-scope discount should not be indexed")
	}
	if len(index) != 1 {
		t.Errorf("index has %d day buckets, want 1", len(index))
	}
}
