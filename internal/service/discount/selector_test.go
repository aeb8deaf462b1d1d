package discount

import (
	"math"
	"testing"

	"mealbox-service/internal/domain/discount"
)

func TestSavings(t *testing.T) {
	tests := []struct {
		name     string
		d        discount.DurationDiscount
		subtotal float64
		want     float64
	}{
		{"percentage", discount.DurationDiscount{DiscountType: discount.DiscountTypePercentage, DiscountValue: 10}, 3000, 300},
		{"fixed", discount.DurationDiscount{DiscountType: discount.DiscountTypeFixed, DiscountValue: 150}, 3000, 150},
		{"fixed capped at subtotal", discount.DurationDiscount{DiscountType: discount.DiscountTypeFixed, DiscountValue: 5000}, 3000, 3000},
		{"percentage of zero", discount.DurationDiscount{DiscountType: discount.DiscountTypePercentage, DiscountValue: 10}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Savings(&tt.d, tt.subtotal); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Savings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectBestPicksHighestSavings(t *testing.T) {
	candidates := []discount.DurationDiscount{
		{ID: "d1", Label: "ten percent", DiscountType: discount.DiscountTypePercentage, DiscountValue: 10},
		{ID: "d2", Label: "flat 250", DiscountType: discount.DiscountTypeFixed, DiscountValue: 250},
	}

	// 30 days at 100/day: 10% saves 300, the flat discount 250.
	sel := SelectBest(candidates, 100, 30, "")
	if sel.Discount == nil || sel.Discount.ID != "d1" {
		t.Fatalf("selected %+v, want d1", sel.Discount)
	}
	if math.Abs(sel.Savings-300) > 1e-9 {
		t.Errorf("Savings = %v, want 300", sel.Savings)
	}
	if sel.Pinned {
		t.Error("auto-selection must not report pinned")
	}
}

func TestSelectBestTieBreaksByLabel(t *testing.T) {
	candidates := []discount.DurationDiscount{
		{ID: "d1", Label: "bravo", DiscountType: discount.DiscountTypePercentage, DiscountValue: 10},
		{ID: "d2", Label: "alpha", DiscountType: discount.DiscountTypeFixed, DiscountValue: 300},
		{ID: "d3", Label: "charlie", DiscountType: discount.DiscountTypeFixed, DiscountValue: 300},
	}

	// All three save exactly 300 on a 3000 subtotal.
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, p := range perms {
		shuffled := []discount.DurationDiscount{candidates[p[0]], candidates[p[1]], candidates[p[2]]}
		sel := SelectBest(shuffled, 100, 30, "")
		if sel.Discount == nil || sel.Discount.Label != "alpha" {
			t.Errorf("permutation %v selected %+v, want label alpha", p, sel.Discount)
		}
	}
}

func TestSelectBestZeroSubtotalComparesRawValues(t *testing.T) {
	candidates := []discount.DurationDiscount{
		{ID: "d1", Label: "small", DiscountType: discount.DiscountTypeFixed, DiscountValue: 50},
		{ID: "d2", Label: "big", DiscountType: discount.DiscountTypeFixed, DiscountValue: 500},
	}

	sel := SelectBest(candidates, 0, 30, "")
	if sel.Discount == nil || sel.Discount.ID != "d2" {
		t.Fatalf("selected %+v, want d2 on raw value comparison", sel.Discount)
	}
}

func TestSelectBestPinned(t *testing.T) {
	candidates := []discount.DurationDiscount{
		{ID: "d1", Label: "best", DiscountType: discount.DiscountTypePercentage, DiscountValue: 20},
		{ID: "d2", Label: "pinned", DiscountType: discount.DiscountTypePercentage, DiscountValue: 5},
	}

	sel := SelectBest(candidates, 100, 30, "d2")
	if sel.Discount == nil || sel.Discount.ID != "d2" {
		t.Fatalf("selected %+v, want pinned d2", sel.Discount)
	}
	if !sel.Pinned {
		t.Error("pinned selection must report Pinned")
	}

	// A pin that left the candidate set reverts to auto-selection.
	sel = SelectBest(candidates, 100, 30, "gone")
	if sel.Discount == nil || sel.Discount.ID != "d1" {
		t.Fatalf("selected %+v, want d1 after stale pin", sel.Discount)
	}
	if sel.Pinned {
		t.Error("stale pin must not report Pinned")
	}
}

func TestSelectBestEmptyCandidates(t *testing.T) {
	sel := SelectBest(nil, 100, 30, "")
	if sel.Discount != nil {
		t.Errorf("selected %+v, want none", sel.Discount)
	}
}
