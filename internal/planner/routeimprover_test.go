package planner

import (
	"sort"
	"testing"

	"irp-planner/internal/distmatrix"
	"irp-planner/internal/domain"
)

func TestImprove2OptReducesCrossedTour(t *testing.T) {
	depot := domain.Depot{ID: 0, Lat: 0, Lon: 0}
	// Four points roughly on a line; visiting them out of order crosses.
	customers := []domain.Customer{
		{ID: 1, Lat: 0, Lon: 0.10},
		{ID: 2, Lat: 0, Lon: 0.30},
		{ID: 3, Lat: 0, Lon: 0.20},
		{ID: 4, Lat: 0, Lon: 0.40},
	}
	matrix := distmatrix.Build(depot, customers)

	crossed := []int{0, 1, 2, 3} // visits 0.10, 0.30, 0.20, 0.40 -> crosses
	before, err := tourDistance(crossed, matrix)
	if err != nil {
		t.Fatalf("tourDistance: %v", err)
	}

	improved, err := Improve2Opt(crossed, customers, matrix)
	if err != nil {
		t.Fatalf("Improve2Opt: %v", err)
	}
	after, err := tourDistance(improved, matrix)
	if err != nil {
		t.Fatalf("tourDistance: %v", err)
	}

	if after > before {
		t.Fatalf("improved distance %v is worse than original %v", after, before)
	}

	gotSet := append([]int(nil), improved...)
	sort.Ints(gotSet)
	wantSet := append([]int(nil), crossed...)
	sort.Ints(wantSet)
	for i := range gotSet {
		if gotSet[i] != wantSet[i] {
			t.Fatalf("visit set changed: got %v, want %v", gotSet, wantSet)
		}
	}
}

func TestImprove2OptNonWorseningOnAlreadyOptimalTour(t *testing.T) {
	depot := domain.Depot{ID: 0, Lat: 0, Lon: 0}
	customers := []domain.Customer{
		{ID: 1, Lat: 0, Lon: 0.10},
		{ID: 2, Lat: 0, Lon: 0.20},
		{ID: 3, Lat: 0, Lon: 0.30},
	}
	matrix := distmatrix.Build(depot, customers)

	optimal := []int{0, 1, 2}
	before, _ := tourDistance(optimal, matrix)

	improved, err := Improve2Opt(optimal, customers, matrix)
	if err != nil {
		t.Fatalf("Improve2Opt: %v", err)
	}
	after, _ := tourDistance(improved, matrix)

	if after > before {
		t.Fatalf("non-worsening violated: before=%v after=%v", before, after)
	}
}

func TestImprove2OptShortRoutesPassThrough(t *testing.T) {
	customers := []domain.Customer{{ID: 1}, {ID: 2}}
	matrix := distmatrix.Build(domain.Depot{}, customers)

	for _, route := range [][]int{nil, {0}, {0, 1}} {
		improved, err := Improve2Opt(route, customers, matrix)
		if err != nil {
			t.Fatalf("unexpected error for short route %v: %v", route, err)
		}
		if len(improved) != len(route) {
			t.Fatalf("route length changed for %v: got %v", route, improved)
		}
	}
}
