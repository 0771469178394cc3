package planner

import (
	"testing"

	"irp-planner/internal/domain"
	"irp-planner/internal/inventory"
)

func TestSelectCustomersUrgencyRules(t *testing.T) {
	customers := []domain.Customer{
		{ID: 1, DemandRate: 50, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 50, Priority: 1},  // urgent: below min
		{ID: 2, DemandRate: 50, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 900, Priority: 1}, // not urgent
		{ID: 3, DemandRate: 0, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 50, Priority: 1},   // urgent: zero demand, below min
		{ID: 4, DemandRate: 0, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 500, Priority: 1},  // not urgent: zero demand, above min
	}
	state := inventory.New(customers)

	selected := SelectCustomers(0, customers, state)

	got := map[int]bool{}
	for _, idx := range selected {
		got[customers[idx].ID] = true
	}

	if !got[1] || got[2] || !got[3] || got[4] {
		t.Fatalf("unexpected selection: %v", got)
	}
}

func TestSelectCustomersSortOrder(t *testing.T) {
	customers := []domain.Customer{
		{ID: 5, DemandRate: 10, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 0, Priority: 1},
		{ID: 2, DemandRate: 20, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 0, Priority: 3},
		{ID: 3, DemandRate: 30, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 0, Priority: 3},
		{ID: 1, DemandRate: 5, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 0, Priority: 1},
	}
	state := inventory.New(customers)

	selected := SelectCustomers(0, customers, state)

	wantOrder := []int{3, 2, 5, 1} // priority 3 first (demand 30 before 20), then priority 1 (demand 10 before 5)
	if len(selected) != len(wantOrder) {
		t.Fatalf("selected length = %d, want %d", len(selected), len(wantOrder))
	}
	for i, idx := range selected {
		if customers[idx].ID != wantOrder[i] {
			t.Fatalf("position %d: got id %d, want %d", i, customers[idx].ID, wantOrder[i])
		}
	}
}

func TestSelectCustomersStockoutWithinTwoDays(t *testing.T) {
	customers := []domain.Customer{
		// (120 - 100) / 10 = 2 <= 2, urgent
		{ID: 1, DemandRate: 10, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 120, Priority: 1},
		// (200 - 100) / 10 = 10 > 2, not urgent
		{ID: 2, DemandRate: 10, MinInventory: 100, MaxInventory: 1000, CurrentInventory: 200, Priority: 1},
	}
	state := inventory.New(customers)

	selected := SelectCustomers(0, customers, state)
	if len(selected) != 1 || customers[selected[0]].ID != 1 {
		t.Fatalf("unexpected selection: %v", selected)
	}
}
