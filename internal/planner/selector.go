package planner

import (
	"sort"

	"irp-planner/internal/domain"
	"irp-planner/internal/inventory"
)

// SelectCustomers returns the dense indices of customers urgent enough to
// consider for delivery today, sorted by urgency: higher priority first,
// then higher demand rate, then lower customer ID for determinism. The day
// index is accepted for interface symmetry with the spec but the selection
// rule itself is day-independent — urgency is derived entirely from the
// current inventory snapshot.
func SelectCustomers(day int, customers []domain.Customer, state *inventory.State) []int {
	selected := make([]int, 0, len(customers))

	for idx, c := range customers {
		onHand := state.Get(idx)

		urgent := false
		if c.DemandRate > 0 {
			daysUntilStockout := (onHand - c.MinInventory) / c.DemandRate
			urgent = daysUntilStockout <= 2 || onHand <= c.MinInventory
		} else {
			urgent = onHand <= c.MinInventory
		}

		if urgent {
			selected = append(selected, idx)
		}
	}

	sort.SliceStable(selected, func(a, b int) bool {
		ca, cb := customers[selected[a]], customers[selected[b]]
		if ca.Priority != cb.Priority {
			return ca.Priority > cb.Priority
		}
		if ca.DemandRate != cb.DemandRate {
			return ca.DemandRate > cb.DemandRate
		}
		return ca.ID < cb.ID
	})

	return selected
}
