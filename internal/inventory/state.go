// Package inventory tracks per-customer projected on-hand quantity for the
// lifetime of one planning request.
package inventory

import "irp-planner/internal/domain"

// State is a dense array-backed map from customer index to current
// projected on-hand quantity, avoiding hash overhead on the selector and
// route-builder hot path. Index assignment matches the order of the
// customer slice it was built from, which is also the distance matrix's
// node ordering (node i+1 for customer index i).
type State struct {
	idOf   []int
	idxOf  map[int]int
	onHand []float64
}

// New initializes inventory state from each customer's current inventory.
func New(customers []domain.Customer) *State {
	s := &State{
		idOf:   make([]int, len(customers)),
		idxOf:  make(map[int]int, len(customers)),
		onHand: make([]float64, len(customers)),
	}
	for i, c := range customers {
		s.idOf[i] = c.ID
		s.idxOf[c.ID] = i
		s.onHand[i] = c.CurrentInventory
	}
	return s
}

// Get returns the current on-hand quantity for a customer index.
func (s *State) Get(idx int) float64 {
	return s.onHand[idx]
}

// IndexForID returns the dense index for a customer ID.
func (s *State) IndexForID(id int) (int, bool) {
	idx, ok := s.idxOf[id]
	return idx, ok
}

// CommitDelivery adds a delivered quantity to a customer's on-hand balance.
// Called once per emitted Stop, after a day's routes are finalized.
func (s *State) CommitDelivery(idx int, qty float64) {
	s.onHand[idx] += qty
}

// ConsumeDemand subtracts one day of demand from every customer, clamped at
// zero. Called once per day, after delivery commits.
func (s *State) ConsumeDemand(customers []domain.Customer) {
	for i, c := range customers {
		next := s.onHand[i] - c.DemandRate
		if next < 0 {
			next = 0
		}
		s.onHand[i] = next
	}
}

// Len returns the number of tracked customers.
func (s *State) Len() int {
	return len(s.onHand)
}
