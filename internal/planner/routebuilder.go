package planner

import (
	"fmt"
	"math"

	"irp-planner/internal/distmatrix"
	"irp-planner/internal/domain"
	"irp-planner/internal/inventory"
)

const depotNode = 0

// BuildRoute greedily constructs one vehicle's tour via nearest-neighbour
// insertion, respecting capacity and round-trip range feasibility. It
// returns the visited customer indices in visit order and the per-customer
// delivery quantity decided at the moment each stop was appended; delivery
// sizing is never revisited later in the same tour.
//
// candidateIdxs is read-only; the working candidate set is a separate map
// built from it once, from which customers are deleted as they are visited
// or dropped for lack of headroom.
func BuildRoute(
	vehicle domain.Vehicle,
	candidateIdxs []int,
	customers []domain.Customer,
	state *inventory.State,
	matrix *distmatrix.Matrix,
) ([]int, map[int]float64, error) {
	remainingCapacity := vehicle.Capacity
	remainingRange := math.Inf(1)
	if !vehicle.Unbounded() {
		remainingRange = vehicle.MaxDistance
	}

	available := make(map[int]struct{}, len(candidateIdxs))
	for _, idx := range candidateIdxs {
		available[idx] = struct{}{}
	}

	route := make([]int, 0, len(candidateIdxs))
	deliveries := make(map[int]float64, len(candidateIdxs))
	current := depotNode

	for len(available) > 0 && remainingCapacity > 0 {
		// Drop candidates whose tentative delivery quantity is non-positive;
		// this removal is permanent for the rest of this tour.
		for idx := range available {
			q := math.Min(customers[idx].MaxInventory-state.Get(idx), remainingCapacity)
			if q <= 0 {
				delete(available, idx)
			}
		}

		best := -1
		bestDist := math.Inf(1)
		bestID := 0

		for idx := range available {
			node := idx + 1
			dToCustomer, err := matrix.Lookup(current, node)
			if err != nil {
				return nil, nil, fmt.Errorf("build route: lookup current->customer: %w", err)
			}
			dToDepot, err := matrix.Lookup(node, depotNode)
			if err != nil {
				return nil, nil, fmt.Errorf("build route: lookup customer->depot: %w", err)
			}
			if dToCustomer+dToDepot > remainingRange {
				continue
			}

			if best == -1 || dToCustomer < bestDist ||
				(dToCustomer == bestDist && customers[idx].ID < bestID) {
				best = idx
				bestDist = dToCustomer
				bestID = customers[idx].ID
			}
		}

		if best == -1 {
			break
		}

		q := math.Min(customers[best].MaxInventory-state.Get(best), remainingCapacity)

		route = append(route, best)
		deliveries[best] = q
		remainingCapacity -= q
		remainingRange -= bestDist
		current = best + 1
		delete(available, best)
	}

	return route, deliveries, nil
}
