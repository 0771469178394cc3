// Package planner implements the per-day and multi-day planning engine:
// customer selection, route construction, 2-opt improvement, day packing,
// and the horizon driver that links days together through inventory state.
package planner

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"irp-planner/internal/distmatrix"
	"irp-planner/internal/domain"
	"irp-planner/internal/inventory"
	"irp-planner/internal/ports"
)

// PlanHorizon is the core's single entry point. It iterates the day
// planner over the requested horizon, committing deliveries and consuming
// demand between days, and returns a fully deterministic report.
//
// cache, when non-nil, is consulted before the distance matrix is computed
// and populated after; a nil cache makes every call compute the matrix
// fresh (see distmatrix.BuildCached).
//
// A nil error always pairs with a non-nil response. EmptyCustomers is
// reported as a true-Success response with no routes and EmptyVehicles as
// a false-Success response; neither is an error. A non-nil error indicates
// ErrInternalFault.
func PlanHorizon(ctx context.Context, req domain.PlanRequest, cache ports.DistanceCache) (*domain.PlanResponse, error) {
	if len(req.Customers) == 0 {
		return &domain.PlanResponse{
			Success: true,
			Message: "No customers provided; nothing to plan",
			Routes:  []domain.Route{},
		}, nil
	}

	if len(req.Vehicles) == 0 {
		return &domain.PlanResponse{
			Success: false,
			Message: "No vehicles provided",
			Routes:  []domain.Route{},
		}, nil
	}

	matrix, err := distmatrix.BuildCached(ctx, req.Warehouse, req.Customers, cache)
	if err != nil {
		return nil, fmt.Errorf("%w: build distance matrix: %v", ErrInternalFault, err)
	}
	state := inventory.New(req.Customers)

	allRoutes := make([]domain.Route, 0)
	totalCost := decimal.Zero
	totalDistance := decimal.Zero

	for day := 0; day < req.PlanningHorizon; day++ {
		date := req.StartDate.AddDate(0, 0, day)

		selected := SelectCustomers(day, req.Customers, state)

		dayRoutes, err := PlanDay(day, date, selected, req.Customers, req.Vehicles, state, matrix)
		if err != nil {
			return nil, fmt.Errorf("%w: plan day %d: %v", ErrInternalFault, day+1, err)
		}

		for _, route := range dayRoutes {
			for _, stop := range route.Stops {
				idx, ok := state.IndexForID(stop.CustomerID)
				if !ok {
					return nil, fmt.Errorf("%w: commit delivery: unknown customer id %d", ErrInternalFault, stop.CustomerID)
				}
				state.CommitDelivery(idx, stop.Quantity)
			}

			totalCost = totalCost.Add(decimal.NewFromFloat(route.TotalCost))
			totalDistance = totalDistance.Add(decimal.NewFromFloat(route.TotalDistance))
		}

		allRoutes = append(allRoutes, dayRoutes...)

		state.ConsumeDemand(req.Customers)
	}

	tc, _ := totalCost.Round(2).Float64()
	td, _ := totalDistance.Round(2).Float64()

	return &domain.PlanResponse{
		Success:       true,
		Message:       fmt.Sprintf("Optimization complete: %d routes generated", len(allRoutes)),
		TotalCost:     tc,
		TotalDistance: td,
		Routes:        allRoutes,
	}, nil
}
