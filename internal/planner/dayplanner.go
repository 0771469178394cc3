package planner

import (
	"fmt"
	"math"
	"time"

	"irp-planner/internal/distmatrix"
	"irp-planner/internal/domain"
	"irp-planner/internal/inventory"
)

const (
	departMinutes  = 8 * 60 // 08:00
	avgSpeedKMH    = 50.0
	serviceMinutes = 15
)

// PlanDay packs the day's selected customers into vehicles by repeatedly
// invoking BuildRoute and Improve2Opt until customers or vehicles are
// exhausted. Any residual unassigned customers are simply skipped for the
// day; the selector will reconsider them on the next day if still urgent.
func PlanDay(
	day int,
	date time.Time,
	selectedIdxs []int,
	customers []domain.Customer,
	vehicles []domain.Vehicle,
	state *inventory.State,
	matrix *distmatrix.Matrix,
) ([]domain.Route, error) {
	unassigned := make(map[int]struct{}, len(selectedIdxs))
	order := append([]int(nil), selectedIdxs...)
	for _, idx := range order {
		unassigned[idx] = struct{}{}
	}

	routes := make([]domain.Route, 0, len(vehicles))

	for _, vehicle := range vehicles {
		if len(unassigned) == 0 {
			break
		}

		candidates := make([]int, 0, len(unassigned))
		for _, idx := range order {
			if _, ok := unassigned[idx]; ok {
				candidates = append(candidates, idx)
			}
		}

		visited, deliveries, err := BuildRoute(vehicle, candidates, customers, state, matrix)
		if err != nil {
			return nil, fmt.Errorf("plan day %d: build route for vehicle %d: %w", day+1, vehicle.ID, err)
		}
		if len(visited) == 0 {
			continue
		}

		for _, idx := range visited {
			delete(unassigned, idx)
		}

		improved, err := Improve2Opt(visited, customers, matrix)
		if err != nil {
			return nil, fmt.Errorf("plan day %d: improve route for vehicle %d: %w", day+1, vehicle.ID, err)
		}

		totalDistance, err := tourDistance(improved, matrix)
		if err != nil {
			return nil, fmt.Errorf("plan day %d: tour distance for vehicle %d: %w", day+1, vehicle.ID, err)
		}

		totalLoad := 0.0
		for _, idx := range improved {
			totalLoad += deliveries[idx]
		}
		totalCost := vehicle.FixedCost + totalDistance*vehicle.CostPerKM

		stops, err := composeStops(improved, deliveries, customers, matrix)
		if err != nil {
			return nil, fmt.Errorf("plan day %d: compose stops for vehicle %d: %w", day+1, vehicle.ID, err)
		}

		routes = append(routes, domain.Route{
			Day:           day + 1,
			Date:          date.Format("2006-01-02"),
			VehicleID:     vehicle.ID,
			TotalDistance: domain.Round2(totalDistance),
			TotalCost:     domain.Round2(totalCost),
			TotalLoad:     domain.Round2(totalLoad),
			Stops:         stops,
		})
	}

	return routes, nil
}

// composeStops walks a finalized visit order starting from the depot at
// 08:00, advancing an integer-minutes clock by travel time then service
// time at each stop. The clock is kept as integer minutes from midnight
// throughout, per design, and formatted to HH:MM only on emission.
func composeStops(
	route []int,
	deliveries map[int]float64,
	customers []domain.Customer,
	matrix *distmatrix.Matrix,
) ([]domain.Stop, error) {
	stops := make([]domain.Stop, 0, len(route))
	clock := departMinutes
	prev := depotNode

	for seq, idx := range route {
		node := idx + 1
		d, err := matrix.Lookup(prev, node)
		if err != nil {
			return nil, fmt.Errorf("compose stops: %w", err)
		}

		travelMinutes := int(math.Floor(d / avgSpeedKMH * 60))
		clock += travelMinutes

		stops = append(stops, domain.Stop{
			CustomerID:  customers[idx].ID,
			Sequence:    seq + 1,
			Quantity:    domain.Round2(deliveries[idx]),
			ArrivalTime: formatClock(clock),
		})

		clock += serviceMinutes
		prev = node
	}

	return stops, nil
}

func formatClock(minutesFromMidnight int) string {
	m := minutesFromMidnight % (24 * 60)
	if m < 0 {
		m += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
