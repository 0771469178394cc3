// Package dto defines the wire shapes for the planning HTTP API,
// decoupling the JSON contract from the internal domain types.
package dto

import (
	"fmt"
	"time"

	"irp-planner/internal/domain"
)

type DepotRequest struct {
	ID    int     `json:"id"`
	Lat   float64 `json:"lat" validate:"latitude"`
	Lon   float64 `json:"lon" validate:"longitude"`
	Stock float64 `json:"stock"`
}

type CustomerRequest struct {
	ID               int     `json:"id"`
	Lat              float64 `json:"lat" validate:"latitude"`
	Lon              float64 `json:"lon" validate:"longitude"`
	DemandRate       float64 `json:"demand_rate" validate:"gte=0"`
	MinInventory     float64 `json:"min_inventory" validate:"gte=0"`
	MaxInventory     float64 `json:"max_inventory" validate:"gtefield=MinInventory"`
	CurrentInventory float64 `json:"current_inventory" validate:"gte=0"`
	// Priority is a pointer so an omitted field can be told apart from an
	// explicit 0; defaultPriority applies when it is nil.
	Priority *int `json:"priority,omitempty" validate:"omitempty,gte=0"`
}

// defaultPriority is applied when a customer's priority is omitted from
// the request body, matching the original optimizer's priority: int = 1.
const defaultPriority = 1

type VehicleRequest struct {
	ID          int     `json:"id"`
	Capacity    float64 `json:"capacity" validate:"gt=0"`
	CostPerKM   float64 `json:"cost_per_km" validate:"gte=0"`
	FixedCost   float64 `json:"fixed_cost" validate:"gte=0"`
	MaxDistance float64 `json:"max_distance" validate:"gte=0"`
}

// PlanRequest is the JSON request body for POST /v1/plans.
type PlanRequest struct {
	Warehouse       DepotRequest      `json:"warehouse" validate:"required"`
	Customers       []CustomerRequest `json:"customers" validate:"dive"`
	Vehicles        []VehicleRequest  `json:"vehicles" validate:"required,min=1,dive"`
	PlanningHorizon int               `json:"planning_horizon" validate:"required,gt=0,lte=90"`
	StartDate       string            `json:"start_date" validate:"required,datetime=2006-01-02"`
}

// ToDomain converts the validated request into the core's planning input.
// StartDate parsing is a boundary concern deliberately kept out of the
// core: a malformed date never reaches domain.PlanRequest.
func (r PlanRequest) ToDomain() (domain.PlanRequest, error) {
	startDate, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return domain.PlanRequest{}, fmt.Errorf("parse start_date %q: %w", r.StartDate, err)
	}

	customers := make([]domain.Customer, 0, len(r.Customers))
	for _, c := range r.Customers {
		priority := defaultPriority
		if c.Priority != nil {
			priority = *c.Priority
		}
		customers = append(customers, domain.Customer{
			ID:               c.ID,
			Lat:              c.Lat,
			Lon:              c.Lon,
			DemandRate:       c.DemandRate,
			MinInventory:     c.MinInventory,
			MaxInventory:     c.MaxInventory,
			CurrentInventory: c.CurrentInventory,
			Priority:         priority,
		})
	}

	vehicles := make([]domain.Vehicle, 0, len(r.Vehicles))
	for _, v := range r.Vehicles {
		vehicles = append(vehicles, domain.Vehicle{
			ID:          v.ID,
			Capacity:    v.Capacity,
			CostPerKM:   v.CostPerKM,
			FixedCost:   v.FixedCost,
			MaxDistance: v.MaxDistance,
		})
	}

	return domain.PlanRequest{
		Warehouse: domain.Depot{
			ID:    r.Warehouse.ID,
			Lat:   r.Warehouse.Lat,
			Lon:   r.Warehouse.Lon,
			Stock: r.Warehouse.Stock,
		},
		Customers:       customers,
		Vehicles:        vehicles,
		PlanningHorizon: r.PlanningHorizon,
		StartDate:       startDate,
	}, nil
}

type StopResponse struct {
	CustomerID  int     `json:"customer_id"`
	Sequence    int     `json:"sequence"`
	Quantity    float64 `json:"quantity"`
	ArrivalTime string  `json:"arrival_time"`
}

type RouteResponse struct {
	Day           int            `json:"day"`
	Date          string         `json:"date"`
	VehicleID     int            `json:"vehicle_id"`
	TotalDistance float64        `json:"total_distance"`
	TotalCost     float64        `json:"total_cost"`
	TotalLoad     float64        `json:"total_load"`
	Stops         []StopResponse `json:"stops"`
}

// PlanResponse is the JSON response body for POST /v1/plans and
// GET /v1/plans/{runID}.
type PlanResponse struct {
	RunID         string          `json:"run_id,omitempty"`
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	TotalCost     float64         `json:"total_cost"`
	TotalDistance float64         `json:"total_distance"`
	Routes        []RouteResponse `json:"routes"`
}

// FromDomain converts a core response into its wire shape.
func FromDomain(runID string, resp *domain.PlanResponse) PlanResponse {
	routes := make([]RouteResponse, 0, len(resp.Routes))
	for _, r := range resp.Routes {
		stops := make([]StopResponse, 0, len(r.Stops))
		for _, s := range r.Stops {
			stops = append(stops, StopResponse{
				CustomerID:  s.CustomerID,
				Sequence:    s.Sequence,
				Quantity:    s.Quantity,
				ArrivalTime: s.ArrivalTime,
			})
		}
		routes = append(routes, RouteResponse{
			Day:           r.Day,
			Date:          r.Date,
			VehicleID:     r.VehicleID,
			TotalDistance: r.TotalDistance,
			TotalCost:     r.TotalCost,
			TotalLoad:     r.TotalLoad,
			Stops:         stops,
		})
	}

	return PlanResponse{
		RunID:         runID,
		Success:       resp.Success,
		Message:       resp.Message,
		TotalCost:     resp.TotalCost,
		TotalDistance: resp.TotalDistance,
		Routes:        routes,
	}
}
