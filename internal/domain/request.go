package domain

import "time"

// PlanRequest is the core's planning input. StartDate is already a parsed
// calendar date by the time it reaches the core; date-string parsing is a
// boundary concern owned by the HTTP ingress (see internal/api/dto).
type PlanRequest struct {
	Warehouse       Depot
	Customers       []Customer
	Vehicles        []Vehicle
	PlanningHorizon int
	StartDate       time.Time
}
