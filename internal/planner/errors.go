package planner

import "errors"

// ErrInternalFault marks an unexpected arithmetic or lookup failure inside
// the core (e.g. a distance-matrix miss) that the boundary should surface
// as a 5xx-class response. EmptyCustomers and EmptyVehicles are not errors
// of this kind — they produce a structured PlanResponse directly, matching
// spec §7's distinction between boundary validation and internal fault.
var ErrInternalFault = errors.New("irp planner: internal fault")
