package ports

import (
	"context"

	"irp-planner/internal/domain"
)

// PlanRun is one recorded planning request/response pair, identified by a
// generated run ID and retrievable afterwards.
type PlanRun struct {
	RunID     string
	CreatedAt string
	Request   domain.PlanRequest
	Response  domain.PlanResponse
}

// AuditStore persists planning runs so a caller can retrieve a prior
// result by run ID.
type AuditStore interface {
	SaveRun(ctx context.Context, runID string, req domain.PlanRequest, resp *domain.PlanResponse) error
	GetRun(ctx context.Context, runID string) (*PlanRun, error)
}
