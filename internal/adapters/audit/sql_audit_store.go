package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"irp-planner/internal/domain"
	"irp-planner/internal/platform/obs"
	"irp-planner/internal/ports"
)

// SQLAuditStore is a Postgres-backed AuditStore.
type SQLAuditStore struct {
	DB *sql.DB
}

func NewSQLAuditStore(db *sql.DB) *SQLAuditStore {
	return &SQLAuditStore{DB: db}
}

// InitPostgresSchema creates the plan_runs table if it does not exist.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("audit: init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS plan_runs (
		run_id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		request_json JSONB NOT NULL,
		response_json JSONB NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("audit: init schema: %w", err)
	}
	return nil
}

func (s *SQLAuditStore) SaveRun(ctx context.Context, runID string, req domain.PlanRequest, resp *domain.PlanResponse) (err error) {
	defer obs.Time(ctx, "audit.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("audit: db is nil")
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("audit: save run: marshal request: %w", err)
	}
	respJSON, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("audit: save run: marshal response: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO plan_runs (run_id, created_at, request_json, response_json)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (run_id) DO UPDATE
	SET created_at = EXCLUDED.created_at,
		request_json = EXCLUDED.request_json,
		response_json = EXCLUDED.response_json;
	`, runID, time.Now().UTC(), reqJSON, respJSON)
	if err != nil {
		return fmt.Errorf("audit: save run %q: %w", runID, err)
	}
	return nil
}

func (s *SQLAuditStore) GetRun(ctx context.Context, runID string) (_ *ports.PlanRun, err error) {
	defer obs.Time(ctx, "audit.GetRun")(&err)

	if s.DB == nil {
		return nil, errors.New("audit: db is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT run_id, created_at, request_json, response_json
	FROM plan_runs
	WHERE run_id = $1;
	`, runID)

	var run ports.PlanRun
	var createdAt time.Time
	var reqJSON, respJSON []byte
	if err := row.Scan(&run.RunID, &createdAt, &reqJSON, &respJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("audit: get run %q: scan: %w", runID, err)
	}
	run.CreatedAt = createdAt.Format(time.RFC3339)

	if err := json.Unmarshal(reqJSON, &run.Request); err != nil {
		return nil, fmt.Errorf("audit: get run %q: unmarshal request: %w", runID, err)
	}
	if err := json.Unmarshal(respJSON, &run.Response); err != nil {
		return nil, fmt.Errorf("audit: get run %q: unmarshal response: %w", runID, err)
	}

	return &run, nil
}
