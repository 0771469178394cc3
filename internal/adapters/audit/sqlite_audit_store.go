// Package audit persists planning request/response pairs under a generated
// run ID, so a completed plan can be retrieved again after the request
// that produced it has finished.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"irp-planner/internal/domain"
	"irp-planner/internal/ports"
)

// SqliteAuditStore is a SQLite-backed AuditStore.
type SqliteAuditStore struct {
	DB *sql.DB
}

func NewSqliteAuditStore(db *sql.DB) *SqliteAuditStore {
	return &SqliteAuditStore{DB: db}
}

// InitSqliteSchema creates the plan_runs table if it does not exist.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("audit: init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS plan_runs (
		run_id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		request_json TEXT NOT NULL,
		response_json TEXT NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("audit: init schema: %w", err)
	}
	return nil
}

func (s *SqliteAuditStore) SaveRun(ctx context.Context, runID string, req domain.PlanRequest, resp *domain.PlanResponse) error {
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
	INSERT OR REPLACE INTO plan_runs (run_id, created_at, request_json, response_json)
	VALUES (?, ?, ?, ?);
	`, runID, time.Now().UTC().Format(time.RFC3339), string(reqJSON), string(respJSON))
	if err != nil {
		return fmt.Errorf("audit: save run %q: %w", runID, err)
	}
	return nil
}

func (s *SqliteAuditStore) GetRun(ctx context.Context, runID string) (*ports.PlanRun, error) {
	if s.DB == nil {
		return nil, errors.New("audit: db is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT run_id, created_at, request_json, response_json
	FROM plan_runs
	WHERE run_id = ?;
	`, runID)

	var run ports.PlanRun
	var reqJSON, respJSON string
	if err := row.Scan(&run.RunID, &run.CreatedAt, &reqJSON, &respJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("audit: get run %q: scan: %w", runID, err)
	}

	if err := json.Unmarshal([]byte(reqJSON), &run.Request); err != nil {
		return nil, fmt.Errorf("audit: get run %q: unmarshal request: %w", runID, err)
	}
	if err := json.Unmarshal([]byte(respJSON), &run.Response); err != nil {
		return nil, fmt.Errorf("audit: get run %q: unmarshal response: %w", runID, err)
	}

	return &run, nil
}
