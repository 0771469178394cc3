package distcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"irp-planner/internal/platform/obs"
	"irp-planner/internal/ports"
)

// SQLDistanceCache is a Postgres-backed DistanceCache.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// InitPostgresSchema creates the distance matrix cache table if it does not exist.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("distcache: init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS distance_matrix_cache (
		signature TEXT NOT NULL,
		node_count INTEGER NOT NULL,
		from_node INTEGER NOT NULL,
		to_node INTEGER NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (signature, from_node, to_node)
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("distcache: init schema: %w", err)
	}
	return nil
}

func (c *SQLDistanceCache) GetMatrix(ctx context.Context, signature string) (_ []ports.DistanceCacheEntry, _ bool, err error) {
	defer obs.Time(ctx, "distcache.GetMatrix")(&err)

	if c.DB == nil {
		return nil, false, errors.New("distcache: db is nil")
	}

	rows, err := c.DB.QueryContext(ctx, `
	SELECT from_node, to_node, distance_km
	FROM distance_matrix_cache
	WHERE signature = $1;
	`, signature)
	if err != nil {
		return nil, false, fmt.Errorf("distcache: get matrix: query: %w", err)
	}
	defer rows.Close()

	var entries []ports.DistanceCacheEntry
	for rows.Next() {
		var e ports.DistanceCacheEntry
		if err := rows.Scan(&e.From, &e.To, &e.KM); err != nil {
			return nil, false, fmt.Errorf("distcache: get matrix: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("distcache: get matrix: row iteration: %w", err)
	}

	if len(entries) == 0 {
		return nil, false, nil
	}
	return entries, true, nil
}

func (c *SQLDistanceCache) PutMatrix(ctx context.Context, signature string, n int, entries []ports.DistanceCacheEntry) (err error) {
	defer obs.Time(ctx, "distcache.PutMatrix")(&err)

	if c.DB == nil {
		return errors.New("distcache: db is nil")
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("distcache: put matrix: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM distance_matrix_cache WHERE signature = $1;`, signature); err != nil {
		return fmt.Errorf("distcache: put matrix: clear previous entry: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO distance_matrix_cache (signature, node_count, from_node, to_node, distance_km)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (signature, from_node, to_node) DO UPDATE
	SET distance_km = EXCLUDED.distance_km;
	`)
	if err != nil {
		return fmt.Errorf("distcache: put matrix: prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, signature, n, e.From, e.To, e.KM); err != nil {
			return fmt.Errorf("distcache: put matrix: insert %d->%d: %w", e.From, e.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("distcache: put matrix: commit: %w", err)
	}
	return nil
}
