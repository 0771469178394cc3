// Package distcache persists computed distance matrices keyed by a
// signature of the depot and customer coordinates that produced them (see
// distmatrix.Signature), so a planning request repeated over an unchanged
// footprint skips matrix recomputation entirely.
package distcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"irp-planner/internal/ports"
)

// SqliteDistanceCache is a SQLite-backed DistanceCache. Keys are expected
// to already be normalized (via distmatrix.Signature) by the caller.
type SqliteDistanceCache struct {
	DB *sql.DB
}

func NewSqliteDistanceCache(db *sql.DB) *SqliteDistanceCache {
	return &SqliteDistanceCache{DB: db}
}

// InitSqliteSchema creates the distance matrix cache table if it does not exist.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("distcache: init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS distance_matrix_cache (
		signature TEXT NOT NULL,
		node_count INTEGER NOT NULL,
		from_node INTEGER NOT NULL,
		to_node INTEGER NOT NULL,
		distance_km REAL NOT NULL,
		PRIMARY KEY (signature, from_node, to_node)
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("distcache: init schema: %w", err)
	}
	return nil
}

func (c *SqliteDistanceCache) GetMatrix(ctx context.Context, signature string) ([]ports.DistanceCacheEntry, bool, error) {
	if c.DB == nil {
		return nil, false, errors.New("distcache: db is nil")
	}

	rows, err := c.DB.QueryContext(ctx, `
	SELECT from_node, to_node, distance_km
	FROM distance_matrix_cache
	WHERE signature = ?;
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

func (c *SqliteDistanceCache) PutMatrix(ctx context.Context, signature string, n int, entries []ports.DistanceCacheEntry) error {
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM distance_matrix_cache WHERE signature = ?;`, signature); err != nil {
		return fmt.Errorf("distcache: put matrix: clear previous entry: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO distance_matrix_cache (signature, node_count, from_node, to_node, distance_km)
	VALUES (?, ?, ?, ?, ?);
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
