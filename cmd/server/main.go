package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"irp-planner/internal/adapters/audit"
	"irp-planner/internal/adapters/distcache"
	"irp-planner/internal/api"
	"irp-planner/internal/config"
	"irp-planner/internal/platform/obs"
	"irp-planner/internal/ports"
)

// main is the application composition root. It wires concrete storage
// adapters (SQLite by default, Postgres when DATABASE_URL is set) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	auditStore, cacheStore, closeFn, err := openStorage(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeFn()

	metrics := obs.NewMetrics(prometheus.DefaultRegisterer)

	router := api.NewRouter(auditStore, cacheStore, metrics, cfg.Server.CORSOrigins)

	log.Printf("Server listening addr=%s", cfg.Server.Addr())
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	log.Fatal(srv.ListenAndServe())
}

func openStorage(cfg *config.Config) (ports.AuditStore, ports.DistanceCache, func(), error) {
	if cfg.Postgres.UsesPostgres() {
		db, err := sql.Open("pgx", cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open storage: open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, nil, nil, fmt.Errorf("open storage: ping postgres: %w", err)
		}
		if err := audit.InitPostgresSchema(db); err != nil {
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}
		if err := distcache.InitPostgresSchema(db); err != nil {
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}

		return audit.NewSQLAuditStore(db), distcache.NewSQLDistanceCache(db), func() { _ = db.Close() }, nil
	}

	auditDB, err := openSqlite(cfg.Storage.AuditDBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}
	if err := audit.InitSqliteSchema(auditDB); err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}

	cacheDB, err := openSqlite(cfg.Storage.CacheDBPath)
	if err != nil {
		_ = auditDB.Close()
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}
	if err := distcache.InitSqliteSchema(cacheDB); err != nil {
		_ = auditDB.Close()
		_ = cacheDB.Close()
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}

	closeFn := func() {
		_ = auditDB.Close()
		_ = cacheDB.Close()
	}
	return audit.NewSqliteAuditStore(auditDB), distcache.NewSqliteDistanceCache(cacheDB), closeFn, nil
}

func openSqlite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", path, err)
	}
	return db, nil
}
