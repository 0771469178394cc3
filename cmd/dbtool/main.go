// Command dbtool initializes the Postgres schema for the audit trail and
// the distance-matrix cache outside of normal server startup, for use in
// deploy pipelines where schema migration is a separate step.
package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"irp-planner/internal/adapters/audit"
	"irp-planner/internal/adapters/distcache"
	"irp-planner/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing audit schema...")
	if err := audit.InitPostgresSchema(conn); err != nil {
		log.Fatalf("audit schema initialization failed: %v", err)
	}
	log.Println("Audit schema ready.")

	log.Println("Initializing distance cache schema...")
	if err := distcache.InitPostgresSchema(conn); err != nil {
		log.Fatalf("distance cache schema initialization failed: %v", err)
	}
	log.Println("Distance cache schema ready.")
}
