package pgsql

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Integration tests run against the disposable PostgreSQL database named by
// PGSQL_TEST_URL and are skipped when it is unset. Fixtures use fresh UUIDs
// per test so runs never collide and no cleanup is needed.

var migrateOnce sync.Once

func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	databaseURL := os.Getenv("PGSQL_TEST_URL")
	if databaseURL == "" {
		t.Skip("PGSQL_TEST_URL not set; skipping database integration tests")
	}

	migrateOnce.Do(func() {
		migrationDB, err := sql.Open("pgx", databaseURL)
		if err != nil {
			t.Fatalf("failed to open migration connection: %v", err)
		}
		defer migrationDB.Close()

		driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
		if err != nil {
			t.Fatalf("failed to create migration driver: %v", err)
		}
		m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
		if err != nil {
			t.Fatalf("failed to create migrate instance: %v", err)
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			t.Fatalf("failed to apply migrations: %v", err)
		}
	})

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
