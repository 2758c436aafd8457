// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/cardlab/cardlab/internal/iodb"
	"github.com/cardlab/cardlab/pkg/config"
	"github.com/cardlab/cardlab/pkg/db"
	"github.com/cardlab/cardlab/pkg/schema"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "cardlab_test"
)

// GetTestConfig returns a configuration with an in-memory SQLite
// database and a temporary home directory.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(":memory:"),
		config.OptHomeDir(t.TempDir()),
		config.OptJobsNumber(4),
	})
	return cfg
}

// GetPostgresConfig returns a configuration for PostgreSQL integration
// tests. Connection settings come from CARDLAB_DATABASE_* environment
// variables, the database name is always TestDatabaseName.
func GetPostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := GetTestConfig(t)
	opts := []config.Option{
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	}
	if v := os.Getenv("CARDLAB_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("CARDLAB_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("CARDLAB_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("CARDLAB_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	cfg.Update(opts)
	return cfg
}

// Connect opens the database of cfg, migrates the schema and closes
// the connection when the test finishes.
func Connect(t *testing.T, cfg *config.Config) db.Operator {
	t.Helper()
	op := iodb.NewOperator()
	if err := op.Connect(context.Background(), cfg); err != nil {
		t.Fatalf("Failed to connect to %s: %v", cfg.Database.Driver, err)
	}
	t.Cleanup(func() { op.Close() })

	if err := schema.Migrate(op.DB()); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	return op
}

// ConnectSQLite returns a migrated in-memory database.
func ConnectSQLite(t *testing.T) db.Operator {
	t.Helper()
	return Connect(t, GetTestConfig(t))
}

// ConnectPostgres returns a clean migrated PostgreSQL test database.
// The test is skipped in short mode or when no server answers.
func ConnectPostgres(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := GetPostgresConfig(t)
	op := iodb.NewOperator()
	if err := op.Connect(context.Background(), cfg); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() { op.Close() })

	if err := op.DropAllTables(context.Background()); err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}
	if err := schema.Migrate(op.DB()); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	return op
}
