package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the database schema. Existing cardlab tables are
	// dropped first when dropExisting is true, otherwise Create fails
	// on a database that already has them.
	Create(ctx context.Context, dropExisting bool) error

	// Migrate updates the database schema to the latest version using GORM AutoMigrate.
	Migrate(ctx context.Context) error

	// Vacuum reclaims space left by deleted rows and refreshes planner
	// statistics. It must not run inside a transaction.
	Vacuum(ctx context.Context) error
}
