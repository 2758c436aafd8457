package db

import (
	"context"

	"github.com/cardlab/cardlab/pkg/config"
	"gorm.io/gorm"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Operator defines the interface for basic database management operations.
// It manages the connection lifecycle and exposes the *gorm.DB that the
// entity store, schema manager and import tools share.
type Operator interface {
	// Connect opens the backend selected by cfg.Database.Driver.
	Connect(context.Context, *config.Config) error

	// Close releases the underlying connections.
	Close() error

	// DB returns the connected *gorm.DB or nil before Connect.
	DB() *gorm.DB

	// Driver returns the name of the connected backend.
	Driver() string

	// HasTables checks if any cardlab table already exists.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables removes every cardlab table.
	DropAllTables(ctx context.Context) error
}
