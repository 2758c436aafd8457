// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"
	"time"

	"github.com/cardlab/cardlab/pkg/db"
	"github.com/cardlab/cardlab/pkg/lifecycle"
	"github.com/cardlab/cardlab/pkg/schema"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema.
func (m *manager) Create(ctx context.Context, dropExisting bool) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}

	has, err := m.operator.HasTables(ctx)
	if err != nil {
		return CreateSchemaError(err)
	}
	if has {
		if !dropExisting {
			return SchemaExistsError(m.operator.Driver())
		}
		slog.Warn("Dropping existing tables", "driver", m.operator.Driver())
		if err = m.operator.DropAllTables(ctx); err != nil {
			return CreateSchemaError(err)
		}
	}

	if err = schema.Migrate(m.operator.DB().WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}
	slog.Info("Schema created", "tables", len(schema.AllModels()))
	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(m.operator.DB().WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}
	slog.Info("Schema migrated", "tables", len(schema.AllModels()))
	return nil
}

// Vacuum reclaims storage and updates query planner statistics.
// MySQL has no database-wide equivalent, so every table is analyzed.
func (m *manager) Vacuum(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}
	timeStart := time.Now()
	gdb := m.operator.DB().WithContext(ctx)

	var stmts []string
	switch m.operator.Driver() {
	case db.DriverPostgres:
		stmts = []string{"VACUUM ANALYZE"}
	case db.DriverSQLite:
		stmts = []string{"VACUUM", "ANALYZE"}
	default:
		for _, v := range schema.AllModels() {
			stmt := &gorm.Statement{DB: gdb}
			if err := stmt.Parse(v); err != nil {
				return VacuumError(err)
			}
			stmts = append(stmts, "ANALYZE TABLE "+stmt.Schema.Table)
		}
	}

	for _, v := range stmts {
		if err := gdb.Exec(v).Error; err != nil {
			return VacuumError(err)
		}
	}

	slog.Info("Vacuum completed",
		"driver", m.operator.Driver(),
		"duration", time.Since(timeStart).String(),
	)
	return nil
}
