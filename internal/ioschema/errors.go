package ioschema

import (
	"fmt"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// SchemaExistsError is returned by Create when tables are present and
// dropping them was not requested.
func SchemaExistsError(driver string) error {
	msg := `The %s database already has cardlab tables

<em>How to fix:</em>
  1. Run <em>cardlab migrate</em> to update the existing schema
  2. Or run <em>cardlab migrate --recreate</em> to start from scratch`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("schema already exists"),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Invalid schema definitions

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>Possible causes:</em>
  - Incompatible schema changes
  - Insufficient database permissions
  - Duplicate values violate a new unique index

<em>How to fix:</em>
  1. Review migration compatibility
  2. Check database user permissions
  3. Export data with <em>cardlab export</em> before migration`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// VacuumError wraps failures of VACUUM and ANALYZE statements.
func VacuumError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaVacuumError,
		Msg:  "Cannot vacuum the database",
		Err:  fmt.Errorf("failed to vacuum: %w", err),
	}
}
