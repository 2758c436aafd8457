package iodb

import (
	"fmt"

	"github.com/cardlab/cardlab/pkg/config"
	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
)

// ConnectionError is returned when database connection fails.
type ConnectionError struct {
	error
	gnlib.MessageBase
}

// NewConnectionError creates a connection error with user-friendly message.
func NewConnectionError(cfg config.DatabaseConfig, cause error) error {
	if cfg.Driver == "sqlite" {
		userBase := gnlib.NewMessage(
			`<title>Database Connection Failed</title>

<warning>Could not open the SQLite database.</warning>

<em>How to fix:</em>
  1. Check that the data directory is writable
  2. Set <em>database.path</em> in ~/.config/cardlab/config.yaml
     or <em>CARDLAB_DATABASE_PATH</em> to another file
`,
			nil,
		)
		return ConnectionError{
			error:       fmt.Errorf("failed to open sqlite database: %w", cause),
			MessageBase: userBase,
		}
	}

	userBase := gnlib.NewMessage(
		`<title>Database Connection Failed</title>

<warning>Could not connect to %s database.</warning>

<em>Possible causes:</em>
  • The database server is not running
  • Database configuration is incorrect
  • Network connectivity issues

<em>How to fix:</em>
  1. Check your configuration file:
     <em>~/.config/cardlab/config.yaml</em>

  2. Review connection settings:
     Host: %s
     Port: %d
     Database: %s
     User: %s

  3. Or switch back to the embedded database:
     <em>CARDLAB_DATABASE_DRIVER=sqlite</em>
`,
		[]any{
			cfg.Driver,
			cfg.Host, cfg.Port, cfg.Database, cfg.User,
		},
	)

	return ConnectionError{
		error: fmt.Errorf(
			"failed to connect to %s %s:%d/%s: %w",
			cfg.Driver, cfg.Host, cfg.Port, cfg.Database, cause,
		),
		MessageBase: userBase,
	}
}

// UnknownDriverError is returned for an unsupported database driver.
func UnknownDriverError(driver string) error {
	msg := "Unknown database driver <em>%s</em>"
	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

// NotConnectedError is returned when an operation is attempted
// before Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// CreateDataDirError is returned when the SQLite directory cannot be made.
func CreateDataDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create data directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot create %s: %w", dir, err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Cannot drop table for <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
