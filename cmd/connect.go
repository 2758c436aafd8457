package cmd

import (
	"context"

	"github.com/cardlab/cardlab/internal/iodb"
	"github.com/cardlab/cardlab/internal/ioschema"
	"github.com/cardlab/cardlab/pkg/db"
	"github.com/gnames/gn"
)

// connect opens the configured database and brings its schema up to
// date, so every command works on a fresh database too.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}

	switch op.Driver() {
	case db.DriverSQLite:
		gn.Info("Connected to SQLite database <em>%s</em>", cfg.SQLitePath())
	default:
		gn.Info("Connected to %s database <em>%s@%s:%d/%s</em>",
			op.Driver(), cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}

	if err := ioschema.NewManager(op).Migrate(ctx); err != nil {
		op.Close()
		return nil, err
	}
	return op, nil
}
