// Package iodb implements database operations on top of GORM.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cardlab/cardlab/pkg/config"
	"github.com/cardlab/cardlab/pkg/db"
	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// gormOperator implements db.Operator interface.
type gormOperator struct {
	driver string
	gdb    *gorm.DB
	sqlDB  *sql.DB
	pool   *pgxpool.Pool
}

// NewOperator creates a new database operator
// (without connecting).
func NewOperator() db.Operator {
	return &gormOperator{}
}

// Connect opens the configured backend. SQLite is the default and
// needs no server.
func (g *gormOperator) Connect(
	ctx context.Context,
	cfg *config.Config,
) error {
	var dialector gorm.Dialector
	var err error
	dbCfg := cfg.Database

	switch dbCfg.Driver {
	case db.DriverSQLite:
		dialector, err = g.sqliteDialector(cfg.SQLitePath())
	case db.DriverPostgres:
		dialector, err = g.postgresDialector(ctx, &dbCfg)
	case db.DriverMySQL:
		dialector = g.mysqlDialector(&dbCfg)
	default:
		return UnknownDriverError(dbCfg.Driver)
	}
	if err != nil {
		return err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		g.Close()
		return NewConnectionError(dbCfg, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		g.Close()
		return NewConnectionError(dbCfg, err)
	}

	if dbCfg.Driver == db.DriverSQLite {
		// SQLite allows one writer, and an in-memory database exists
		// only inside its connection.
		sqlDB.SetMaxOpenConns(1)
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		g.Close()
		return NewConnectionError(dbCfg, err)
	}

	g.driver = dbCfg.Driver
	g.gdb = gdb
	g.sqlDB = sqlDB

	slog.Info("Connected to database", "driver", g.driver)
	return nil
}

func (g *gormOperator) sqliteDialector(path string) (gorm.Dialector, error) {
	dsn := "file::memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, CreateDataDirError(filepath.Dir(path), err)
		}
		dsn = "file:" + path
	}
	dsn += "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
}

func (g *gormOperator) postgresDialector(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) (gorm.Dialector, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, NewConnectionError(*cfg, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, NewConnectionError(*cfg, err)
	}
	g.pool = pool

	return postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), nil
}

func (g *gormOperator) mysqlDialector(cfg *config.DatabaseConfig) gorm.Dialector {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)
	return mysql.Open(dsn)
}

// Close releases all database connections.
func (g *gormOperator) Close() error {
	var err error
	if g.sqlDB != nil {
		err = g.sqlDB.Close()
		g.sqlDB = nil
	}
	if g.pool != nil {
		g.pool.Close()
		g.pool = nil
	}
	g.gdb = nil
	return err
}

// DB returns the GORM handle.
func (g *gormOperator) DB() *gorm.DB {
	return g.gdb
}

// Driver returns the connected backend name.
func (g *gormOperator) Driver() string {
	return g.driver
}

// HasTables checks if the database has any cardlab tables.
func (g *gormOperator) HasTables(ctx context.Context) (bool, error) {
	if g.gdb == nil {
		return false, NotConnectedError()
	}

	m := g.gdb.WithContext(ctx).Migrator()
	for _, v := range schema.AllModels() {
		if m.HasTable(v) {
			return true, nil
		}
	}
	return false, nil
}

// DropAllTables drops all cardlab tables.
func (g *gormOperator) DropAllTables(ctx context.Context) error {
	if g.gdb == nil {
		return NotConnectedError()
	}

	m := g.gdb.WithContext(ctx).Migrator()
	for _, v := range schema.AllModels() {
		if err := m.DropTable(v); err != nil {
			return DropTableError(fmt.Sprintf("%T", v), err)
		}
	}
	return nil
}
