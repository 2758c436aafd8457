// Package config provides configuration management for cardlab.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode, path
//   - Server: host, port, allowed_origins, request_timeout
//   - Events: redis_enabled, redis_addr, redis_password, redis_db, channel
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use CARDLAB_ prefix with underscores for nesting:
//
//	CARDLAB_DATABASE_DRIVER=postgres
//	CARDLAB_DATABASE_HOST=localhost
//	CARDLAB_SERVER_PORT=8000
//	CARDLAB_LOG_LEVEL=info
//	CARDLAB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete cardlab configuration.
type Config struct {
	// Database contains storage backend settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Server contains HTTP API settings.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Events contains settings of the change-event publisher.
	Events EventsConfig `mapstructure:"events" yaml:"events"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used by cascade
	// propagation and bulk import.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains storage connection parameters.
type DatabaseConfig struct {
	// Driver selects the backend.
	// Valid values: "sqlite", "postgres", "mysql".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the database server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the database server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode for PostgreSQL.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the SQLite database file. Empty means the default file in
	// the data directory. ":memory:" keeps everything in memory.
	Path string `mapstructure:"path" yaml:"path"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	// Host is the interface the API listens on.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the TCP port the API listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// AllowedOrigins lists origins accepted by CORS. The editor runs on
	// the Vite dev server by default.
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`

	// RequestTimeout is the per-request deadline in seconds.
	RequestTimeout int `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// EventsConfig contains settings for publishing change events.
type EventsConfig struct {
	// RedisEnabled switches publishing from the log to Redis pub/sub.
	RedisEnabled bool `mapstructure:"redis_enabled" yaml:"redis_enabled"`

	// RedisAddr is host:port of the Redis server.
	RedisAddr string `mapstructure:"redis_addr" yaml:"redis_addr"`

	// RedisPassword is optional.
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password"`

	// RedisDB is the Redis logical database number.
	RedisDB int `mapstructure:"redis_db" yaml:"redis_db"`

	// Channel is the pub/sub channel name.
	Channel string `mapstructure:"channel" yaml:"channel"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "cardlab",
			SSLMode:  "disable",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8000,
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://127.0.0.1:5173",
			},
			RequestTimeout: 30,
		},
		Events: EventsConfig{
			RedisAddr: "localhost:6379",
			Channel:   "cardlab:changes",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
