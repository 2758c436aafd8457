package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver selects the storage backend.
// Valid values: "sqlite", "postgres", "mysql".
func OptDatabaseDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the database server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the database server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabasePath sets the SQLite database file.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptServerHost sets the interface the API listens on.
func OptServerHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Host", s) {
			c.Server.Host = s
		}
	}
}

// OptServerPort sets the API port.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptServerAllowedOrigins replaces the CORS origin list.
// Blank entries are dropped; an empty result is ignored.
func OptServerAllowedOrigins(ss []string) Option {
	var origins []string
	for _, v := range ss {
		v = strings.TrimSpace(v)
		if v != "" {
			origins = append(origins, v)
		}
	}
	return func(c *Config) {
		if len(origins) > 0 {
			c.Server.AllowedOrigins = origins
		}
	}
}

// OptServerRequestTimeout sets the per-request deadline in seconds.
func OptServerRequestTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Request Timeout", i) {
			c.Server.RequestTimeout = i
		}
	}
}

// OptEventsRedisEnabled switches change events to Redis pub/sub.
func OptEventsRedisEnabled(b bool) Option {
	return func(c *Config) {
		c.Events.RedisEnabled = b
	}
}

// OptEventsRedisAddr sets host:port of the Redis server.
func OptEventsRedisAddr(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Events Redis Address", s) {
			c.Events.RedisAddr = s
		}
	}
}

// OptEventsRedisPassword sets the Redis password.
func OptEventsRedisPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Events Redis Password", s) {
			c.Events.RedisPassword = s
		}
	}
}

// OptEventsRedisDB sets the Redis logical database.
// Zero is a valid database number.
func OptEventsRedisDB(i int) Option {
	return func(c *Config) {
		if i >= 0 {
			c.Events.RedisDB = i
		}
	}
}

// OptEventsChannel sets the pub/sub channel for change events.
func OptEventsChannel(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Events Channel", s) {
			c.Events.Channel = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
