package postgres

import "time"

// Option configures Client.
type Option func(*Config)

// Config holds Postgres client configuration.
type Config struct {
	DSN            string
	MinConns       int32
	MaxConns       int32
	DialTimeout    time.Duration
	SimpleProtocol bool // for PgBouncer transaction pooling
}

// WithDSN sets the connection string.
func WithDSN(dsn string) Option {
	return func(c *Config) {
		c.DSN = dsn
	}
}

// WithPoolBounds sets min and max pool connections.
func WithPoolBounds(min, max int32) Option {
	return func(c *Config) {
		c.MinConns = min
		c.MaxConns = max
	}
}

// WithDialTimeout sets the connect timeout.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.DialTimeout = d
	}
}

// WithSimpleProtocol forces the simple query protocol.
func WithSimpleProtocol(simple bool) Option {
	return func(c *Config) {
		c.SimpleProtocol = simple
	}
}
