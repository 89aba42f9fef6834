package store

import (
	"fmt"
	"log/slog"
	"strings"
)

// Opts holds configuration options for store construction.
type Opts struct {
	DSN    string // database connection string (file path for SQLite)
	Driver string // "sqlite" or "postgres"; detected from DSN when empty
}

// Option defines a configuration option for store construction.
type Option func(*Opts)

// WithSQLiteDSN configures an SQLite store backed by the given file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
		o.Driver = "sqlite"
	}
}

// WithPostgresDSN configures a PostgreSQL store with the given DSN.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
		o.Driver = "postgres"
	}
}

// DetectDSNType classifies a DSN as "postgres" or "sqlite". File paths and
// anything not recognizably PostgreSQL are treated as SQLite.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// New constructs a store from the provided options. Without a DSN it falls
// back to the in-memory store.
func New(opts ...Option) (Store, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Debug("store.New: no DSN configured, using in-memory store")
		return NewInMemoryStore(), nil
	}
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDSNType(cfg.DSN)
	}
	switch driver {
	case "postgres":
		return NewPostgresStore(opts...)
	case "sqlite":
		return NewSQLiteStore(opts...)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}
