package configs

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		errs = append(errs, fmt.Sprintf("page_size must be between 1 and %d", MaxPageSize))
	}
	if c.TopN < 1 {
		errs = append(errs, "top_n must be >= 1")
	}

	switch c.Source.Name {
	case SourceCoinGecko, SourceBinance:
	default:
		errs = append(errs, fmt.Sprintf("unknown market source %q", c.Source.Name))
	}
	if c.Source.Timeout < 0 {
		errs = append(errs, "source.timeout cannot be negative")
	}

	switch c.Store.Backend {
	case BackendFile:
	case BackendPostgres, BackendSQLite:
		if c.Store.DSN == "" {
			errs = append(errs, fmt.Sprintf("store.dsn is required for the %s backend", c.Store.Backend))
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown store backend %q", c.Store.Backend))
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
