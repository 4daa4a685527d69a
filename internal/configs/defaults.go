package configs

import (
	"path/filepath"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultPageSize      = 250
	DefaultTopN          = 30
	DefaultSource        = SourceCoinGecko
	DefaultTimeout       = time.Duration(0) // transport default
	DefaultStoreBackend  = BackendFile
	DefaultStoreDir      = "."
	DefaultSQLiteDSNFile = "artifacts.db"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"

	// MaxPageSize is the largest per_page the markets endpoint accepts.
	MaxPageSize = 250
)

const (
	SourceCoinGecko = "coingecko"
	SourceBinance   = "binance"

	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

func (c *Config) applyDefaults() {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.TopN == 0 {
		c.TopN = DefaultTopN
	}

	if c.Source.Name == "" {
		c.Source.Name = DefaultSource
	}

	if c.Store.Backend == "" {
		c.Store.Backend = DefaultStoreBackend
	}
	if c.Store.Dir == "" {
		c.Store.Dir = DefaultStoreDir
	}
	if c.Store.DSN == "" && c.Store.Backend == BackendSQLite {
		c.Store.DSN = filepath.Join(c.Store.Dir, "data", DefaultSQLiteDSNFile)
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
