package app

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/songzhibin97/cryptogainers/internal/configs"
	"github.com/songzhibin97/cryptogainers/internal/data"
	"github.com/songzhibin97/cryptogainers/internal/data/collector"
	"github.com/songzhibin97/cryptogainers/internal/data/collector/binance"
	"github.com/songzhibin97/cryptogainers/internal/data/collector/coingecko"
	"github.com/songzhibin97/cryptogainers/internal/data/storage"
	"github.com/songzhibin97/cryptogainers/internal/utils/request"
)

type DebugLogger interface {
	Debug(msg string, fields ...interface{})
}

// NewDataSource returns the market source named in cfg.
func NewDataSource(cfg configs.SourceConfig, logger DebugLogger) (collector.DataSource, error) {
	switch cfg.Name {
	case configs.SourceCoinGecko:
		return coingecko.NewCoinGeckoDataSource(
			coingecko.WithBaseURL(cfg.BaseURL),
			coingecko.WithUserAgent(cfg.UserAgent),
			coingecko.WithClient(request.New(cfg.Timeout)),
			coingecko.WithLogger(logger),
		), nil
	case configs.SourceBinance:
		ds := binance.NewBinanceDataSource()
		ds.SetEndpoint(binanceBaseURL(cfg), request.New(cfg.Timeout).GetClient())
		return ds, nil
	default:
		return nil, fmt.Errorf("unknown market source %q", cfg.Name)
	}
}

func binanceBaseURL(cfg configs.SourceConfig) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return binance.DefaultBaseURL
}

// NewStorage opens the artifact store named in cfg. The returned close
// function is never nil.
func NewStorage(cfg configs.StoreConfig, runID uuid.UUID) (data.DataStorage, func() error, error) {
	nop := func() error { return nil }

	switch cfg.Backend {
	case configs.BackendFile:
		return storage.NewFileStore(cfg.Dir), nop, nil
	case configs.BackendPostgres:
		s, err := storage.NewPostgresStorage(cfg.DSN)
		if err != nil {
			return nil, nop, err
		}
		return s.WithRunID(runID), s.Close, nil
	case configs.BackendSQLite:
		s, err := storage.NewSQLiteStorage(cfg.DSN)
		if err != nil {
			return nil, nop, err
		}
		return s.WithRunID(runID), s.Close, nil
	default:
		return nil, nop, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
