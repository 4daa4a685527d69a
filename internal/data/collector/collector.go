package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/songzhibin97/cryptogainers/internal/data"
	"github.com/songzhibin97/cryptogainers/internal/models"
)

// Collector implements data.DataCollector on top of a single DataSource.
type Collector struct {
	source DataSource
	logger Logger
}

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

type DataSource interface {
	Name() string
	// MarketRecords returns at most limit records from page 1 of the
	// source's USD market listing.
	MarketRecords(ctx context.Context, limit int) ([]models.CoinRecord, error)
}

func NewCollector(source DataSource, logger Logger) *Collector {
	return &Collector{
		source: source,
		logger: logger,
	}
}

// Fetch implements data.DataCollector. It logs exactly one line per call and
// wraps every failure in *data.FetchError.
func (c *Collector) Fetch(ctx context.Context, limit int) ([]models.CoinRecord, error) {
	if limit <= 0 {
		err := &data.FetchError{Source: c.source.Name(), Err: fmt.Errorf("limit must be positive, got %d", limit)}
		c.logger.Error("Failed to fetch coin data", "source", c.source.Name(), "error", err)
		return nil, err
	}

	records, err := c.source.MarketRecords(ctx, limit)
	if err != nil {
		var fe *data.FetchError
		if !errors.As(err, &fe) {
			err = &data.FetchError{Source: c.source.Name(), Err: err}
		}
		c.logger.Error("Failed to fetch coin data", "source", c.source.Name(), "error", err)
		return nil, err
	}

	c.logger.Info(fmt.Sprintf("Successfully fetched market data for %d coins.", limit),
		"source", c.source.Name(), "received", len(records))
	return records, nil
}
