package data

import (
	"context"

	"github.com/songzhibin97/cryptogainers/internal/models"
)

// DataCollector 负责从行情源拉取数据
type DataCollector interface {
	// Fetch retrieves one page of market records, at most limit long.
	// Failures are returned as *FetchError.
	Fetch(ctx context.Context, limit int) ([]models.CoinRecord, error)
}

// DataStorage 处理产物的持久化
type DataStorage interface {
	// Put stores data under key, replacing any previous value, and returns
	// where it ended up (a file path or a backend URI).
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)

	// Get returns the bytes stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
}
