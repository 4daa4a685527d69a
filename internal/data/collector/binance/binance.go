package binance

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/adshao/go-binance/v2"

	"github.com/songzhibin97/cryptogainers/internal/models"
)

const (
	DefaultBaseURL    = "https://api.binance.com"
	DefaultQuoteAsset = "USDT"
)

// BinanceDataSource reads the public 24h ticker statistics. The venue has no
// market cap, so pairs are ranked by quote volume and MarketCap stays 0.
type BinanceDataSource struct {
	client     *binance.Client
	quoteAsset string
}

func NewBinanceDataSource() *BinanceDataSource {
	return &BinanceDataSource{
		client:     binance.NewClient("", ""),
		quoteAsset: DefaultQuoteAsset,
	}
}

// SetEndpoint points the source at another REST base URL, mainly for tests.
func (b *BinanceDataSource) SetEndpoint(baseURL string, httpClient *http.Client) {
	b.client.BaseURL = baseURL
	if httpClient != nil {
		b.client.HTTPClient = httpClient
	}
}

func (b *BinanceDataSource) Name() string {
	return "binance"
}

type ranked struct {
	record      models.CoinRecord
	quoteVolume float64
}

func (b *BinanceDataSource) MarketRecords(ctx context.Context, limit int) ([]models.CoinRecord, error) {
	stats, err := b.client.NewListPriceChangeStatsService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	candidates := make([]ranked, 0, len(stats))
	for _, s := range stats {
		if s == nil || !strings.HasSuffix(s.Symbol, b.quoteAsset) {
			continue
		}
		base := strings.TrimSuffix(s.Symbol, b.quoteAsset)
		if base == "" {
			continue
		}

		price, err := strconv.ParseFloat(s.LastPrice, 64)
		if err != nil {
			continue
		}
		quoteVolume, err := strconv.ParseFloat(s.QuoteVolume, 64)
		if err != nil {
			continue
		}

		record := models.CoinRecord{
			ID:           strings.ToLower(base),
			Name:         base,
			Symbol:       strings.ToLower(base),
			CurrentPrice: price,
		}
		if change, err := strconv.ParseFloat(s.PriceChangePercent, 64); err == nil {
			record.PriceChangePercentage24h = models.Float64(change)
		}

		candidates = append(candidates, ranked{record: record, quoteVolume: quoteVolume})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].quoteVolume > candidates[j].quoteVolume
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	records := make([]models.CoinRecord, len(candidates))
	for i, c := range candidates {
		records[i] = c.record
	}
	return records, nil
}
