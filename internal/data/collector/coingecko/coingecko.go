package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/songzhibin97/cryptogainers/internal/models"
	"github.com/songzhibin97/cryptogainers/internal/utils/request"
)

const (
	DefaultBaseURL   = "https://api.coingecko.com/api/v3"
	DefaultUserAgent = "Mozilla/5.0"
)

type CoinGeckoDataSource struct {
	baseURL    string
	userAgent  string
	httpClient *resty.Client
	logger     Logger
}

type Logger interface {
	Debug(msg string, fields ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

type Option func(*CoinGeckoDataSource)

func WithBaseURL(u string) Option {
	return func(s *CoinGeckoDataSource) {
		if u != "" {
			s.baseURL = u
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(s *CoinGeckoDataSource) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

func WithClient(c *resty.Client) Option {
	return func(s *CoinGeckoDataSource) {
		if c != nil {
			s.httpClient = c
		}
	}
}

func WithLogger(l Logger) Option {
	return func(s *CoinGeckoDataSource) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewCoinGeckoDataSource(opts ...Option) *CoinGeckoDataSource {
	s := &CoinGeckoDataSource{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: request.Request,
		logger:     nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CoinGeckoDataSource) Name() string {
	return "coingecko"
}

// coin is the wire shape of one /coins/markets element.
type coin struct {
	ID                       *string  `json:"id"`
	Name                     *string  `json:"name"`
	Symbol                   *string  `json:"symbol"`
	CurrentPrice             *float64 `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	MarketCap                *float64 `json:"market_cap"`
}

// MarketRecords issues GET /coins/markets for page 1, USD, market cap descending.
func (s *CoinGeckoDataSource) MarketRecords(ctx context.Context, limit int) ([]models.CoinRecord, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("User-Agent", s.userAgent).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"order":       "market_cap_desc",
			"per_page":    strconv.Itoa(limit),
			"page":        "1",
		}).
		Get(s.baseURL + "/coins/markets")
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var coins []coin
	if err := json.Unmarshal(resp.Body(), &coins); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	skipped := 0
	records := make([]models.CoinRecord, 0, len(coins))
	for _, c := range coins {
		if c.Name == nil || *c.Name == "" || c.Symbol == nil || *c.Symbol == "" {
			skipped++
			continue
		}
		records = append(records, models.CoinRecord{
			ID:                       deref(c.ID),
			Name:                     *c.Name,
			Symbol:                   *c.Symbol,
			CurrentPrice:             derefFloat(c.CurrentPrice),
			PriceChangePercentage24h: c.PriceChangePercentage24h,
			MarketCap:                derefFloat(c.MarketCap),
		})
	}

	if skipped > 0 {
		s.logger.Debug("skipped malformed coin records", "source", s.Name(), "skipped", skipped)
	}

	return records, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
