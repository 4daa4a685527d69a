package models

// CoinRecord 行情源返回的单个币种记录
type CoinRecord struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Symbol                   string   `json:"symbol"`
	CurrentPrice             float64  `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"` // nil when the source has no value
	MarketCap                float64  `json:"market_cap"`
}

// HasChange reports whether the record carries a 24h change value.
func (r CoinRecord) HasChange() bool {
	return r.PriceChangePercentage24h != nil
}

// GainerEntry 持久化的涨幅榜条目
type GainerEntry struct {
	Name                     string  `json:"name"`
	Symbol                   string  `json:"symbol"`
	CurrentPrice             float64 `json:"current_price"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	MarketCap                float64 `json:"market_cap"`
}

// Float64 returns a pointer to v. Handy for building records in sources and tests.
func Float64(v float64) *float64 {
	return &v
}
