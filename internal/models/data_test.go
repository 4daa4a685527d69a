package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinRecord_DecodeNullChange(t *testing.T) {
	raw := `[
		{"id":"alpha","name":"Alpha","symbol":"alp","current_price":10,"price_change_percentage_24h":5.2,"market_cap":1000},
		{"id":"beta","name":"Beta","symbol":"bet","current_price":20,"price_change_percentage_24h":null,"market_cap":2000},
		{"id":"gamma","name":"Gamma","symbol":"gam","current_price":5,"market_cap":null}
	]`

	var records []CoinRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	require.Len(t, records, 3)

	assert.True(t, records[0].HasChange())
	assert.Equal(t, 5.2, *records[0].PriceChangePercentage24h)
	assert.False(t, records[1].HasChange())
	assert.False(t, records[2].HasChange())
	assert.Zero(t, records[2].MarketCap)
}

func TestGainerEntry_FieldOrder(t *testing.T) {
	b, err := json.Marshal(GainerEntry{Name: "Alpha", Symbol: "alp", CurrentPrice: 10, PriceChangePercentage24h: 5.2, MarketCap: 1000})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Alpha","symbol":"alp","current_price":10,"price_change_percentage_24h":5.2,"market_cap":1000}`, string(b))
}

func TestTimestampKey(t *testing.T) {
	ts := time.Date(2024, time.March, 9, 7, 5, 59, 0, time.UTC)
	assert.Equal(t, "2024-03-09_07-05", TimestampKey(ts))
	assert.Equal(t, TimestampKey(ts), TimestampKey(ts.Add(-30*time.Second)))
}
