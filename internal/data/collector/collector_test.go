package collector

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/cryptogainers/internal/data"
	"github.com/songzhibin97/cryptogainers/internal/models"
)

type fakeSource struct {
	records []models.CoinRecord
	err     error
	calls   int
	limit   int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) MarketRecords(ctx context.Context, limit int) ([]models.CoinRecord, error) {
	f.calls++
	f.limit = limit
	return f.records, f.err
}

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(msg string, fields ...interface{})  { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Error(msg string, fields ...interface{}) { l.errors = append(l.errors, msg) }

func TestCollector_Fetch(t *testing.T) {
	records := []models.CoinRecord{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", CurrentPrice: 60000, PriceChangePercentage24h: models.Float64(1.5), MarketCap: 1.2e12},
	}

	tests := []struct {
		name       string
		source     *fakeSource
		limit      int
		wantErr    bool
		wantCalls  int
		wantInfos  int
		wantErrors int
	}{
		{
			name:      "success",
			source:    &fakeSource{records: records},
			limit:     250,
			wantCalls: 1,
			wantInfos: 1,
		},
		{
			name:       "source failure",
			source:     &fakeSource{err: errors.New("connection refused")},
			limit:      250,
			wantErr:    true,
			wantCalls:  1,
			wantErrors: 1,
		},
		{
			name:       "non positive limit",
			source:     &fakeSource{records: records},
			limit:      0,
			wantErr:    true,
			wantCalls:  0,
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			c := NewCollector(tt.source, logger)

			got, err := c.Fetch(context.Background(), tt.limit)

			assert.Equal(t, tt.wantCalls, tt.source.calls)
			assert.Len(t, logger.infos, tt.wantInfos)
			assert.Len(t, logger.errors, tt.wantErrors)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, data.IsFetchError(err))
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, records, got)
			assert.Equal(t, tt.limit, tt.source.limit)
			assert.Equal(t, "Successfully fetched market data for 250 coins.", logger.infos[0])
		})
	}
}

func TestCollector_KeepsSourceFetchError(t *testing.T) {
	inner := &data.FetchError{Source: "upstream", Err: fmt.Errorf("unexpected status code: %d", 503)}
	c := NewCollector(&fakeSource{err: inner}, &recordingLogger{})

	_, err := c.Fetch(context.Background(), 10)

	var fe *data.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Same(t, inner, fe)
}
