package chart

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/cryptogainers/internal/data/storage"
	"github.com/songzhibin97/cryptogainers/internal/models"
)

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(msg string, fields ...interface{})  { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Error(msg string, fields ...interface{}) { l.errors = append(l.errors, msg) }

type brokenStore struct {
	panics bool
}

func (s brokenStore) Put(ctx context.Context, key, contentType string, b []byte) (string, error) {
	if s.panics {
		panic("store exploded")
	}
	return "", errors.New("permission denied")
}

func (s brokenStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("permission denied")
}

var entries = []models.GainerEntry{
	{Name: "Gamma", Symbol: "gam", CurrentPrice: 5, PriceChangePercentage24h: 12.7, MarketCap: 500},
	{Name: "Alpha", Symbol: "alp", CurrentPrice: 10, PriceChangePercentage24h: 5.2, MarketCap: 1000},
	{Name: "Delta", Symbol: "dlt", CurrentPrice: 2, PriceChangePercentage24h: -1.35, MarketCap: 50},
}

func TestKey(t *testing.T) {
	assert.Equal(t, "charts/top_gainers_chart_2024-05-06_07-08.png", Key("2024-05-06_07-08"))
}

func TestNewPlot(t *testing.T) {
	p, err := NewPlot(entries, "Top 30 Crypto Gainers (24h Change)")
	require.NoError(t, err)

	assert.Equal(t, "Top 30 Crypto Gainers (24h Change)", p.Title.Text)
	assert.Equal(t, "Coin Symbol", p.X.Label.Text)
	assert.Equal(t, "24h % Change", p.Y.Label.Text)
	assert.InDelta(t, 0.785398, p.X.Tick.Label.Rotation, 1e-6)

	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	var labels []string
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"GAM", "ALP", "DLT"}, labels)

	assert.LessOrEqual(t, p.Y.Min, -1.35)
	assert.GreaterOrEqual(t, p.Y.Max, 12.7)
}

func TestNewPlot_Empty(t *testing.T) {
	p, err := NewPlot(nil, "Top 30 Crypto Gainers (24h Change)")
	require.NoError(t, err)
	assert.Equal(t, "Top 30 Crypto Gainers (24h Change)", p.Title.Text)
	assert.Empty(t, p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max))

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, p, "Data captured on: 2024-05-06_07-08"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1400, img.Bounds().Dx())
	assert.Equal(t, 700, img.Bounds().Dy())
}

func TestRenderer_Render_NoEntries(t *testing.T) {
	root := t.TempDir()
	logger := &recordingLogger{}
	r := NewRenderer(storage.NewFileStore(root), logger, 30)

	loc, err := r.Render(context.Background(), []models.GainerEntry{}, "2024-05-06_07-08")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "charts", "top_gainers_chart_2024-05-06_07-08.png"), loc)
	assert.FileExists(t, loc)
	assert.Equal(t, []string{"Saved chart as " + loc}, logger.infos)
	assert.Empty(t, logger.errors)
}

func TestWritePNG_Dimensions(t *testing.T) {
	p, err := NewPlot(entries[:1], "Top 1 Crypto Gainers (24h Change)")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, p, "Data captured on: 2024-05-06_07-08"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1400, img.Bounds().Dx())
	assert.Equal(t, 700, img.Bounds().Dy())
}

func TestRenderer_Render(t *testing.T) {
	root := t.TempDir()
	logger := &recordingLogger{}
	r := NewRenderer(storage.NewFileStore(root), logger, 30)

	loc, err := r.Render(context.Background(), entries, "2024-05-06_07-08")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "charts", "top_gainers_chart_2024-05-06_07-08.png"), loc)
	assert.Equal(t, []string{"Saved chart as " + loc}, logger.infos)
	assert.Empty(t, logger.errors)

	f, err := os.Open(loc)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 1400, img.Bounds().Dx())

	// at least one pixel carries the bar colour
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y += 2 {
		for x := b.Min.X; x < b.Max.X; x += 2 {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r>>8 == 0 && g>>8 == 0x80 && bl>>8 == 0 {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "no bar coloured pixel in chart")
}

func TestRenderer_Failures(t *testing.T) {
	tests := []struct {
		name    string
		store   brokenStore
		entries []models.GainerEntry
	}{
		{name: "store error", entries: entries},
		{name: "store panic", store: brokenStore{panics: true}, entries: entries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			r := NewRenderer(tt.store, logger, 30)

			loc, err := r.Render(context.Background(), tt.entries, "2024-05-06_07-08")
			require.Error(t, err)
			assert.Empty(t, loc)

			var re *RenderError
			assert.True(t, errors.As(err, &re))
			assert.Equal(t, []string{"Chart generation failed"}, logger.errors)
			assert.Empty(t, logger.infos)
		})
	}
}
