// Package chart draws the gainers bar chart and stores it as a PNG.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/songzhibin97/cryptogainers/internal/data"
	"github.com/songzhibin97/cryptogainers/internal/models"
)

const (
	Width  = 14 * vg.Inch
	Height = 7 * vg.Inch
	DPI    = 100

	keyPrefix   = "charts/top_gainers_chart_"
	keySuffix   = ".png"
	contentType = "image/png"
)

var (
	barColor      = color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}
	subtitleColor = color.RGBA{R: 0x00, G: 0x33, B: 0x66, A: 0xff}
)

// RenderError wraps anything that went wrong while building, encoding or
// storing a chart. No chart artifact exists when it is returned.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render chart: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

type Renderer struct {
	store  data.DataStorage
	logger Logger
	title  string
}

// NewRenderer titles every chart after topN, the configured ranking size.
func NewRenderer(store data.DataStorage, logger Logger, topN int) *Renderer {
	return &Renderer{
		store:  store,
		logger: logger,
		title:  fmt.Sprintf("Top %d Crypto Gainers (24h Change)", topN),
	}
}

// Key returns the store key of the chart for a timestamp key.
func Key(timestamp string) string {
	return keyPrefix + timestamp + keySuffix
}

// Render draws entries, possibly none, and stores the PNG under
// Key(timestamp). Every failure, panics from the plotting code included,
// comes back as *RenderError and is logged here.
func (r *Renderer) Render(ctx context.Context, entries []models.GainerEntry, timestamp string) (loc string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			loc, err = "", &RenderError{Err: fmt.Errorf("panic: %v", rec)}
		}
		if err != nil {
			r.logger.Error("Chart generation failed", "error", err)
		}
	}()

	p, err := NewPlot(entries, r.title)
	if err != nil {
		return "", &RenderError{Err: err}
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, p, "Data captured on: "+timestamp); err != nil {
		return "", &RenderError{Err: err}
	}

	loc, err = r.store.Put(ctx, Key(timestamp), contentType, buf.Bytes())
	if err != nil {
		return "", &RenderError{Err: err}
	}

	r.logger.Info("Saved chart as " + loc)
	return loc, nil
}

// NewPlot builds the bar chart: uppercased symbols on X in selection order,
// unrounded 24h change on Y, one colour for every bar and a "%.1f%%" label
// just above each bar. No entries gives titled, empty axes.
func NewPlot(entries []models.GainerEntry, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Coin Symbol"
	p.Y.Label.Text = "24h % Change"
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if len(entries) == 0 {
		p.X.Tick.Marker = plot.ConstantTicks(nil)
		return p, nil
	}

	names := make([]string, len(entries))
	values := make(plotter.Values, len(entries))
	points := make(plotter.XYs, len(entries))
	texts := make([]string, len(entries))
	for i, e := range entries {
		names[i] = strings.ToUpper(e.Symbol)
		values[i] = e.PriceChangePercentage24h
		points[i] = plotter.XY{X: float64(i), Y: e.PriceChangePercentage24h}
		texts[i] = fmt.Sprintf("%.1f%%", e.PriceChangePercentage24h)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("build bars: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("build labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
	}
	labels.Offset = vg.Point{Y: vg.Points(2)}
	p.Add(labels)

	return p, nil
}

// WritePNG draws p on a Width x Height canvas with subtitle centred in a
// band above the plot title, and encodes it as PNG.
func WritePNG(w io.Writer, p *plot.Plot, subtitle string) error {
	img := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))
	dc := draw.New(img)

	sty := p.Title.TextStyle
	sty.Font.Size = vg.Points(16)
	sty.Color = subtitleColor
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop

	pad := vg.Points(8)
	band := sty.Height(subtitle) + 2*pad

	dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y - pad}, subtitle)
	p.Draw(draw.Crop(dc, 0, 0, 0, -band))

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
