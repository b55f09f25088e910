// Package plot draws price series into PNG line charts.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"github.com/raykavin/cryptopallab/pkg/core"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrEmptySeries is returned when there is nothing to draw.
var ErrEmptySeries = errors.New("empty price series")

var (
	priceColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	smaColor   = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// Chart renders price series as PNG images.
type Chart struct {
	width     vg.Length
	height    vg.Length
	smaPeriod int
}

// Option configures a Chart.
type Option func(*Chart)

// WithSize sets the image size in inches.
func WithSize(width, height float64) Option {
	return func(c *Chart) {
		c.width = vg.Length(width) * vg.Inch
		c.height = vg.Length(height) * vg.Inch
	}
}

// WithSMA overlays a simple moving average of the given period. Zero
// disables the overlay.
func WithSMA(period int) Option {
	return func(c *Chart) {
		c.smaPeriod = period
	}
}

func NewChart(options ...Option) *Chart {
	c := &Chart{
		width:     8 * vg.Inch,
		height:    3 * vg.Inch,
		smaPeriod: 24,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Render draws series under title with date and price axes and returns
// the encoded PNG.
func (c *Chart) Render(title string, series core.ChartSeries) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Price (USD)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan 02"}
	p.Add(plotter.NewGrid())

	priceLine, err := plotter.NewLine(toXYs(series, series.Prices(), 0))
	if err != nil {
		return nil, fmt.Errorf("price line: %w", err)
	}
	priceLine.Color = priceColor
	priceLine.Width = vg.Points(1.5)
	p.Add(priceLine)

	if sma := SMA(series.Prices(), c.smaPeriod); sma != nil {
		smaLine, err := plotter.NewLine(toXYs(series, sma, c.smaPeriod-1))
		if err != nil {
			return nil, fmt.Errorf("sma line: %w", err)
		}
		smaLine.Color = smaColor
		smaLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(smaLine)
		p.Legend.Add("price", priceLine)
		p.Legend.Add(fmt.Sprintf("SMA %d", c.smaPeriod), smaLine)
		p.Legend.Top = true
	}

	w, err := p.WriterTo(c.width, c.height, "png")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write chart: %w", err)
	}
	return buf.Bytes(), nil
}

// toXYs pairs values[from:] with the timestamps of series[from:].
func toXYs(series core.ChartSeries, values []float64, from int) plotter.XYs {
	pts := make(plotter.XYs, 0, len(series)-from)
	for i := from; i < len(series); i++ {
		pts = append(pts, plotter.XY{X: float64(series[i].Time.Unix()), Y: values[i]})
	}
	return pts
}
