package report

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("chart: no data")

// WriteBarChart renders one bar per label and saves the image to path. The
// image format follows the file extension. Missing values are drawn as zero.
func WriteBarChart(labels []string, values []float64, title, path string) error {
	if len(labels) == 0 || len(labels) != len(values) {
		return ErrNoChartData
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Mean earnings (USD)"

	bars := make(plotter.Values, len(values))
	maxValue := 0.0
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		bars[i] = v
		maxValue = math.Max(maxValue, v)
	}

	chart, err := plotter.NewBarChart(bars, vg.Points(24))
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	chart.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	chart.LineStyle.Width = vg.Length(0)
	p.Add(chart)

	for i, v := range bars {
		label, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: float64(i), Y: v + maxValue*0.02}},
			Labels: []string{fmt.Sprintf("%.0f", v)},
		})
		if err == nil {
			p.Add(label)
		}
	}

	p.NominalX(labels...)
	if len(labels) > 6 {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	p.Y.Min = 0
	p.Y.Max = maxValue * 1.15
	if p.Y.Max == 0 {
		p.Y.Max = 1
	}
	p.Add(plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	return nil
}
