package services

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	ageHistogramBins = 20
	kdeSamples       = 200

	chartWidth  = 8 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var (
	errNoChartData = errors.New("no values to chart")

	barColor  = color.RGBA{R: 0x4C, G: 0x72, B: 0xB0, A: 0xFF}
	lineColor = color.RGBA{R: 0x1F, G: 0x3A, B: 0x68, A: 0xFF}
)

func renderAgeHistogram(ages []float64) ([]byte, error) {
	p, _, err := buildAgeHistogram(ages)
	if err != nil {
		return nil, err
	}
	return encodePNG(p)
}

// buildAgeHistogram lays out 20 equal-width bins over ages with a Gaussian KDE
// overlay scaled to counts.
func buildAgeHistogram(ages []float64) (*plot.Plot, *plotter.Histogram, error) {
	if len(ages) == 0 {
		return nil, nil, fmt.Errorf("age histogram: %w", errNoChartData)
	}

	p := plot.New()
	p.Title.Text = "Histogram of Passenger Ages"
	p.X.Label.Text = "Age"
	p.Y.Label.Text = "Count"

	values := make(plotter.Values, len(ages))
	copy(values, ages)

	hist, err := plotter.NewHist(values, ageHistogramBins)
	if err != nil {
		return nil, nil, fmt.Errorf("build age histogram: %w", err)
	}
	hist.FillColor = barColor
	hist.LineStyle.Color = color.White
	p.Add(hist)

	if curve, ok := densityCurve(ages, hist.Width); ok {
		line, err := plotter.NewLine(curve)
		if err != nil {
			return nil, nil, fmt.Errorf("build age density line: %w", err)
		}
		line.LineStyle.Color = lineColor
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("density", line)
		p.Legend.Top = true
	}

	return p, hist, nil
}

// densityCurve estimates a Gaussian KDE with Scott's bandwidth and scales it by
// n*binWidth so it sits on the count axis. ok is false when the data has no spread.
func densityCurve(xs []float64, binWidth float64) (plotter.XYs, bool) {
	if len(xs) < 2 {
		return nil, false
	}
	bw := stat.StdDev(xs, nil) * math.Pow(float64(len(xs)), -1.0/5.0)
	if bw == 0 || math.IsNaN(bw) {
		return nil, false
	}

	lo, hi := floats.Min(xs), floats.Max(xs)
	grid := floats.Span(make([]float64, kdeSamples), lo, hi)

	pts := make(plotter.XYs, len(grid))
	for i, x := range grid {
		var sum float64
		for _, xi := range xs {
			sum += distuv.UnitNormal.Prob((x - xi) / bw)
		}
		pts[i].X = x
		pts[i].Y = sum / bw * binWidth
	}
	return pts, true
}

func renderFareBoxplot(fares []float64) ([]byte, error) {
	p, _, err := buildFareBoxplot(fares)
	if err != nil {
		return nil, err
	}
	return encodePNG(p)
}

func buildFareBoxplot(fares []float64) (*plot.Plot, *plotter.BoxPlot, error) {
	if len(fares) == 0 {
		return nil, nil, fmt.Errorf("fare boxplot: %w", errNoChartData)
	}

	p := plot.New()
	p.Title.Text = "Boxplot of Ticket Fares"
	p.X.Label.Text = "fare"

	values := make(plotter.Values, len(fares))
	copy(values, fares)

	box, err := plotter.NewBoxPlot(vg.Points(120), 0, values)
	if err != nil {
		return nil, nil, fmt.Errorf("build fare boxplot: %w", err)
	}
	box.Horizontal = true
	box.FillColor = barColor
	box.GlyphStyle.Shape = draw.RingGlyph{}
	p.Add(box)
	p.HideY()

	return p, box, nil
}

func encodePNG(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("create png canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
