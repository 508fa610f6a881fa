package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNothingToChart = errors.New("nothing to chart")

var chartPalette = []drawing.Color{
	drawing.ColorFromHex("f7931a"), // orange
	drawing.ColorFromHex("627eea"), // indigo
	drawing.ColorFromHex("e31937"), // red
	drawing.ColorFromHex("10b981"), // green
	drawing.ColorFromHex("f59e0b"), // amber
	drawing.ColorFromHex("8b5cf6"), // violet
	drawing.ColorFromHex("0ea5e9"), // sky
}

func paletteColor(i int) drawing.Color { return chartPalette[i%len(chartPalette)] }

// formatMoney renders v in the currency's own format, e.g. $46,200.00.
func formatMoney(v decimal.Decimal, code string) string {
	cur := money.New(0, code).Currency()
	minor := v.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// RenderAllocationChart renders the allocation slices as a PNG pie chart.
// Slices with no value are left out.
func RenderAllocationChart(slices []AllocationSlice, currency string) ([]byte, error) {
	values := make([]chart.Value, 0, len(slices))
	for i, s := range slices {
		if !s.Value.IsPositive() {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s", s.Label, formatMoney(s.Value, currency)),
			Value: s.Value.InexactFloat64(),
			Style: chart.Style{FillColor: paletteColor(i)},
		})
	}
	if len(values) == 0 {
		return nil, ErrNothingToChart
	}

	graph := chart.PieChart{
		Title:  "Allocation",
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderOutlookChart renders one line per series across the outlook horizons.
func RenderOutlookChart(series []OutlookSeries, currency string) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNothingToChart
	}

	ticks := make([]chart.Tick, len(outlookHorizons))
	for i, hz := range outlookHorizons {
		ticks[i] = chart.Tick{Value: float64(i), Label: hz}
	}

	lines := make([]chart.Series, 0, len(series))
	minY, maxY := 0.0, 0.0
	first := true
	for i, s := range series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = float64(j)
			ys[j] = p.Price.InexactFloat64()
			if first || ys[j] < minY {
				minY = ys[j]
			}
			if first || ys[j] > maxY {
				maxY = ys[j]
			}
			first = false
		}
		lines = append(lines, chart.ContinuousSeries{
			Name: s.Symbol,
			Style: chart.Style{
				StrokeColor: paletteColor(i),
				StrokeWidth: 2,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	if first {
		return nil, ErrNothingToChart
	}
	if minY == maxY {
		// go-chart cannot scale a zero-height range
		minY, maxY = minY-1, maxY+1
	}

	graph := chart.Chart{
		Title:  "Price outlook",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return formatMoney(decimal.NewFromFloat(f), currency)
				}
				return ""
			},
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
