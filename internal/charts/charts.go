// Package charts renders dashboard PNGs with go-chart.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"tally/internal/analysis"
)

// Generator renders the dashboard charts.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// MonthlyTrend renders monthly spending totals as a time series line.
// Returns nil bytes when there are fewer than two months to plot.
func (g *Generator) MonthlyTrend(months []analysis.MonthTotal) ([]byte, error) {
	if len(months) < 2 {
		return nil, nil
	}

	xValues := make([]time.Time, len(months))
	yValues := make([]float64, len(months))
	for i, m := range months {
		xValues[i] = time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
		yValues[i] = m.Total.Dollars()
	}

	graph := chart.Chart{
		Width:  1000,
		Height: 500,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("$%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Monthly spending",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}

// CategoryDistribution renders per-category totals as a pie chart.
// Returns nil bytes when there is nothing to plot.
func (g *Generator) CategoryDistribution(totals []analysis.CategoryTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, len(totals))
	for i, ct := range totals {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%s)", ct.Category, ct.Total),
			Value: ct.Total.Dollars(),
		}
	}

	graph := chart.PieChart{
		Width:  700,
		Height: 700,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category chart: %w", err)
	}
	return buf.Bytes(), nil
}
