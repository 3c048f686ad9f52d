package analysis

import (
	"math"

	"tally/internal/core"
)

// Forecasting needs a minimum of history before a line fit means anything:
// at least three records overall and two distinct calendar months.
const (
	minForecastRecords = 3
	minForecastMonths  = 2
)

// forecastNextMonth fits an ordinary-least-squares line over chronological
// monthly totals and extrapolates one month past the last observed one. The
// prediction is clamped at zero. The boolean is false when there is not
// enough history for a fit; that is an expected outcome, not an error.
//
// This is a best-effort heuristic: two or three months of history produce
// low-confidence extrapolations, and no confidence interval is reported.
func forecastNextMonth(records []core.Expense) (core.Money, bool) {
	if len(records) < minForecastRecords {
		return core.Money{}, false
	}
	months := MonthlyTotals(records)
	if len(months) < minForecastMonths {
		return core.Money{}, false
	}

	// Fit amount = slope*index + intercept over indices 0..n-1.
	n := float64(len(months))
	var sumX, sumY, sumXY, sumXX float64
	for i, m := range months {
		x := float64(i)
		y := float64(m.Total.Cents)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return core.Money{}, false
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	// Predict at the month immediately following the last observed one.
	predicted := slope*n + intercept
	if predicted < 0 {
		predicted = 0
	}
	return core.Money{Cents: int64(math.Round(predicted))}, true
}
