package analysis

import (
	"fmt"
	"time"

	"tally/internal/core"
)

// InsightKind labels the behavior an insight reports.
type InsightKind string

const (
	HighSpending    InsightKind = "high_spending"
	IncreasingTrend InsightKind = "increasing_trend"
)

// Insight is a derived observation about category-level spending. It is
// transient: produced per call, handed to the presentation layer, never
// persisted.
type Insight struct {
	Kind     InsightKind
	Category core.Category
	Amount   core.Money
	// Previous is the prior-month sum; only set for IncreasingTrend.
	Previous core.Money
	Message  string
}

// Trend insights need a crude amount of history before month-over-month
// comparison is worth reporting. The gate counts records, not months.
const minTrendRecords = 30

// Spending thresholds: a category is "high" above 1.5x the mean of the
// current month's category sums, and "increasing" above 1.3x its own
// prior-month sum.
const (
	highSpendingFactor    = 1.5
	increasingTrendFactor = 1.3
)

// detectInsights flags categories with above-average or rapidly rising
// spend in the current calendar month. All HighSpending insights come
// first, then all IncreasingTrend insights, each group in category
// declaration order.
func detectInsights(records []core.Expense, now time.Time) []Insight {
	var insights []Insight
	if len(records) == 0 {
		return insights
	}

	current := FilterWindow(records, CurrentMonthWindow(now))
	currentByCat := CategoryTotals(current)
	if len(currentByCat) == 0 {
		return insights
	}

	var totalCents int64
	for _, ct := range currentByCat {
		totalCents += ct.Total.Cents
	}
	mean := float64(totalCents) / float64(len(currentByCat))

	for _, ct := range currentByCat {
		if float64(ct.Total.Cents) > mean*highSpendingFactor {
			insights = append(insights, Insight{
				Kind:     HighSpending,
				Category: ct.Category,
				Amount:   ct.Total,
				Message:  fmt.Sprintf("High spending detected in %s", ct.Category),
			})
		}
	}

	if len(records) > minTrendRecords {
		previous := FilterWindow(records, PreviousMonthWindow(now))
		prevSums := make(map[core.Category]int64)
		for _, ct := range CategoryTotals(previous) {
			prevSums[ct.Category] = ct.Total.Cents
		}
		// Categories present only in the current month have no baseline and
		// never trigger a trend insight.
		for _, ct := range currentByCat {
			prev, ok := prevSums[ct.Category]
			if !ok {
				continue
			}
			if float64(ct.Total.Cents) > float64(prev)*increasingTrendFactor {
				insights = append(insights, Insight{
					Kind:     IncreasingTrend,
					Category: ct.Category,
					Amount:   ct.Total,
					Previous: core.Money{Cents: prev},
					Message:  fmt.Sprintf("Spending in %s is increasing", ct.Category),
				})
			}
		}
	}

	return insights
}
