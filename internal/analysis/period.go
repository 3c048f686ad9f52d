package analysis

import (
	"math"
	"time"

	"tally/internal/core"
)

// Window is an inclusive [Start, End] date window. A zero End means the
// window is open-ended toward the future.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d core.Date) bool {
	if d.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && d.After(w.End) {
		return false
	}
	return true
}

// Stored dates are midnight UTC, so window bounds must be too: building
// them in now's location shifts the boundary by the zone offset and a
// record dated exactly on the boundary falls out of the window.

// dayUTC maps t to midnight UTC on t's calendar day.
func dayUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthStart returns midnight UTC on the first day of t's calendar month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CurrentMonthWindow is [first day of now's month, now's calendar day].
func CurrentMonthWindow(now time.Time) Window {
	return Window{Start: monthStart(now), End: dayUTC(now)}
}

// PreviousMonthWindow is [first day of the prior month, last day of the
// prior month].
func PreviousMonthWindow(now time.Time) Window {
	first := monthStart(now)
	return Window{Start: first.AddDate(0, -1, 0), End: first.AddDate(0, 0, -1)}
}

// FilterWindow returns the records whose date falls in w, preserving the
// input order. The input is never modified.
func FilterWindow(records []core.Expense, w Window) []core.Expense {
	var out []core.Expense
	for _, e := range records {
		if w.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// FilterCategory returns the records belonging to cat, preserving order.
func FilterCategory(records []core.Expense, cat core.Category) []core.Expense {
	var out []core.Expense
	for _, e := range records {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// Sum totals the amounts of the given records.
func Sum(records []core.Expense) core.Money {
	var cents int64
	for _, e := range records {
		cents += e.Amount.Cents
	}
	return core.Money{Cents: cents}
}

// Mean returns the average amount, rounded to the nearest cent. An empty
// input yields zero, never a division fault.
func Mean(records []core.Expense) core.Money {
	if len(records) == 0 {
		return core.Money{}
	}
	mean := float64(Sum(records).Cents) / float64(len(records))
	return core.Money{Cents: int64(math.Round(mean))}
}

// PercentChange computes (current-previous)/previous*100. When previous is
// zero the result saturates: 0 if current is also zero, else 100. This is a
// placeholder for an undefined ratio, not a true infinite-growth signal.
func PercentChange(current, previous core.Money) float64 {
	if previous.Cents > 0 {
		return float64(current.Cents-previous.Cents) / float64(previous.Cents) * 100
	}
	if current.Cents == 0 {
		return 0
	}
	return 100
}

// MonthlyAnalysis compares the current calendar month against the previous
// one.
type MonthlyAnalysis struct {
	CurrentMonth  core.Money
	PreviousMonth core.Money
	PercentChange float64
}

// MonthTotal is the summed spend for one calendar month.
type MonthTotal struct {
	Year  int
	Month time.Month
	Total core.Money
}

// MonthlyTotals groups records by calendar month and returns per-month sums
// in chronological order.
func MonthlyTotals(records []core.Expense) []MonthTotal {
	sums := make(map[int]int64)
	for _, e := range records {
		key := e.Date.Year()*12 + int(e.Date.Month()) - 1
		sums[key] += e.Amount.Cents
	}
	keys := make([]int, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	// Small n: months of history, insertion sort is plenty.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	out := make([]MonthTotal, len(keys))
	for i, k := range keys {
		out[i] = MonthTotal{
			Year:  k / 12,
			Month: time.Month(k%12 + 1),
			Total: core.Money{Cents: sums[k]},
		}
	}
	return out
}

// CategoryTotal is the summed spend for one category.
type CategoryTotal struct {
	Category core.Category
	Total    core.Money
}

// CategoryTotals groups records by category and returns per-category sums
// in the fixed category declaration order, skipping absent categories.
func CategoryTotals(records []core.Expense) []CategoryTotal {
	sums := make(map[core.Category]int64)
	for _, e := range records {
		sums[e.Category] += e.Amount.Cents
	}
	var out []CategoryTotal
	for _, cat := range core.Categories() {
		if cents, ok := sums[cat]; ok {
			out = append(out, CategoryTotal{Category: cat, Total: core.Money{Cents: cents}})
		}
	}
	return out
}
