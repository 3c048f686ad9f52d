package analysis

import (
	"log/slog"
	"time"

	"tally/internal/core"
)

// Analyzer is the entry point to the analytical engine. It owns the static
// keyword table and a clock; everything else arrives per call as a
// read-only snapshot and leaves as a fresh result, so concurrent callers
// never share state.
//
// Each exported operation carries one failure boundary: any internal fault
// is recovered and converted into the operation's "no result" outcome
// instead of leaking a partial computation.
type Analyzer struct {
	table *KeywordTable
	now   func() time.Time
}

// NewAnalyzer builds an Analyzer around the given keyword table. A nil
// table gets the built-in default.
func NewAnalyzer(table *KeywordTable) *Analyzer {
	if table == nil {
		table = DefaultKeywordTable()
	}
	return &Analyzer{table: table, now: time.Now}
}

// Categorize suggests a category for a free-text description. The
// suggestion is advisory: callers validate against the closed category set
// before persisting.
func (a *Analyzer) Categorize(description string) core.Category {
	return a.table.Categorize(description)
}

// AnalyzeMonthlySpending compares current-month spend against the previous
// month. Returns ok=false for an empty snapshot or an internal fault.
func (a *Analyzer) AnalyzeMonthlySpending(records []core.Expense) (m MonthlyAnalysis, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("monthly spending analysis failed", "panic", r)
			m, ok = MonthlyAnalysis{}, false
		}
	}()
	if len(records) == 0 {
		return MonthlyAnalysis{}, false
	}
	now := a.now()
	current := Sum(FilterWindow(records, CurrentMonthWindow(now)))
	previous := Sum(FilterWindow(records, PreviousMonthWindow(now)))
	return MonthlyAnalysis{
		CurrentMonth:  current,
		PreviousMonth: previous,
		PercentChange: PercentChange(current, previous),
	}, true
}

// PredictNextMonth projects next month's total spend from a linear fit over
// monthly history. ok=false signals insufficient data or an internal fault,
// a normal outcome rather than an error.
func (a *Analyzer) PredictNextMonth(records []core.Expense) (prediction core.Money, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("spending prediction failed", "panic", r)
			prediction, ok = core.Money{}, false
		}
	}()
	return forecastNextMonth(records)
}

// DetectInsights reports category-level spending observations for the
// current month. The result may be empty; an internal fault yields nil.
func (a *Analyzer) DetectInsights(records []core.Expense) (insights []Insight) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("insight detection failed", "panic", r)
			insights = nil
		}
	}()
	return detectInsights(records, a.now())
}

// AnswerQuery interprets a natural-language question over the snapshot.
// Expected failures surface as ErrNoData or ErrQueryNotUnderstood; internal
// faults are recovered into ErrAnalysisUnavailable.
func (a *Analyzer) AnswerQuery(question string, records []core.Expense) (result QueryResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("query processing failed", "panic", r, "query", question)
			result, err = QueryResult{}, ErrAnalysisUnavailable
		}
	}()
	return answerQuery(a.table, question, records, a.now())
}
