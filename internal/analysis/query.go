package analysis

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tally/internal/core"
)

var (
	// ErrNoData means the snapshot was empty; there is nothing to query.
	ErrNoData = errors.New("no expense data available to query")
	// ErrQueryNotUnderstood means no intent produced a result. It is a
	// normal outcome, distinct from an internal failure.
	ErrQueryNotUnderstood = errors.New("could not understand the query, please try rephrasing it")
	// ErrAnalysisUnavailable is the recovered form of any internal fault
	// during analysis. Replaying the same call will fail identically, so
	// nothing retries on it.
	ErrAnalysisUnavailable = errors.New("analysis unavailable")
)

// Intent is the classified purpose of a natural-language query.
type Intent string

const (
	IntentSum     Intent = "sum"
	IntentAverage Intent = "average"
	IntentMax     Intent = "max"
	IntentMin     Intent = "min"
	IntentSummary Intent = "summary"
)

// Previews are capped: never the full filtered set.
const (
	previewLimit = 10
	extremaLimit = 5
)

// QueryResult is the transient answer to one query.
type QueryResult struct {
	Intent  Intent         `json:"intent"`
	Amount  core.Money     `json:"amount"`
	Details string         `json:"details"`
	Matches []core.Expense `json:"matches"`
}

// timePhrases is scanned in fixed priority order; the first phrase present
// in the query wins regardless of its position in the query text. All
// windows are open-ended except "last month", which is bounded on both
// sides. "last year" anchors on January 1st of the prior year and therefore
// also spans the current year; that quirk is part of the contract.
var timePhrases = []struct {
	phrase string
	window func(now time.Time) Window
}{
	{"last week", func(now time.Time) Window { return Window{Start: dayUTC(now).AddDate(0, 0, -7)} }},
	{"last month", PreviousMonthWindow},
	{"this month", func(now time.Time) Window { return Window{Start: monthStart(now)} }},
	{"this year", func(now time.Time) Window {
		return Window{Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)}
	}},
	{"last year", func(now time.Time) Window {
		return Window{Start: time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, time.UTC)}
	}},
}

// queryContext carries the filtered snapshot plus the extracted qualifiers
// into the intent handlers.
type queryContext struct {
	records  []core.Expense
	period   string
	category core.Category
}

func (q queryContext) categoryText() string {
	if q.category == "" {
		return ""
	}
	return " on " + string(q.category)
}

func (q queryContext) periodText() string {
	if q.period == "" {
		return ""
	}
	return " " + q.period
}

// intentRule pairs a trigger predicate with its handler. Rules are evaluated
// in declaration order and the first match wins; a matching rule whose
// handler yields nothing falls through to ErrQueryNotUnderstood rather than
// trying later rules.
type intentRule struct {
	intent   Intent
	triggers []string
	answer   func(q queryContext) (QueryResult, bool)
}

func (r intentRule) matches(lowered string) bool {
	if len(r.triggers) == 0 {
		return true // fallback rule
	}
	for _, t := range r.triggers {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

var intentRules = []intentRule{
	{IntentSum, []string{"how much", "total", "spent", "spending"}, answerSum},
	{IntentAverage, []string{"average", "avg"}, answerAverage},
	{IntentMax, []string{"highest", "maximum", "max", "most expensive"}, answerMax},
	{IntentMin, []string{"lowest", "minimum", "min", "cheapest"}, answerMin},
	{IntentSummary, nil, answerSummary},
}

// answerQuery interprets a natural-language question over the snapshot:
// time-window extraction, then category extraction, then intent
// classification, in that order, single pass, no backtracking.
func answerQuery(table *KeywordTable, question string, records []core.Expense, now time.Time) (QueryResult, error) {
	if len(records) == 0 {
		return QueryResult{}, ErrNoData
	}
	lowered := strings.ToLower(question)

	q := queryContext{records: records}
	for _, tp := range timePhrases {
		if strings.Contains(lowered, tp.phrase) {
			q.records = FilterWindow(q.records, tp.window(now))
			q.period = tp.phrase
			break
		}
	}
	// At most one category filter; scan follows the keyword table order.
	for _, cat := range table.Categories() {
		if strings.Contains(lowered, strings.ToLower(string(cat))) {
			q.records = FilterCategory(q.records, cat)
			q.category = cat
			break
		}
	}

	for _, rule := range intentRules {
		if !rule.matches(lowered) {
			continue
		}
		res, ok := rule.answer(q)
		if !ok {
			return QueryResult{}, ErrQueryNotUnderstood
		}
		res.Intent = rule.intent
		return res, nil
	}
	return QueryResult{}, ErrQueryNotUnderstood
}

func answerSum(q queryContext) (QueryResult, bool) {
	total := Sum(q.records)
	return QueryResult{
		Amount:  total,
		Details: fmt.Sprintf("Total spending%s%s: %s", q.categoryText(), q.periodText(), total),
		Matches: firstN(q.records, previewLimit),
	}, true
}

func answerAverage(q queryContext) (QueryResult, bool) {
	avg := Mean(q.records)
	return QueryResult{
		Amount:  avg,
		Details: fmt.Sprintf("Average spending%s%s: %s", q.categoryText(), q.periodText(), avg),
		Matches: firstN(q.records, previewLimit),
	}, true
}

func answerMax(q queryContext) (QueryResult, bool) {
	if len(q.records) == 0 {
		return QueryResult{}, false
	}
	top := q.records[0]
	for _, e := range q.records[1:] {
		if e.Amount.Cents > top.Amount.Cents {
			top = e
		}
	}
	return QueryResult{
		Amount:  top.Amount,
		Details: fmt.Sprintf("Highest expense: %s - %s on %s", top.Description, top.Amount, top.Date.ISO()),
		Matches: sortedByAmount(q.records, extremaLimit, true),
	}, true
}

func answerMin(q queryContext) (QueryResult, bool) {
	if len(q.records) == 0 {
		return QueryResult{}, false
	}
	bottom := q.records[0]
	for _, e := range q.records[1:] {
		if e.Amount.Cents < bottom.Amount.Cents {
			bottom = e
		}
	}
	return QueryResult{
		Amount:  bottom.Amount,
		Details: fmt.Sprintf("Lowest expense: %s - %s on %s", bottom.Description, bottom.Amount, bottom.Date.ISO()),
		Matches: sortedByAmount(q.records, extremaLimit, false),
	}, true
}

func answerSummary(q queryContext) (QueryResult, bool) {
	if len(q.records) == 0 {
		return QueryResult{}, false
	}
	total := Sum(q.records)
	return QueryResult{
		Amount:  total,
		Details: fmt.Sprintf("Found %d expenses totaling %s", len(q.records), total),
		Matches: firstN(q.records, previewLimit),
	}, true
}

// firstN copies the first n records so results never alias the snapshot.
func firstN(records []core.Expense, n int) []core.Expense {
	if len(records) < n {
		n = len(records)
	}
	out := make([]core.Expense, n)
	copy(out, records)
	return out
}

// sortedByAmount returns up to n records ordered by amount, descending when
// desc is set. Ties keep the snapshot order.
func sortedByAmount(records []core.Expense, n int, desc bool) []core.Expense {
	out := make([]core.Expense, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Amount.Cents < out[j].Amount.Cents
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
