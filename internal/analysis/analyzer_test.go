package analysis

import (
	"errors"
	"testing"
	"time"

	"tally/internal/core"
)

func testAnalyzer(now time.Time) *Analyzer {
	a := NewAnalyzer(nil)
	a.now = func() time.Time { return now }
	return a
}

func TestAnalyzerMonthlySpending(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	a := testAnalyzer(now)

	records := []core.Expense{
		exp("current", 3000, core.Food, 2026, 3, 10),
		exp("previous", 2000, core.Food, 2026, 2, 10),
		exp("old", 9000, core.Travel, 2025, 6, 1),
	}

	m, ok := a.AnalyzeMonthlySpending(records)
	if !ok {
		t.Fatal("expected analysis")
	}
	if m.CurrentMonth.Cents != 3000 {
		t.Errorf("current = %d, want 3000", m.CurrentMonth.Cents)
	}
	if m.PreviousMonth.Cents != 2000 {
		t.Errorf("previous = %d, want 2000", m.PreviousMonth.Cents)
	}
	if m.PercentChange != 50 {
		t.Errorf("percent change = %v, want 50", m.PercentChange)
	}
}

func TestAnalyzerMonthlySpendingNonUTCClock(t *testing.T) {
	records := []core.Expense{
		exp("rent", 100000, core.Bills, 2026, 3, 1),
		exp("bus pass", 5000, core.Transportation, 2026, 2, 28),
	}

	a := testAnalyzer(time.Date(2026, 3, 20, 12, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60)))
	m, ok := a.AnalyzeMonthlySpending(records)
	if !ok {
		t.Fatal("expected analysis")
	}
	if m.CurrentMonth.Cents != 100000 {
		t.Errorf("current = %d, want 100000", m.CurrentMonth.Cents)
	}

	a = testAnalyzer(time.Date(2026, 3, 20, 12, 0, 0, 0, time.FixedZone("UTC+9", 9*60*60)))
	m, ok = a.AnalyzeMonthlySpending(records)
	if !ok {
		t.Fatal("expected analysis")
	}
	if m.PreviousMonth.Cents != 5000 {
		t.Errorf("previous = %d, want 5000", m.PreviousMonth.Cents)
	}
}

func TestAnalyzerMonthlySpendingEmpty(t *testing.T) {
	a := testAnalyzer(time.Now())
	if _, ok := a.AnalyzeMonthlySpending(nil); ok {
		t.Error("expected ok=false for empty snapshot")
	}
}

func TestAnalyzerIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	a := testAnalyzer(now)

	records := []core.Expense{
		exp("jan", 10000, core.Food, 2026, 1, 15),
		exp("feb", 20000, core.Food, 2026, 2, 15),
		exp("mar", 30000, core.Food, 2026, 3, 15),
	}

	first, ok1 := a.PredictNextMonth(records)
	second, ok2 := a.PredictNextMonth(records)
	if ok1 != ok2 || first != second {
		t.Errorf("same snapshot, different results: %v/%v vs %v/%v", first, ok1, second, ok2)
	}

	r1, err1 := a.AnswerQuery("total spending", records)
	r2, err2 := a.AnswerQuery("total spending", records)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if r1.Amount != r2.Amount || r1.Details != r2.Details {
		t.Errorf("same query, different answers: %+v vs %+v", r1, r2)
	}
}

func TestAnalyzerQueryErrors(t *testing.T) {
	a := testAnalyzer(time.Now())

	if _, err := a.AnswerQuery("total", nil); !errors.Is(err, ErrNoData) {
		t.Errorf("got %v, want ErrNoData", err)
	}

	records := []core.Expense{exp("lunch", 1000, core.Food, 2026, 3, 1)}
	if _, err := a.AnswerQuery("highest travel expense last week", records); !errors.Is(err, ErrQueryNotUnderstood) {
		t.Errorf("got %v, want ErrQueryNotUnderstood", err)
	}
}

func TestAnalyzerCategorizeMatchesTable(t *testing.T) {
	a := NewAnalyzer(nil)
	if got := a.Categorize("dinner at restaurant"); got != core.Food {
		t.Errorf("got %s, want Food", got)
	}
	if got := a.Categorize(""); got != core.Other {
		t.Errorf("got %s, want Other", got)
	}
}
