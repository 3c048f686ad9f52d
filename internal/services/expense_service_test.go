package services

import (
	"context"
	"errors"
	"testing"

	"tally/internal/core"
	"tally/internal/storage"
)

// fakeStore keeps expenses in memory, newest first like the SQLite
// repository.
type fakeStore struct {
	nextID   int64
	expenses map[int64]core.Expense
	closed   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, expenses: make(map[int64]core.Expense)}
}

func (f *fakeStore) Create(ctx context.Context, e core.Expense) (int64, error) {
	id := f.nextID
	f.nextID++
	e.ID = id
	f.expenses[id] = e
	return id, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (core.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return core.Expense{}, storage.ErrNotFound
	}
	return e, nil
}

func (f *fakeStore) Update(ctx context.Context, e core.Expense) error {
	if _, ok := f.expenses[e.ID]; !ok {
		return storage.ErrNotFound
	}
	f.expenses[e.ID] = e
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.expenses[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]core.Expense, error) {
	var out []core.Expense
	for id := f.nextID - 1; id >= 1; id-- {
		if e, ok := f.expenses[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByCategory(ctx context.Context, cat core.Category) ([]core.Expense, error) {
	all, _ := f.ListAll(ctx)
	var out []core.Expense
	for _, e := range all {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	all, _ := f.ListAll(ctx)
	var out []core.Expense
	for _, e := range all {
		if !e.Date.Before(start.Time) && !e.Date.After(end.Time) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) Summarize(ctx context.Context, year, month int) (storage.MonthSummary, error) {
	all, _ := f.ListAll(ctx)
	var summary storage.MonthSummary
	for _, e := range all {
		if e.Date.Year() != year || int(e.Date.Month()) != month {
			continue
		}
		summary.Total.Cents += e.Amount.Cents
		summary.Count++
	}
	if summary.Count > 0 {
		summary.Average.Cents = summary.Total.Cents / int64(summary.Count)
	}
	return summary, nil
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

func validExpense() core.Expense {
	return core.Expense{
		Description: "lunch at cafe",
		Amount:      core.Money{Cents: 1250},
		Category:    core.Food,
		Date:        core.NewDate(2026, 3, 15),
	}
}

func TestCreateExpense(t *testing.T) {
	store := newFakeStore()
	svc := NewExpenseService(store, nil)

	created, err := svc.CreateExpense(context.Background(), validExpense())
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("id = %d, want 1", created.ID)
	}
	if len(store.expenses) != 1 {
		t.Errorf("store has %d records, want 1", len(store.expenses))
	}
}

func TestCreateExpenseSanitizes(t *testing.T) {
	store := newFakeStore()
	svc := NewExpenseService(store, nil)

	e := validExpense()
	e.Description = "  spaced   out\x00  "
	created, err := svc.CreateExpense(context.Background(), e)
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if created.Description != "spaced out" {
		t.Errorf("description = %q, want %q", created.Description, "spaced out")
	}
}

func TestCreateExpenseRejectsInvalid(t *testing.T) {
	svc := NewExpenseService(newFakeStore(), nil)

	cases := []struct {
		name    string
		mutate  func(e *core.Expense)
		wantErr error
	}{
		{"empty description", func(e *core.Expense) { e.Description = "" }, core.ErrEmptyDescription},
		{"zero amount", func(e *core.Expense) { e.Amount.Cents = 0 }, core.ErrInvalidAmount},
		{"bad category", func(e *core.Expense) { e.Category = "Misc" }, core.ErrInvalidCategory},
		{"zero date", func(e *core.Expense) { e.Date = core.Date{} }, core.ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validExpense()
			tc.mutate(&e)
			if _, err := svc.CreateExpense(context.Background(), e); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdateExpense(t *testing.T) {
	store := newFakeStore()
	svc := NewExpenseService(store, nil)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, validExpense())
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	created.Description = "brunch"
	if err := svc.UpdateExpense(ctx, created); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	got, err := svc.GetExpense(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	if got.Description != "brunch" {
		t.Errorf("description = %q", got.Description)
	}

	missing := validExpense()
	missing.ID = 9999
	if err := svc.UpdateExpense(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	store := newFakeStore()
	svc := NewExpenseService(store, nil)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, validExpense())
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if err := svc.DeleteExpense(ctx, created.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if _, err := svc.GetExpense(ctx, created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSnapshotNewestFirst(t *testing.T) {
	store := newFakeStore()
	svc := NewExpenseService(store, nil)
	ctx := context.Background()

	for _, desc := range []string{"first", "second", "third"} {
		e := validExpense()
		e.Description = desc
		if _, err := svc.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense: %v", err)
		}
	}

	got, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(got) != 3 || got[0].Description != "third" || got[2].Description != "first" {
		t.Errorf("Snapshot = %+v", got)
	}
}

func TestCloseClosesStore(t *testing.T) {
	store := newFakeStore()
	svc := NewExpenseService(store, nil)
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !store.closed {
		t.Error("store not closed")
	}
}
