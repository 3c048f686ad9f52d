package services

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/events"
	"tally/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, e core.Expense) (int64, error)
	GetByID(ctx context.Context, id int64) (core.Expense, error)
	Update(ctx context.Context, e core.Expense) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]core.Expense, error)
	ListByCategory(ctx context.Context, cat core.Category) ([]core.Expense, error)
	ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error)
	Summarize(ctx context.Context, year, month int) (storage.MonthSummary, error)
	Close() error
}

// ExpenseService orchestrates expense operations across SQLite and the
// AMQP event stream.
type ExpenseService struct {
	store  Store
	events *events.Client
}

func NewExpenseService(store Store, eventsClient *events.Client) *ExpenseService {
	return &ExpenseService{
		store:  store,
		events: eventsClient,
	}
}

// CreateExpense validates and saves an expense, then publishes a
// created event.
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.Description = core.SanitizeDescription(e.Description)
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	id, err := s.store.Create(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	e.ID = id

	s.publish(ctx, events.KindExpenseCreated, id)
	return e, nil
}

// GetExpense returns a single expense by id.
func (s *ExpenseService) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateExpense validates and rewrites an existing expense, then
// publishes an updated event.
func (s *ExpenseService) UpdateExpense(ctx context.Context, e core.Expense) error {
	e.Description = core.SanitizeDescription(e.Description)
	if err := e.Validate(); err != nil {
		return err
	}

	if err := s.store.Update(ctx, e); err != nil {
		return err
	}

	s.publish(ctx, events.KindExpenseUpdated, e.ID)
	return nil
}

// DeleteExpense removes an expense and publishes a deleted event.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.KindExpenseDeleted, id)
	return nil
}

// Snapshot returns every stored expense, newest first. The analysis
// operations all run against a full snapshot.
func (s *ExpenseService) Snapshot(ctx context.Context) ([]core.Expense, error) {
	return s.store.ListAll(ctx)
}

// ListByCategory returns expenses in a single category, newest first.
func (s *ExpenseService) ListByCategory(ctx context.Context, cat core.Category) ([]core.Expense, error) {
	return s.store.ListByCategory(ctx, cat)
}

// ListByDateRange returns expenses between start and end inclusive.
func (s *ExpenseService) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	return s.store.ListByDateRange(ctx, start, end)
}

// Summarize aggregates a calendar month directly in SQL.
func (s *ExpenseService) Summarize(ctx context.Context, year, month int) (storage.MonthSummary, error) {
	return s.store.Summarize(ctx, year, month)
}

// publish emits an expense event when the stream is configured. The
// write already succeeded locally, so publish failures only log.
func (s *ExpenseService) publish(ctx context.Context, kind events.Kind, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, kind, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"kind", kind, "id", id, "error", err)
	}
}

// Close closes both storage and the event stream.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}

	return nil
}
