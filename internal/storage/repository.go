// Package storage persists the expense ledger in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no expense exists with the requested id.
var ErrNotFound = errors.New("expense not found")

// createdAtLayout is fixed-width so lexicographic order on the stored text
// matches chronological order.
const createdAtLayout = "2006-01-02 15:04:05.000000000"

// SQLiteRepository is the expense store. All reads return records in the
// snapshot order the analytical core expects: date descending, then
// insertion time descending.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const selectColumns = `id, description, amount_cents, category, date, created_at`

// Create inserts a new expense and returns its assigned id. The CreatedAt
// field is set by the store, not the caller.
func (r *SQLiteRepository) Create(ctx context.Context, e core.Expense) (int64, error) {
	createdAt := time.Now().UTC().Format(createdAtLayout)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (description, amount_cents, category, date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Description, e.Amount.Cents, string(e.Category), e.Date.ISO(), createdAt)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category,
		"date", e.Date.ISO())

	return id, nil
}

// GetByID fetches a single expense. Returns ErrNotFound when absent.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// Update rewrites the mutable fields of an existing expense. CreatedAt and
// id are immutable. Returns ErrNotFound when the id does not exist.
func (r *SQLiteRepository) Update(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount_cents = ?, category = ?, date = ? WHERE id = ?`,
		e.Description, e.Amount.Cents, string(e.Category), e.Date.ISO(), e.ID)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an expense. Returns ErrNotFound when the id does not exist.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns the full ledger in snapshot order.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Expense, error) {
	return r.list(ctx,
		`SELECT `+selectColumns+` FROM expenses ORDER BY date DESC, created_at DESC`)
}

// ListByCategory returns one category's records, newest first.
func (r *SQLiteRepository) ListByCategory(ctx context.Context, cat core.Category) ([]core.Expense, error) {
	return r.list(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE category = ? ORDER BY date DESC, created_at DESC`,
		string(cat))
}

// ListByDateRange returns records with start <= date <= end, newest first.
func (r *SQLiteRepository) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	return r.list(ctx,
		`SELECT `+selectColumns+` FROM expenses WHERE date BETWEEN ? AND ? ORDER BY date DESC, created_at DESC`,
		start.ISO(), end.ISO())
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// CategoryBreakdown is one row of a month summary.
type CategoryBreakdown struct {
	Category core.Category `json:"category"`
	Amount   core.Money    `json:"amount"`
	Count    int           `json:"count"`
}

// MonthSummary aggregates one calendar month.
type MonthSummary struct {
	Total      core.Money          `json:"total"`
	Count      int                 `json:"count"`
	Average    core.Money          `json:"average"`
	Categories []CategoryBreakdown `json:"categories"`
}

// Summarize computes total, count, average and a per-category breakdown for
// one calendar month, largest category first.
func (r *SQLiteRepository) Summarize(ctx context.Context, year, month int) (MonthSummary, error) {
	prefix := fmt.Sprintf("%04d-%02d%%", year, month)

	var summary MonthSummary
	var avg float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0), COUNT(*), COALESCE(AVG(amount_cents), 0)
		 FROM expenses WHERE date LIKE ?`, prefix).
		Scan(&summary.Total.Cents, &summary.Count, &avg)
	if err != nil {
		return MonthSummary{}, fmt.Errorf("month totals: %w", err)
	}
	summary.Average = core.Money{Cents: int64(avg + 0.5)}

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents), COUNT(*)
		 FROM expenses WHERE date LIKE ?
		 GROUP BY category ORDER BY SUM(amount_cents) DESC`, prefix)
	if err != nil {
		return MonthSummary{}, fmt.Errorf("month categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b CategoryBreakdown
		var cat string
		if err := rows.Scan(&cat, &b.Amount.Cents, &b.Count); err != nil {
			return MonthSummary{}, fmt.Errorf("scan category row: %w", err)
		}
		b.Category = core.Category(cat)
		summary.Categories = append(summary.Categories, b)
	}
	if err := rows.Err(); err != nil {
		return MonthSummary{}, fmt.Errorf("iterate categories: %w", err)
	}
	return summary, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (core.Expense, error) {
	var (
		e         core.Expense
		cat       string
		date      string
		createdAt string
	)
	if err := s.Scan(&e.ID, &e.Description, &e.Amount.Cents, &cat, &date, &createdAt); err != nil {
		return core.Expense{}, err
	}
	e.Category = core.Category(cat)

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	e.Date = d

	t, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	e.CreatedAt = t

	return e, nil
}
