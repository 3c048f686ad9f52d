package core

import (
	"errors"
	"strings"
	"time"
)

// Category is one of the nine fixed expense classification labels.
type Category string

const (
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Shopping       Category = "Shopping"
	Entertainment  Category = "Entertainment"
	Bills          Category = "Bills"
	Healthcare     Category = "Healthcare"
	Education      Category = "Education"
	Travel         Category = "Travel"
	Other          Category = "Other"
)

// categories holds the closed set in declaration order. The order is part of
// the contract: tie-breaking and insight emission follow it.
var categories = []Category{
	Food,
	Transportation,
	Shopping,
	Entertainment,
	Bills,
	Healthcare,
	Education,
	Travel,
	Other,
}

// Categories returns the closed category set in declaration order.
// Callers must not mutate the returned slice.
func Categories() []Category {
	return categories
}

// IsValid reports whether c belongs to the closed category set.
// The comparison is case-sensitive; "food" is not a valid category.
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

type (
	// Date is a calendar date with day granularity. The time component is
	// always midnight UTC.
	Date struct {
		time.Time
	}

	// Money is a currency amount in cents.
	Money struct {
		Cents int64
	}

	// Expense is a single ledger record, the unit of all analysis.
	Expense struct {
		ID          int64
		Description string
		Amount      Money
		Category    Category
		Date        Date
		CreatedAt   time.Time // insertion time, ordering tie-breaker only
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidDate      = errors.New("invalid date")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day granularity.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// dateLayouts are the accepted input layouts, tried in order. The ISO form
// comes first and is the canonical storage format.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"01-02-2006",
	"02-01-2006",
}

// ParseDate parses a date string in any accepted layout. Ambiguous inputs
// (e.g. 03/04/2026) resolve to the first matching layout.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// ISO returns the canonical YYYY-MM-DD representation.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	desc := strings.TrimSpace(e.Description)
	if len(desc) == 0 {
		return ErrEmptyDescription
	}
	if len(desc) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

// SanitizeDescription collapses runs of whitespace and strips control
// characters so descriptions are safe to store and display.
func SanitizeDescription(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// TruncateText shortens s to at most max characters, appending an ellipsis
// when the text was cut.
func TruncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
