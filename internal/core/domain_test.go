package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2026-03-15", "2026-03-15", true},
		{"03/15/2026", "2026-03-15", true},
		{"15/03/2026", "2026-03-15", true},
		{"2026/03/15", "2026-03-15", true},
		{" 2026-03-15 ", "2026-03-15", true},
		// Ambiguous day/month resolves to the first matching layout (US).
		{"03/04/2026", "2026-03-04", true},
		{"not a date", "", false},
		{"", "", false},
		{"2026-13-40", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tc.in, err)
			}
			if got.ISO() != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got.ISO(), tc.want)
			}
		} else if err == nil {
			t.Errorf("ParseDate(%q) expected error", tc.in)
		}
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, cat := range Categories() {
		if !cat.IsValid() {
			t.Errorf("%s should be valid", cat)
		}
	}
	if Category("Groceries").IsValid() {
		t.Error("Groceries should not be valid")
	}
	if Category("").IsValid() {
		t.Error("empty category should not be valid")
	}
}

func TestCategoriesOrder(t *testing.T) {
	got := Categories()
	want := []Category{Food, Transportation, Shopping, Entertainment, Bills, Healthcare, Education, Travel, Other}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Description: "Lunch at cafe",
		Amount:      Money{Cents: 1250},
		Category:    Food,
		Date:        NewDate(2026, 3, 15),
	}

	cases := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr error
	}{
		{"valid", func(e *Expense) {}, nil},
		{"empty description", func(e *Expense) { e.Description = "  " }, ErrEmptyDescription},
		{"zero amount", func(e *Expense) { e.Amount.Cents = 0 }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount.Cents = -100 }, ErrInvalidAmount},
		{"unknown category", func(e *Expense) { e.Category = "Misc" }, ErrInvalidCategory},
		{"zero date", func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.mutate(&e)
			err := e.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got error %v, want %v", err, tc.wantErr)
			}
		})
	}

	t.Run("description too long", func(t *testing.T) {
		e := valid
		e.Description = strings.Repeat("x", 201)
		if err := e.Validate(); err == nil {
			t.Fatal("expected error for 201-char description")
		}
	})
}

func TestSanitizeDescription(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  coffee  ", "coffee"},
		{"two\t words", "two words"},
		{"a\x00b", "ab"},
		{"multi   spaces   here", "multi spaces here"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeDescription(tc.in); got != tc.want {
			t.Errorf("SanitizeDescription(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a longer text", 10, "this is..."},
		{"abcdef", 3, "abc"},
	}
	for _, tc := range cases {
		if got := TruncateText(tc.in, tc.max); got != tc.want {
			t.Errorf("TruncateText(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
