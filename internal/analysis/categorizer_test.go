package analysis

import (
	"testing"

	"tally/internal/core"
)

func TestCategorize(t *testing.T) {
	table := DefaultKeywordTable()

	cases := []struct {
		in   string
		want core.Category
	}{
		{"Lunch at McDonalds", core.Food},
		{"Lunch at McDonald's", core.Food}, // apostrophe defeats "mcdonalds", "lunch" still scores
		{"STARBUCKS COFFEE", core.Food},
		{"uber ride downtown", core.Transportation},
		{"uber eats delivery", core.Food}, // "uber eats"+"delivery" outweigh "uber"
		{"amazon purchase", core.Shopping},
		{"netflix subscription", core.Entertainment},
		{"electric bill payment", core.Bills},
		{"dentist appointment", core.Healthcare},
		{"college tuition fees", core.Education},
		{"flight to vegas", core.Travel},
		{"xyzzy", core.Other},
		{"", core.Other},
		{"   ", core.Other},
	}
	for _, tc := range cases {
		if got := table.Categorize(tc.in); got != tc.want {
			t.Errorf("Categorize(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestCategorizeKeywordCountsOnce(t *testing.T) {
	table := NewKeywordTable().
		Add(core.Food, "pizza").
		Add(core.Shopping, "shop", "buy")

	// "pizza" repeated scores 5 once; "shop"+"buy" scores 7.
	if got := table.Categorize("pizza pizza pizza shop buy"); got != core.Shopping {
		t.Errorf("repeated keyword should count once, got %s", got)
	}
}

func TestCategorizeTieGoesToFirstDeclared(t *testing.T) {
	table := NewKeywordTable().
		Add(core.Food, "abcd").
		Add(core.Travel, "wxyz")

	if got := table.Categorize("abcd wxyz"); got != core.Food {
		t.Errorf("tie should go to first-declared category, got %s", got)
	}
}

func TestCategorizeLongerKeywordWins(t *testing.T) {
	table := DefaultKeywordTable()

	// "restaurant" (10) outweighs "car" (3).
	if got := table.Categorize("restaurant visit by car"); got != core.Food {
		t.Errorf("longer keyword should dominate, got %s", got)
	}
}

func TestDefaultKeywordTableCategories(t *testing.T) {
	got := DefaultKeywordTable().Categories()
	want := []core.Category{
		core.Food, core.Transportation, core.Shopping, core.Entertainment,
		core.Bills, core.Healthcare, core.Education, core.Travel,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
