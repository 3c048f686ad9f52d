// Package analysis implements the analytical engine over expense snapshots:
// keyword categorization, month-over-month comparison, trend forecasting,
// category insights and a rule-based natural-language query interpreter.
//
// Every operation is a pure function over a read-only snapshot supplied by
// the caller; the package holds no state beyond the static keyword table.
package analysis

import (
	"strings"

	"tally/internal/core"
)

// KeywordTable maps categories to their lowercase trigger keywords. It is
// built once at startup and never mutated; iteration follows the insertion
// order, which doubles as the tie-break order for categorization.
type KeywordTable struct {
	order    []core.Category
	keywords map[core.Category][]string
}

// NewKeywordTable builds a table from category/keyword pairs. Categories
// keep the order in which they are added.
func NewKeywordTable() *KeywordTable {
	return &KeywordTable{keywords: make(map[core.Category][]string)}
}

// Add registers trigger keywords for a category. Keywords are lowercased;
// adding to an existing category appends.
func (t *KeywordTable) Add(cat core.Category, words ...string) *KeywordTable {
	if _, seen := t.keywords[cat]; !seen {
		t.order = append(t.order, cat)
	}
	for _, w := range words {
		t.keywords[cat] = append(t.keywords[cat], strings.ToLower(w))
	}
	return t
}

// Categories returns the table's categories in insertion order.
func (t *KeywordTable) Categories() []core.Category {
	return t.order
}

// DefaultKeywordTable returns the built-in trigger keyword lists. Other has
// no keywords: it is the fallback, never a scored candidate.
func DefaultKeywordTable() *KeywordTable {
	return NewKeywordTable().
		Add(core.Food,
			"restaurant", "food", "lunch", "dinner", "breakfast", "snack", "coffee", "pizza",
			"burger", "sandwich", "takeout", "delivery", "grocery", "supermarket", "cafe",
			"mcdonalds", "starbucks", "subway", "kfc", "dominos", "uber eats", "doordash").
		Add(core.Transportation,
			"gas", "fuel", "uber", "taxi", "bus", "train", "metro", "parking",
			"toll", "car", "vehicle", "maintenance", "repair", "lyft", "transport").
		Add(core.Shopping,
			"amazon", "store", "shop", "retail", "clothes", "clothing", "shoes",
			"electronics", "gadget", "online", "purchase", "buy", "walmart", "target").
		Add(core.Entertainment,
			"movie", "cinema", "theater", "concert", "game", "sport", "gym",
			"netflix", "spotify", "entertainment", "subscription", "hobby").
		Add(core.Bills,
			"electric", "water", "internet", "phone", "rent", "mortgage", "insurance",
			"utility", "bill", "payment", "subscription", "service").
		Add(core.Healthcare,
			"doctor", "hospital", "medicine", "pharmacy", "medical", "health",
			"dentist", "clinic", "prescription", "treatment").
		Add(core.Education,
			"school", "college", "university", "course", "book", "education",
			"learning", "tuition", "fees", "class").
		Add(core.Travel,
			"hotel", "flight", "vacation", "trip", "travel", "booking", "airbnb",
			"resort", "cruise", "tour")
}

// Categorize maps a free-text description to the best-fit category. Each
// category is scored by summing the length of every keyword found as a
// substring of the lowercased description, so specific tokens outweigh
// generic ones ("restaurant" beats "food"). A keyword counts at most once
// no matter how often it occurs. The strictly highest score wins; ties go
// to the first-declared category. Blank input or an all-zero score yields
// Other.
func (t *KeywordTable) Categorize(description string) core.Category {
	if strings.TrimSpace(description) == "" {
		return core.Other
	}
	lower := strings.ToLower(description)

	best := core.Other
	bestScore := 0
	for _, cat := range t.order {
		score := t.score(lower, cat)
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}
	if bestScore == 0 {
		return core.Other
	}
	return best
}

// score sums the lengths of the category's keywords present in the
// lowercased description.
func (t *KeywordTable) score(lowered string, cat core.Category) int {
	score := 0
	for _, kw := range t.keywords[cat] {
		if strings.Contains(lowered, kw) {
			score += len(kw)
		}
	}
	return score
}
