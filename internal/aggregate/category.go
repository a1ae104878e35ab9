package aggregate

import (
	"strings"

	"findash/internal/core"
)

// OtherCategory is the display bucket for unknown expense categories.
const OtherCategory = "Other"

var knownCategories = []string{"Office", "Software", "Rent", "Travel", "Marketing"}

// Categories lists the display categories in order, OtherCategory last.
func Categories() []string {
	return append(append([]string(nil), knownCategories...), OtherCategory)
}

// NormalizeCategory maps free text onto a display category. Matching is
// case-insensitive; anything unknown becomes OtherCategory.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	for _, c := range knownCategories {
		if strings.EqualFold(s, c) {
			return c
		}
	}
	return OtherCategory
}

// ExpensesByCategory totals the expenses dated in year per display
// category, in Categories order. Every category is listed, zero or not.
func ExpensesByCategory(year int, expenses []core.Expense) []core.CategoryTotal {
	sums := make(map[string]core.Money)
	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		c := NormalizeCategory(e.Category)
		sums[c] = sums[c].Add(e.Amount)
	}
	out := make([]core.CategoryTotal, 0, len(knownCategories)+1)
	for _, c := range Categories() {
		out = append(out, core.CategoryTotal{Category: c, Amount: sums[c]})
	}
	return out
}
