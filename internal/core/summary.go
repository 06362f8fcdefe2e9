package core

import "sort"

// CategorySummary is one aggregation row: the total and count of expenses
// sharing a resolved category name.
type CategorySummary struct {
	CategoryName string  `json:"category_name"`
	Total        float64 `json:"total"`
	Count        int     `json:"count"`
}

// SummarizeByCategory reduces expense rows to per-category totals, ordered by
// descending total. Rows without a resolvable category group under the
// fallback name. The sort is stable: categories with equal totals keep the
// order in which they were first encountered. The function holds no state and
// is deterministic for a given input.
func SummarizeByCategory(expenses []Expense) []CategorySummary {
	index := make(map[string]int, len(expenses))
	out := make([]CategorySummary, 0, len(expenses))
	for _, e := range expenses {
		name := e.CategoryName
		if name == "" {
			name = FallbackCategoryName
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CategorySummary{CategoryName: name})
		}
		out[i].Total += e.Amount
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}
