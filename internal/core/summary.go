package core

import "sort"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
	Count  int
}

// Summary aggregates a set of transactions, typically the rows picked in
// selection mode.
type Summary struct {
	Count      int
	Total      Money
	ByCategory []CategoryAmount
}

// Summarize totals txns overall and per category. Categories are ordered by
// amount descending, then by name.
func Summarize(txns []Transaction) Summary {
	var s Summary
	index := make(map[string]int)
	for _, t := range txns {
		s.Count++
		s.Total = s.Total.Add(t.Amount)

		i, ok := index[t.Category]
		if !ok {
			i = len(s.ByCategory)
			index[t.Category] = i
			s.ByCategory = append(s.ByCategory, CategoryAmount{Name: t.Category})
		}
		s.ByCategory[i].Amount = s.ByCategory[i].Amount.Add(t.Amount)
		s.ByCategory[i].Count++
	}

	sort.SliceStable(s.ByCategory, func(a, b int) bool {
		ca, cb := s.ByCategory[a], s.ByCategory[b]
		if ca.Amount.Cents != cb.Amount.Cents {
			return ca.Amount.Cents > cb.Amount.Cents
		}
		return ca.Name < cb.Name
	})
	return s
}
