package finance

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

// AllCategories disables the category and type predicates.
const AllCategories = "all"

// TransactionFilter selects transactions for the list view. Zero values match
// everything.
type TransactionFilter struct {
	Search   string
	Category string
	Type     string
}

// Match reports whether t passes every predicate of the filter.
func (f TransactionFilter) Match(t core.Transaction) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			return false
		}
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, AllCategories) {
		if !strings.EqualFold(t.Category, c) {
			return false
		}
	}
	if ty := strings.TrimSpace(f.Type); ty != "" && !strings.EqualFold(ty, AllCategories) {
		if !strings.EqualFold(string(t.Type), ty) {
			return false
		}
	}
	return true
}

// FilterTransactions returns the transactions matching f in input order.
func FilterTransactions(txs []core.Transaction, f TransactionFilter) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// CategoryAmount is the total spent in one category.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// SpendingByCategory totals settled expenses per category, largest first.
func SpendingByCategory(txs []core.Transaction) []CategoryAmount {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != core.Expense || !t.Settled() {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	out := make([]CategoryAmount, 0, len(totals))
	for c, amt := range totals {
		out = append(out, CategoryAmount{Category: c, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// RecentTransactions returns up to limit transactions, newest date first.
// A non-positive limit returns all of them.
func RecentTransactions(txs []core.Transaction, limit int) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
