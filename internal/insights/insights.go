// Package insights derives summaries from fetched finance data.
package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/api"
)

// Uncategorized names expenses that carry no category.
const Uncategorized = "Uncategorized"

const dateLayout = "2006-01-02"

// CategoryShare is one category's slice of total expense.
type CategoryShare struct {
	Category string
	Amount   float64
	Count    int
	Percent  float64
}

// Totals is the income/expense rollup of a transaction list.
type Totals struct {
	Income      float64
	Expense     float64
	Net         float64
	SavingsRate float64 // percent of income kept
}

// CategoryBreakdown groups expenses by category, largest first.
// Income transactions are ignored.
func CategoryBreakdown(txs []api.Transaction) []CategoryShare {
	byCat := make(map[string]*CategoryShare)
	var total float64

	for _, t := range txs {
		if t.Type != api.Expense {
			continue
		}
		cat := strings.TrimSpace(t.Category)
		if cat == "" {
			cat = Uncategorized
		}
		cs, ok := byCat[cat]
		if !ok {
			cs = &CategoryShare{Category: cat}
			byCat[cat] = cs
		}
		cs.Amount += t.Amount
		cs.Count++
		total += t.Amount
	}

	shares := make([]CategoryShare, 0, len(byCat))
	for _, cs := range byCat {
		if total > 0 {
			cs.Percent = cs.Amount / total * 100
		}
		shares = append(shares, *cs)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// Summarize totals income and expense.
func Summarize(txs []api.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case api.Income:
			t.Income += tx.Amount
		case api.Expense:
			t.Expense += tx.Amount
		}
	}
	t.Net = t.Income - t.Expense
	if t.Income > 0 {
		t.SavingsRate = t.Net / t.Income * 100
	}
	return t
}

// FilterByDate returns transactions dated within [since, until). Zero bounds
// are open. Transactions with unparseable dates are dropped when a bound is set.
func FilterByDate(txs []api.Transaction, since, until time.Time) []api.Transaction {
	if since.IsZero() && until.IsZero() {
		return txs
	}

	var result []api.Transaction
	for _, t := range txs {
		d, err := time.ParseInLocation(dateLayout, t.Date, time.Local)
		if err != nil {
			continue
		}
		if !since.IsZero() && d.Before(since) {
			continue
		}
		if !until.IsZero() && !d.Before(until) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// MonthStart returns midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
