// Package ledger is the pure aggregation layer. It turns flat transaction
// lists into the day-grouped view model the transaction history renders,
// and chart rows into per-category totals. It performs no I/O and keeps no
// state; every function is safe to call concurrently.
package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"lana/internal/categories"
	"lana/internal/core"
)

type (
	// DayGroup aggregates every transaction sharing one calendar date.
	// Derived data, never persisted.
	DayGroup struct {
		Key        string // YYYY-MM-DD
		DayOfMonth string // zero-padded, e.g. "05"
		Weekday    string // Spanish weekday name
		Income     decimal.Decimal
		Expense    decimal.Decimal
		Items      []Item
	}

	// Item is a transaction with its category resolved for display.
	Item struct {
		core.Transaction
		CategoryLabel string
	}
)

// GroupByDay groups transactions by the calendar date of their datetime,
// in the timestamp's own zone, and resolves each item's category label
// through ix.
//
// Per group, Income is the sum of positive amounts and Expense the sum of
// absolute values of negative amounts; a zero amount lands in neither total
// but stays in the item list. Groups come back sorted by key descending
// (most recent day first); items keep the order they were encountered in.
//
// Every transaction must carry a valid datetime. That is enforced upstream
// when records are normalized, but grouping by a zero time would silently
// file the record under year 1, so it is rejected here too.
func GroupByDay(txs []core.Transaction, ix categories.Index) ([]DayGroup, error) {
	groups := make(map[string]*DayGroup)
	for _, tx := range txs {
		if tx.Datetime.IsZero() {
			return nil, fmt.Errorf("transaction %q: %w", tx.ID, core.ErrInvalidDatetime)
		}
		y, m, d := tx.Datetime.Date()
		key := fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)

		g, ok := groups[key]
		if !ok {
			g = &DayGroup{
				Key:        key,
				DayOfMonth: fmt.Sprintf("%02d", d),
				Weekday:    core.WeekdayName(tx.Datetime),
				Income:     decimal.Zero,
				Expense:    decimal.Zero,
			}
			groups[key] = g
		}

		switch {
		case tx.IsExpense():
			g.Expense = g.Expense.Add(tx.Amount.Abs())
		case tx.IsIncome():
			g.Income = g.Income.Add(tx.Amount)
		}

		g.Items = append(g.Items, Item{
			Transaction:   tx,
			CategoryLabel: resolveLabel(tx, ix),
		})
	}

	out := make([]DayGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	// Lexicographic descending on YYYY-MM-DD is chronological descending.
	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out, nil
}

// resolveLabel prefers the name embedded on the record, then the lookup
// map, then the placeholder form.
func resolveLabel(tx core.Transaction, ix categories.Index) string {
	if tx.CategoryName != "" {
		return tx.CategoryName
	}
	return ix.DisplayName(tx.Category)
}

// Totals sums income and expense across a set of day groups, for the
// month-header card.
func Totals(groups []DayGroup) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, g := range groups {
		income = income.Add(g.Income)
		expense = expense.Add(g.Expense)
	}
	return income, expense
}

// BudgetTotal sums the budgets registered for the given month (1-12).
func BudgetTotal(budgets []core.Budget, month int) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		if b.Month == month {
			total = total.Add(b.Amount)
		}
	}
	return total
}
