package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"lana/internal/core"
)

// CategoryTotal is one slice of the category charts.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// SumRows totals chart rows the way the charts screen does: every row
// counts, unparsable totals already arrived as zero.
func SumRows(rows []core.ChartRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}
	return total
}

// TotalsByCategory folds chart rows into one total per category, sorted by
// total descending so the largest slice renders first. Ties keep a stable
// name order.
func TotalsByCategory(rows []core.ChartRow) []CategoryTotal {
	byName := make(map[string]decimal.Decimal)
	order := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := byName[r.Category]; !ok {
			order = append(order, r.Category)
		}
		byName[r.Category] = byName[r.Category].Add(r.Total)
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryTotal{Name: name, Total: byName[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// FilterMonth keeps only the rows for the given month (1-12); month 0 keeps
// everything.
func FilterMonth(rows []core.ChartRow, month int) []core.ChartRow {
	if month == 0 {
		return rows
	}
	out := make([]core.ChartRow, 0, len(rows))
	for _, r := range rows {
		if r.Month == month {
			out = append(out, r)
		}
	}
	return out
}
