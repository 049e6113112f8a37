package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// The backend predates its own schema: numbers arrive as JSON numbers,
// quoted strings or are missing entirely, and ids are numeric or string
// depending on the table. The normalizers below coerce those partial and
// legacy shapes into the typed records the rest of the code works with.

// datetimeLayouts are tried in order when parsing transaction timestamps.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeTransaction coerces a raw transaction record. A record whose
// datetime cannot be parsed is rejected here, at the boundary, so the
// aggregator never sees an ungroupable record.
func NormalizeTransaction(raw map[string]any) (Transaction, error) {
	dt, err := parseDatetime(Stringify(raw["datetime"]))
	if err != nil {
		return Transaction{}, err
	}
	t := Transaction{
		ID:          Stringify(pick(raw, "id", "ID", "Id")),
		Amount:      coerceDecimal(raw["amount"]),
		Datetime:    dt,
		Description: Stringify(raw["description"]),
		Category:    CategoryID(Stringify(pick(raw, "category", "category_id", "categoryId"))),
	}
	// Some list endpoints embed the resolved name on the record.
	if name := Stringify(pick(raw, "category_name", "categoryName")); name != "" {
		t.CategoryName = name
	}
	return t, nil
}

// NormalizeBudget coerces a raw budget record. Unparsable numbers become
// zero; id and category pass through unchanged.
func NormalizeBudget(raw map[string]any) Budget {
	return Budget{
		ID:       Stringify(pick(raw, "id", "ID", "Id")),
		Amount:   coerceDecimal(raw["amount"]),
		Month:    coerceInt(raw["month"]),
		Category: CategoryID(Stringify(pick(raw, "category", "category_id", "categoryId"))),
	}
}

// NormalizeFixedPayment coerces a raw scheduled-transaction record. When the
// record carries no explicit time of day, the current wall-clock time is
// substituted so the payment always has a time component.
func NormalizeFixedPayment(raw map[string]any, now time.Time) FixedPayment {
	fp := FixedPayment{
		ID:          Stringify(pick(raw, "id", "ID", "Id")),
		Amount:      coerceDecimal(raw["amount"]),
		Day:         coerceInt(pick(raw, "day", "date")),
		Description: Stringify(raw["description"]),
		Category:    CategoryID(Stringify(pick(raw, "category", "category_id", "categoryId"))),
	}
	fp.Time = Stringify(raw["time"])
	if fp.Time == "" {
		fp.Time = now.Format("15:04:05")
	}
	return fp
}

// NormalizeChartRow coerces one row of the chart endpoints, which report
// Spanish field names: {mes, categoria, total}.
func NormalizeChartRow(raw map[string]any) ChartRow {
	return ChartRow{
		Month:    coerceInt(pick(raw, "mes", "month")),
		Category: Stringify(pick(raw, "categoria", "category")),
		Total:    coerceDecimal(pick(raw, "total", "amount")),
	}
}

func parseDatetime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrInvalidDatetime
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDatetime, s)
}

// pick returns the first present, non-nil value among the given keys.
func pick(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Stringify renders an id-ish value as a string. Whole floats (the default
// decoding of JSON numbers) drop their fractional part so a numeric id 5
// becomes "5", not "5.000000".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		if x == math.Trunc(x) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// coerceDecimal converts a loosely typed amount to a decimal, treating
// anything unparsable as zero (the Number(...) || 0 convention).
func coerceDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		return ParseMoney(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	default:
		return decimal.Zero
	}
}

// coerceInt converts a loosely typed integer field, unparsable becomes 0.
func coerceInt(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return int(x)
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	case string:
		i, err := strconv.Atoi(x)
		if err != nil {
			return 0
		}
		return i
	case int:
		return x
	case int64:
		return int(x)
	default:
		return 0
	}
}
