package core

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// CategoryID is an opaque category identifier. The backend emits both
	// numeric and string ids, so it is normalized to its string form.
	CategoryID string

	Category struct {
		ID   CategoryID
		Name string
	}

	// Transaction is a single income or expense record. The sign of Amount
	// is the sole discriminator of the kind: positive means income,
	// negative means expense. There is no separate type field.
	Transaction struct {
		ID          string
		Amount      decimal.Decimal
		Datetime    time.Time
		Description string
		Category    CategoryID
		// CategoryName is set when the backend embeds the resolved name
		// directly on the record. Empty otherwise.
		CategoryName string
	}

	// FixedPayment is a monthly recurring obligation. Its date concept is
	// day-of-month only; month and year are reconstructed against the
	// current calendar at display time.
	FixedPayment struct {
		ID          string
		Amount      decimal.Decimal
		Day         int    // 1-31
		Time        string // ISO time of day, e.g. "08:30:00"
		Description string
		Category    CategoryID
	}

	Budget struct {
		ID       string
		Amount   decimal.Decimal
		Month    int // 1-12
		Category CategoryID
	}

	// ChartRow is one aggregated row from the chart endpoints.
	ChartRow struct {
		Month    int
		Category string
		Total    decimal.Decimal
	}
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrMissingCategory  = errors.New("missing category")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidDay       = errors.New("invalid day of month")
	ErrInvalidDatetime  = errors.New("invalid datetime")
	ErrConflictingSides = errors.New("an edit may change only one of income or expense")
	ErrMissingFields    = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPhone     = errors.New("invalid phone number")
)

// IsIncome reports whether the transaction counts toward the income total.
// A zero amount is neither income nor expense.
func (t Transaction) IsIncome() bool {
	return t.Amount.Sign() > 0
}

// IsExpense reports whether the transaction counts toward the expense total.
func (t Transaction) IsExpense() bool {
	return t.Amount.Sign() < 0
}

func (t Transaction) Validate() error {
	if t.Datetime.IsZero() {
		return ErrInvalidDatetime
	}
	if t.Category == "" {
		return ErrMissingCategory
	}
	return nil
}

func (f FixedPayment) Validate() error {
	if f.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if f.Day < 1 || f.Day > 31 {
		return ErrInvalidDay
	}
	if f.Category == "" {
		return ErrMissingCategory
	}
	return nil
}

// DisplayDate reconstructs a full date for the payment using the month and
// year of now. Payments recur monthly, so past and future months render as
// if they fell in the current one. Observed app behavior, kept as is.
func (f FixedPayment) DisplayDate(now time.Time) time.Time {
	hh, mm, ss := splitClock(f.Time)
	return time.Date(now.Year(), now.Month(), f.Day, hh, mm, ss, 0, now.Location())
}

func (b Budget) Validate() error {
	if b.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidMonth
	}
	if b.Category == "" {
		return ErrMissingCategory
	}
	return nil
}

// MonthNames holds the Spanish month names used across the app, indexed by
// month-1.
var MonthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// weekdayNames maps time.Weekday (Sunday = 0) to Spanish display names.
var weekdayNames = [7]string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

// WeekdayName returns the Spanish name for the weekday of t.
func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// MonthName returns the Spanish name for month (1-12), or an empty string
// when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// ResolveMonthName maps a Spanish month name back to 1-12. Unknown or empty
// names resolve to the month of now, mirroring the form default.
func ResolveMonthName(name string, now time.Time) int {
	name = strings.TrimSpace(name)
	for i, m := range MonthNames {
		if strings.EqualFold(m, name) {
			return i + 1
		}
	}
	return int(now.Month())
}

func splitClock(s string) (hh, mm, ss int) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 3)
	read := func(i int) int {
		if i >= len(parts) {
			return 0
		}
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0
		}
		return v
	}
	return read(0), read(1), read(2)
}
