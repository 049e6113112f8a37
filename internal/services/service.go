// Package services builds the view models the front end renders and runs
// client-side validation before anything touches the network. It is the
// seam between forms/lists and the API client.
package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"lana/internal/api"
	"lana/internal/cache"
	"lana/internal/categories"
	"lana/internal/core"
	"lana/internal/ledger"
	"lana/internal/log"
)

const categoriesCacheKey = "categories"

type Service struct {
	backend Backend
	cats    *cache.LRU[[]core.Category]
	logger  *log.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(backend Backend, cacheSize int, cacheTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		cats:    cache.NewLRU[[]core.Category](cacheSize, cacheTTL),
		logger:  log.New(log.DefaultConfig()).WithComponent(log.ComponentService),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Categories returns the normalized category list, memoized for the
// duration of the cache TTL within this run.
func (s *Service) Categories(ctx context.Context) ([]core.Category, error) {
	if cached, ok := s.cats.Get(categoriesCacheKey); ok {
		return cached, nil
	}
	list, err := s.backend.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.cats.Set(categoriesCacheKey, list)
	return list, nil
}

func (s *Service) invalidateCategories() {
	s.cats.Delete(categoriesCacheKey)
}

// ---------------- timeline ----------------

// Timeline is the main screen's view model: the month-header totals plus
// the day-grouped history.
type Timeline struct {
	Month   int
	Year    int
	Income  decimal.Decimal
	Expense decimal.Decimal
	Budget  decimal.Decimal
	Groups  []ledger.DayGroup
}

// LoadTimeline fetches transactions, categories and budgets concurrently
// and aggregates them. month is "YYYY-MM" or empty for everything; budgets
// are summed for the selected (or current) month.
func (s *Service) LoadTimeline(ctx context.Context, month string) (Timeline, error) {
	var (
		txs     []core.Transaction
		cats    []core.Category
		budgets []core.Budget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		params := url.Values{}
		if month != "" {
			params.Set("month", month)
		}
		var err error
		txs, err = s.backend.ListTransactions(gctx, params)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.Categories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.backend.ListBudgets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Timeline{}, err
	}

	groups, err := ledger.GroupByDay(txs, categories.NewIndex(cats))
	if err != nil {
		return Timeline{}, err
	}

	year, monthNum := resolveMonth(month, s.now())
	income, expense := ledger.Totals(groups)

	s.logger.DebugContext(ctx, "Timeline loaded",
		log.FieldOperation, log.OpList,
		log.FieldMonth, monthNum,
		log.FieldCount, len(groups))

	return Timeline{
		Month:   monthNum,
		Year:    year,
		Income:  income,
		Expense: expense,
		Budget:  ledger.BudgetTotal(budgets, monthNum),
		Groups:  groups,
	}, nil
}


// resolveCategoryID maps a display name to its id. A blank name takes the
// first category, mirroring the form's preselected pick; an unknown name or
// an empty category list is a validation failure.
func resolveCategoryID(cats []core.Category, name string) (core.CategoryID, error) {
	if strings.TrimSpace(name) == "" {
		if len(cats) > 0 {
			return cats[0].ID, nil
		}
		return "", core.ErrMissingCategory
	}
	if id, ok := categories.NewIndex(cats).NameToID[name]; ok {
		return id, nil
	}
	return "", core.ErrMissingCategory
}

// resolveMonth parses "YYYY-MM", falling back to now.
func resolveMonth(month string, now time.Time) (year, monthNum int) {
	if t, err := time.Parse("2006-01", month); err == nil {
		return t.Year(), int(t.Month())
	}
	return now.Year(), int(now.Month())
}

// ---------------- transactions ----------------

// TransactionSide is one half of the add/edit form: the income or the
// expense section. Amount is the raw form string; zero or blank means "do
// not write this side".
type TransactionSide struct {
	Amount      string
	Category    string // display name picked in the form
	Datetime    time.Time
	Description string
}

// SaveTransactionInput carries both sides of the add/edit form. An add may
// carry both (two records are created); an edit targets one record, which
// has one sign, so exactly one side may be populated.
type SaveTransactionInput struct {
	ID      string // empty = create
	Income  *TransactionSide
	Expense *TransactionSide
}

// SaveTransaction validates and writes a transaction. The sign convention
// is applied here: the expense side is negated before it goes on the wire.
// At least one side must carry a positive amount; a side with amount zero
// is skipped, not an error, unless it is the only side. An edit with both
// sides populated is rejected: the record has a single amount, so the
// second write would silently replace the first.
func (s *Service) SaveTransaction(ctx context.Context, in SaveTransactionInput) error {
	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}

	type write struct {
		payload api.TransactionPayload
	}
	var writes []write

	build := func(side *TransactionSide, negate bool) error {
		if side == nil {
			return nil
		}
		amount := core.ParseMoney(side.Amount)
		if amount.Sign() <= 0 {
			// Zero means "not provided" for this side.
			return nil
		}
		id, err := resolveCategoryID(cats, side.Category)
		if err != nil {
			return err
		}
		if negate {
			amount = amount.Neg()
		}
		dt := side.Datetime
		if dt.IsZero() {
			dt = s.now()
		}
		writes = append(writes, write{payload: api.NewTransactionPayload(
			amount, dt.Format(time.RFC3339), strings.TrimSpace(side.Description), id)})
		return nil
	}

	if err := build(in.Income, false); err != nil {
		return err
	}
	if err := build(in.Expense, true); err != nil {
		return err
	}
	if len(writes) == 0 {
		return core.ErrInvalidAmount
	}
	if in.ID != "" && len(writes) > 1 {
		return core.ErrConflictingSides
	}

	op := log.OpCreate
	for _, w := range writes {
		if in.ID == "" {
			err = s.backend.CreateTransaction(ctx, w.payload)
		} else {
			op = log.OpUpdate
			err = s.backend.UpdateTransaction(ctx, in.ID, w.payload)
		}
		if err != nil {
			return err
		}
	}
	s.logger.InfoContext(ctx, "Transaction saved",
		log.FieldOperation, op,
		log.FieldCount, len(writes))
	return nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("transaction id is required")
	}
	if err := s.backend.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldID, id)
	return nil
}

// ---------------- categories ----------------

func (s *Service) CreateCategory(ctx context.Context, name, description string, schedulable bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrMissingFields
	}
	if err := s.backend.CreateCategory(ctx, api.CategoryPayload{
		Name: name, Description: description, Schedulable: schedulable,
	}); err != nil {
		return err
	}
	s.invalidateCategories()
	s.logger.InfoContext(ctx, "Category created",
		log.FieldOperation, log.OpCreate,
		log.FieldCategory, name)
	return nil
}

func (s *Service) UpdateCategory(ctx context.Context, id core.CategoryID, name, description string, schedulable bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrMissingFields
	}
	if err := s.backend.UpdateCategory(ctx, id, api.CategoryPayload{
		Name: name, Description: description, Schedulable: schedulable,
	}); err != nil {
		return err
	}
	s.invalidateCategories()
	s.logger.InfoContext(ctx, "Category updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldCategory, name)
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, id core.CategoryID) error {
	if err := s.backend.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidateCategories()
	s.logger.InfoContext(ctx, "Category deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldID, string(id))
	return nil
}

// ---------------- budgets ----------------

// BudgetView is a budget with its category and month resolved for display.
type BudgetView struct {
	core.Budget
	CategoryName string
	MonthName    string
}

func (s *Service) Budgets(ctx context.Context) ([]BudgetView, error) {
	var (
		budgets []core.Budget
		cats    []core.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.backend.ListBudgets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix := categories.NewIndex(cats)
	out := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, BudgetView{
			Budget:       b,
			CategoryName: ix.DisplayName(b.Category),
			MonthName:    core.MonthName(b.Month),
		})
	}
	return out, nil
}

// BudgetInput is the add/edit budget form.
type BudgetInput struct {
	ID        string // empty = create
	Category  string // display name
	Amount    string // raw form input
	MonthName string // Spanish month name; blank = current month
}

func (s *Service) SaveBudget(ctx context.Context, in BudgetInput) error {
	amount := core.ParseMoney(in.Amount)
	if amount.Sign() <= 0 {
		return core.ErrInvalidAmount
	}

	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	id, err := resolveCategoryID(cats, in.Category)
	if err != nil {
		return err
	}

	month := core.ResolveMonthName(in.MonthName, s.now())
	payload := api.NewBudgetPayload(amount, month, id)
	if in.ID == "" {
		err = s.backend.CreateBudget(ctx, payload)
	} else {
		err = s.backend.UpdateBudget(ctx, in.ID, payload)
	}
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Budget saved",
		log.FieldMonth, month,
		log.FieldAmount, amount.String())
	return nil
}

func (s *Service) DeleteBudget(ctx context.Context, id string) error {
	return s.backend.DeleteBudget(ctx, id)
}

// ---------------- fixed payments ----------------

// FixedPaymentView resolves the category name and reconstructs the display
// date against the current month.
type FixedPaymentView struct {
	core.FixedPayment
	CategoryName string
	Date         time.Time
}

func (s *Service) FixedPayments(ctx context.Context) ([]FixedPaymentView, error) {
	var (
		payments []core.FixedPayment
		cats     []core.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payments, err = s.backend.ListFixedPayments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix := categories.NewIndex(cats)
	now := s.now()
	out := make([]FixedPaymentView, 0, len(payments))
	for _, p := range payments {
		out = append(out, FixedPaymentView{
			FixedPayment: p,
			CategoryName: ix.DisplayName(p.Category),
			Date:         p.DisplayDate(now),
		})
	}
	return out, nil
}

// FixedPaymentInput is the add/edit fixed-payment form.
type FixedPaymentInput struct {
	ID          string // empty = create
	Category    string // display name
	Amount      string // raw form input
	Day         int
	Time        string // "HH:MM:SS"; blank = current wall-clock time
	Description string
}

func (s *Service) SaveFixedPayment(ctx context.Context, in FixedPaymentInput) error {
	amount := core.ParseMoney(in.Amount)
	if amount.Sign() <= 0 {
		return core.ErrInvalidAmount
	}
	if in.Day < 1 || in.Day > 31 {
		return core.ErrInvalidDay
	}

	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	id, err := resolveCategoryID(cats, in.Category)
	if err != nil {
		return err
	}

	timeOfDay := strings.TrimSpace(in.Time)
	if timeOfDay == "" {
		timeOfDay = s.now().Format("15:04:05")
	}

	payload := api.NewFixedPaymentPayload(amount, in.Day, timeOfDay, strings.TrimSpace(in.Description), id)
	if in.ID == "" {
		return s.backend.CreateFixedPayment(ctx, payload)
	}
	return s.backend.UpdateFixedPayment(ctx, in.ID, payload)
}

func (s *Service) DeleteFixedPayment(ctx context.Context, id string) error {
	return s.backend.DeleteFixedPayment(ctx, id)
}
