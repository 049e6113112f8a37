package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lana/internal/api"
	"lana/internal/core"
)

// txUpdate is one recorded UpdateTransaction call, in arrival order.
type txUpdate struct {
	ID      string
	Payload api.TransactionPayload
}

// fakeBackend records calls and serves canned data.
type fakeBackend struct {
	categories   []core.Category
	transactions []core.Transaction
	budgets      []core.Budget
	payments     []core.FixedPayment
	incomeRows   []core.ChartRow
	expenseRows  []core.ChartRow

	listCategoriesCalls int
	createdTxs          []api.TransactionPayload
	updatedTxs          []txUpdate
	deletedTxs          []string
	createdCats         []api.CategoryPayload
	createdBudgets      []api.BudgetPayload
	createdPayments     []api.FixedPaymentPayload

	loginCreds *api.Credentials
	registered *api.Registration
	loggedOut  bool

	err error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		categories: []core.Category{
			{ID: "1", Name: "Comida"},
			{ID: "2", Name: "Salario"},
		},
	}
}

func (f *fakeBackend) Login(_ context.Context, creds api.Credentials) (string, error) {
	f.loginCreds = &creds
	return "tok", f.err
}

func (f *fakeBackend) Register(_ context.Context, reg api.Registration) error {
	f.registered = &reg
	return f.err
}

func (f *fakeBackend) Logout(context.Context) error {
	f.loggedOut = true
	return f.err
}

func (f *fakeBackend) ListTransactions(context.Context, url.Values) ([]core.Transaction, error) {
	return f.transactions, f.err
}

func (f *fakeBackend) CreateTransaction(_ context.Context, p api.TransactionPayload) error {
	f.createdTxs = append(f.createdTxs, p)
	return f.err
}

func (f *fakeBackend) UpdateTransaction(_ context.Context, id string, p api.TransactionPayload) error {
	f.updatedTxs = append(f.updatedTxs, txUpdate{ID: id, Payload: p})
	return f.err
}

func (f *fakeBackend) DeleteTransaction(_ context.Context, id string) error {
	f.deletedTxs = append(f.deletedTxs, id)
	return f.err
}

func (f *fakeBackend) ListCategories(context.Context) ([]core.Category, error) {
	f.listCategoriesCalls++
	return f.categories, f.err
}

func (f *fakeBackend) CreateCategory(_ context.Context, p api.CategoryPayload) error {
	f.createdCats = append(f.createdCats, p)
	return f.err
}

func (f *fakeBackend) UpdateCategory(context.Context, core.CategoryID, api.CategoryPayload) error {
	return f.err
}

func (f *fakeBackend) DeleteCategory(context.Context, core.CategoryID) error { return f.err }

func (f *fakeBackend) ListFixedPayments(context.Context) ([]core.FixedPayment, error) {
	return f.payments, f.err
}

func (f *fakeBackend) CreateFixedPayment(_ context.Context, p api.FixedPaymentPayload) error {
	f.createdPayments = append(f.createdPayments, p)
	return f.err
}

func (f *fakeBackend) UpdateFixedPayment(context.Context, string, api.FixedPaymentPayload) error {
	return f.err
}

func (f *fakeBackend) DeleteFixedPayment(context.Context, string) error { return f.err }

func (f *fakeBackend) ListBudgets(context.Context) ([]core.Budget, error) {
	return f.budgets, f.err
}

func (f *fakeBackend) CreateBudget(_ context.Context, p api.BudgetPayload) error {
	f.createdBudgets = append(f.createdBudgets, p)
	return f.err
}

func (f *fakeBackend) UpdateBudget(context.Context, string, api.BudgetPayload) error { return f.err }
func (f *fakeBackend) DeleteBudget(context.Context, string) error                    { return f.err }

func (f *fakeBackend) IncomeByCategory(context.Context) ([]core.ChartRow, error) {
	return f.incomeRows, f.err
}

func (f *fakeBackend) ExpenseByCategory(context.Context) ([]core.ChartRow, error) {
	return f.expenseRows, f.err
}

var _ Backend = (*fakeBackend)(nil)

func newTestService(backend Backend) *Service {
	fixed := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	return New(backend, 8, time.Minute, WithClock(func() time.Time { return fixed }))
}

func TestCategoriesCached(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cats, err := svc.Categories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 2)
	}
	assert.Equal(t, 1, backend.listCategoriesCalls, "list must be memoized")
}

func TestCategoryMutationInvalidatesCache(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)
	ctx := context.Background()

	_, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.CreateCategory(ctx, "Ocio", "", false))
	_, err = svc.Categories(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, backend.listCategoriesCalls, "mutation must drop the cached list")
}

func TestSaveTransactionNegatesExpense(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	err := svc.SaveTransaction(context.Background(), SaveTransactionInput{
		Expense: &TransactionSide{Amount: "45,50", Category: "Comida", Description: "Super"},
	})
	require.NoError(t, err)

	require.Len(t, backend.createdTxs, 1)
	p := backend.createdTxs[0]
	assert.Equal(t, "-45.5", p.Amount.String())
	assert.Equal(t, int64(1), p.Category)
	assert.Equal(t, "Super", p.Description)
	// Datetime defaults to the injected clock.
	assert.Contains(t, p.Datetime, "2024-03-15")
}

func TestSaveTransactionKeepsIncomeSign(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	err := svc.SaveTransaction(context.Background(), SaveTransactionInput{
		Income: &TransactionSide{Amount: "1500", Category: "Salario"},
	})
	require.NoError(t, err)

	require.Len(t, backend.createdTxs, 1)
	assert.Equal(t, "1500", backend.createdTxs[0].Amount.String())
}

func TestSaveTransactionSkipsZeroSide(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	// One populated side plus one zeroed side writes a single record.
	err := svc.SaveTransaction(context.Background(), SaveTransactionInput{
		Income:  &TransactionSide{Amount: "0", Category: "Salario"},
		Expense: &TransactionSide{Amount: "12", Category: "Comida"},
	})
	require.NoError(t, err)
	require.Len(t, backend.createdTxs, 1)
	assert.Equal(t, "-12", backend.createdTxs[0].Amount.String())
}

func TestSaveTransactionEditRejectsBothSides(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	// The record being edited has one amount; two writes against the same
	// id would leave only the last one.
	err := svc.SaveTransaction(context.Background(), SaveTransactionInput{
		ID:      "9",
		Income:  &TransactionSide{Amount: "100", Category: "Salario"},
		Expense: &TransactionSide{Amount: "40", Category: "Comida"},
	})
	assert.ErrorIs(t, err, core.ErrConflictingSides)
	assert.Empty(t, backend.updatedTxs)
	assert.Empty(t, backend.createdTxs)
}

func TestSaveTransactionEditSingleSide(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	err := svc.SaveTransaction(context.Background(), SaveTransactionInput{
		ID:      "9",
		Income:  &TransactionSide{Amount: "100", Category: "Salario"},
		Expense: &TransactionSide{Amount: "0", Category: "Comida"},
	})
	require.NoError(t, err)
	require.Len(t, backend.updatedTxs, 1)
	assert.Equal(t, "9", backend.updatedTxs[0].ID)
	assert.Equal(t, "100", backend.updatedTxs[0].Payload.Amount.String())
	assert.Empty(t, backend.createdTxs)
}

func TestSaveTransactionAddBothSidesCreatesTwo(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	// Without an id each populated side becomes its own record.
	err := svc.SaveTransaction(context.Background(), SaveTransactionInput{
		Income:  &TransactionSide{Amount: "100", Category: "Salario"},
		Expense: &TransactionSide{Amount: "40", Category: "Comida"},
	})
	require.NoError(t, err)
	require.Len(t, backend.createdTxs, 2)
	assert.Equal(t, "100", backend.createdTxs[0].Amount.String())
	assert.Equal(t, "-40", backend.createdTxs[1].Amount.String())
	assert.Empty(t, backend.updatedTxs)
}

func TestSaveTransactionValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   SaveTransactionInput
		wantErr error
	}{
		{
			name:    "no sides",
			input:   SaveTransactionInput{},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name: "only zero amounts",
			input: SaveTransactionInput{
				Income: &TransactionSide{Amount: "abc", Category: "Salario"},
			},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name: "unknown category",
			input: SaveTransactionInput{
				Income: &TransactionSide{Amount: "10", Category: "Inexistente"},
			},
			wantErr: core.ErrMissingCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeBackend())
			err := svc.SaveTransaction(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSaveTransactionBlankCategoryTakesFirst(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	// A blank category mirrors the form's preselected first entry.
	err := svc.SaveTransaction(context.Background(), SaveTransactionInput{
		Expense: &TransactionSide{Amount: "10"},
	})
	require.NoError(t, err)
	require.Len(t, backend.createdTxs, 1)
	assert.Equal(t, int64(1), backend.createdTxs[0].Category)
}

func TestSaveTransactionBlankCategoryNoCategories(t *testing.T) {
	backend := newFakeBackend()
	backend.categories = nil
	svc := newTestService(backend)

	err := svc.SaveTransaction(context.Background(), SaveTransactionInput{
		Expense: &TransactionSide{Amount: "10"},
	})
	assert.ErrorIs(t, err, core.ErrMissingCategory)
}

func TestLoadTimeline(t *testing.T) {
	backend := newFakeBackend()
	backend.transactions = []core.Transaction{
		{ID: "a", Amount: decimal.RequireFromString("1500"), Datetime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), Category: "2"},
		{ID: "b", Amount: decimal.RequireFromString("-45.5"), Datetime: time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC), Category: "1"},
	}
	backend.budgets = []core.Budget{
		{ID: "1", Amount: decimal.RequireFromString("300"), Month: 3, Category: "1"},
		{ID: "2", Amount: decimal.RequireFromString("999"), Month: 4, Category: "1"},
	}
	svc := newTestService(backend)

	tl, err := svc.LoadTimeline(context.Background(), "2024-03")
	require.NoError(t, err)

	assert.Equal(t, 3, tl.Month)
	assert.Equal(t, 2024, tl.Year)
	assert.Equal(t, "1500", tl.Income.String())
	assert.Equal(t, "45.5", tl.Expense.String())
	assert.Equal(t, "300", tl.Budget.String())
	require.Len(t, tl.Groups, 2)
	assert.Equal(t, "2024-03-05", tl.Groups[0].Key)
	assert.Equal(t, "Comida", tl.Groups[0].Items[0].CategoryLabel)
}

func TestLoadTimelineDefaultsToClock(t *testing.T) {
	svc := newTestService(newFakeBackend())
	tl, err := svc.LoadTimeline(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, tl.Month)
	assert.Equal(t, 2024, tl.Year)
}

func TestSaveBudget(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	err := svc.SaveBudget(context.Background(), BudgetInput{
		Category:  "Comida",
		Amount:    "300,50",
		MonthName: "Junio",
	})
	require.NoError(t, err)
	require.Len(t, backend.createdBudgets, 1)
	assert.Equal(t, 6, backend.createdBudgets[0].Month)

	// Blank month falls back to the clock's month.
	err = svc.SaveBudget(context.Background(), BudgetInput{Category: "Comida", Amount: "10"})
	require.NoError(t, err)
	assert.Equal(t, 3, backend.createdBudgets[1].Month)
}

func TestSaveBudgetValidation(t *testing.T) {
	svc := newTestService(newFakeBackend())

	err := svc.SaveBudget(context.Background(), BudgetInput{Category: "Comida", Amount: "0"})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	err = svc.SaveBudget(context.Background(), BudgetInput{Category: "Nada", Amount: "10"})
	assert.ErrorIs(t, err, core.ErrMissingCategory)
}

func TestSaveFixedPayment(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	err := svc.SaveFixedPayment(context.Background(), FixedPaymentInput{
		Category: "Comida",
		Amount:   "500",
		Day:      15,
	})
	require.NoError(t, err)
	require.Len(t, backend.createdPayments, 1)
	// Blank time takes the clock's wall time.
	assert.Equal(t, "10:00:00", backend.createdPayments[0].Time)
}

func TestSaveFixedPaymentValidation(t *testing.T) {
	svc := newTestService(newFakeBackend())

	err := svc.SaveFixedPayment(context.Background(), FixedPaymentInput{Category: "Comida", Amount: "10", Day: 0})
	assert.ErrorIs(t, err, core.ErrInvalidDay)

	err = svc.SaveFixedPayment(context.Background(), FixedPaymentInput{Category: "Comida", Amount: "", Day: 5})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func TestFixedPaymentsView(t *testing.T) {
	backend := newFakeBackend()
	backend.payments = []core.FixedPayment{
		{ID: "1", Amount: decimal.RequireFromString("500"), Day: 5, Time: "08:00:00", Category: "1"},
	}
	svc := newTestService(backend)

	views, err := svc.FixedPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Comida", views[0].CategoryName)
	// Reconstructed against the clock's month.
	assert.Equal(t, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC), views[0].Date)
}

func TestBudgetsView(t *testing.T) {
	backend := newFakeBackend()
	backend.budgets = []core.Budget{
		{ID: "1", Amount: decimal.RequireFromString("300"), Month: 6, Category: "1"},
		{ID: "2", Amount: decimal.RequireFromString("100"), Month: 1, Category: "99"},
	}
	svc := newTestService(backend)

	views, err := svc.Budgets(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Comida", views[0].CategoryName)
	assert.Equal(t, "Junio", views[0].MonthName)
	assert.Equal(t, "Cat 99", views[1].CategoryName)
}

func TestCharts(t *testing.T) {
	backend := newFakeBackend()
	backend.expenseRows = []core.ChartRow{
		{Month: 3, Category: "Comida", Total: decimal.RequireFromString("120")},
		{Month: 3, Category: "Renta", Total: decimal.RequireFromString("800")},
		{Month: 4, Category: "Comida", Total: decimal.RequireFromString("50")},
	}
	backend.incomeRows = []core.ChartRow{
		{Month: 3, Category: "Salario", Total: decimal.RequireFromString("1500")},
	}
	svc := newTestService(backend)
	ctx := context.Background()

	expense, err := svc.ExpenseChart(ctx, 3)
	require.NoError(t, err)
	require.Len(t, expense.Categories, 2)
	assert.Equal(t, "Renta", expense.Categories[0].Name)
	assert.Equal(t, "920", expense.Total.String())

	all, err := svc.ExpenseChart(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "970", all.Total.String())

	income, expense2, err := svc.GeneralChart(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "1500", income.Total.String())
	assert.Equal(t, "920", expense2.Total.String())
}
