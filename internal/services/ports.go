package services

import (
	"context"
	"net/url"

	"lana/internal/api"
	"lana/internal/core"
)

// Ports for the remote backend. api.Client implements all of them; tests
// substitute fakes.
type (
	AuthAPI interface {
		Login(ctx context.Context, creds api.Credentials) (string, error)
		Register(ctx context.Context, reg api.Registration) error
		Logout(ctx context.Context) error
	}

	TransactionAPI interface {
		ListTransactions(ctx context.Context, params url.Values) ([]core.Transaction, error)
		CreateTransaction(ctx context.Context, p api.TransactionPayload) error
		UpdateTransaction(ctx context.Context, id string, p api.TransactionPayload) error
		DeleteTransaction(ctx context.Context, id string) error
	}

	CategoryAPI interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		CreateCategory(ctx context.Context, p api.CategoryPayload) error
		UpdateCategory(ctx context.Context, id core.CategoryID, p api.CategoryPayload) error
		DeleteCategory(ctx context.Context, id core.CategoryID) error
	}

	FixedPaymentAPI interface {
		ListFixedPayments(ctx context.Context) ([]core.FixedPayment, error)
		CreateFixedPayment(ctx context.Context, p api.FixedPaymentPayload) error
		UpdateFixedPayment(ctx context.Context, id string, p api.FixedPaymentPayload) error
		DeleteFixedPayment(ctx context.Context, id string) error
	}

	BudgetAPI interface {
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		CreateBudget(ctx context.Context, p api.BudgetPayload) error
		UpdateBudget(ctx context.Context, id string, p api.BudgetPayload) error
		DeleteBudget(ctx context.Context, id string) error
	}

	ChartAPI interface {
		IncomeByCategory(ctx context.Context) ([]core.ChartRow, error)
		ExpenseByCategory(ctx context.Context) ([]core.ChartRow, error)
	}
)

// Backend is the full remote surface the service layer works against.
type Backend interface {
	AuthAPI
	TransactionAPI
	CategoryAPI
	FixedPaymentAPI
	BudgetAPI
	ChartAPI
}

var _ Backend = (*api.Client)(nil)
