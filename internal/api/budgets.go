package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"lana/internal/core"
)

// BudgetPayload is the write shape for budgets.
type BudgetPayload struct {
	Amount   decimal.Decimal `json:"amount"`
	Month    int             `json:"month"`
	Category any             `json:"category"`
}

func NewBudgetPayload(amount decimal.Decimal, month int, category core.CategoryID) BudgetPayload {
	return BudgetPayload{
		Amount:   amount,
		Month:    month,
		Category: idValue(category),
	}
}

// ListBudgets fetches /budgets/. All budget endpoints require the query
// token.
func (c *Client) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	raw, err := c.request(ctx, http.MethodGet, "/budgets/", nil, true)
	if err != nil {
		return nil, err
	}
	records := decodeRecords(raw)
	out := make([]core.Budget, 0, len(records))
	for _, rec := range records {
		out = append(out, core.NormalizeBudget(rec))
	}
	return out, nil
}

func (c *Client) CreateBudget(ctx context.Context, p BudgetPayload) error {
	_, err := c.request(ctx, http.MethodPost, "/budgets/", p, true)
	return err
}

func (c *Client) UpdateBudget(ctx context.Context, id string, p BudgetPayload) error {
	_, err := c.request(ctx, http.MethodPut, "/budgets/"+url.PathEscape(id), p, true)
	return err
}

func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, "/budgets/"+url.PathEscape(id), nil, true)
	return err
}
