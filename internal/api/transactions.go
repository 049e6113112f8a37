package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"lana/internal/core"
	"lana/internal/log"
)

func init() {
	// The backend wants amounts as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionPayload is the write shape for transactions. Amount carries
// the sign convention: positive income, negative expense.
type TransactionPayload struct {
	Amount      decimal.Decimal `json:"amount"`
	Datetime    string          `json:"datetime"`
	Description string          `json:"description,omitempty"`
	Category    any             `json:"category"`
}

func NewTransactionPayload(amount decimal.Decimal, datetime string, description string, category core.CategoryID) TransactionPayload {
	return TransactionPayload{
		Amount:      amount,
		Datetime:    datetime,
		Description: description,
		Category:    idValue(category),
	}
}

// ListTransactions fetches GET /transactions/ with optional query params
// (e.g. month=YYYY-MM). Listing requires the query token. Records that
// fail normalization, a datetime the client cannot parse, are dropped here
// at the boundary with a warning rather than mis-grouped downstream.
func (c *Client) ListTransactions(ctx context.Context, params url.Values) ([]core.Transaction, error) {
	path := "/transactions/"
	if qs := params.Encode(); qs != "" {
		path += "?" + qs
	}
	raw, err := c.request(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	records := decodeRecords(raw)
	out := make([]core.Transaction, 0, len(records))
	for _, rec := range records {
		tx, err := core.NormalizeTransaction(rec)
		if err != nil {
			c.logger.WarnContext(ctx, "Dropping malformed transaction",
				log.FieldID, core.Stringify(rec["id"]),
				log.FieldError, err.Error())
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// CreateTransaction posts to /transactions/. Creation requires the query
// token like the list endpoint.
func (c *Client) CreateTransaction(ctx context.Context, p TransactionPayload) error {
	_, err := c.request(ctx, http.MethodPost, "/transactions/", p, true)
	return err
}

// UpdateTransaction puts /transactions/{id}. The backend does not require
// the query token on update, unlike list/create. Observed behavior of this
// backend, not an oversight here.
func (c *Client) UpdateTransaction(ctx context.Context, id string, p TransactionPayload) error {
	_, err := c.request(ctx, http.MethodPut, "/transactions/"+url.PathEscape(id), p, false)
	return err
}

// DeleteTransaction deletes /transactions/{id}. No query token, same as
// update.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, false)
	return err
}
