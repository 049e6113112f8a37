package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"lana/internal/core"
)

// fixedBase is the scheduled-transactions route prefix.
const fixedBase = "/scheduled-transactions"

// FixedPaymentPayload is the write shape for scheduled transactions.
// Amount is always positive; Day is the day of month the payment recurs.
type FixedPaymentPayload struct {
	Amount      decimal.Decimal `json:"amount"`
	Day         int             `json:"day"`
	Time        string          `json:"time"`
	Description string          `json:"description,omitempty"`
	Category    any             `json:"category"`
}

func NewFixedPaymentPayload(amount decimal.Decimal, day int, timeOfDay, description string, category core.CategoryID) FixedPaymentPayload {
	return FixedPaymentPayload{
		Amount:      amount,
		Day:         day,
		Time:        timeOfDay,
		Description: description,
		Category:    idValue(category),
	}
}

// ListFixedPayments fetches the scheduled transactions. Every
// scheduled-transaction endpoint, reads included, requires the query token.
func (c *Client) ListFixedPayments(ctx context.Context) ([]core.FixedPayment, error) {
	raw, err := c.request(ctx, http.MethodGet, fixedBase+"/", nil, true)
	if err != nil {
		return nil, err
	}
	records := decodeRecords(raw)
	now := time.Now()
	out := make([]core.FixedPayment, 0, len(records))
	for _, rec := range records {
		out = append(out, core.NormalizeFixedPayment(rec, now))
	}
	return out, nil
}

func (c *Client) CreateFixedPayment(ctx context.Context, p FixedPaymentPayload) error {
	_, err := c.request(ctx, http.MethodPost, fixedBase+"/", p, true)
	return err
}

func (c *Client) UpdateFixedPayment(ctx context.Context, id string, p FixedPaymentPayload) error {
	_, err := c.request(ctx, http.MethodPut, fixedBase+"/"+url.PathEscape(id), p, true)
	return err
}

func (c *Client) DeleteFixedPayment(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, fixedBase+"/"+url.PathEscape(id), nil, true)
	return err
}
