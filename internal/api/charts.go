package api

import (
	"context"
	"net/http"

	"lana/internal/core"
)

// IncomeByCategory fetches the aggregated income rows from
// GET /api/graficaIngresos. The chart endpoints take the token as a query
// parameter only.
func (c *Client) IncomeByCategory(ctx context.Context) ([]core.ChartRow, error) {
	return c.chartRows(ctx, "/api/graficaIngresos")
}

// ExpenseByCategory fetches the aggregated expense rows from
// GET /api/graficaGastos.
func (c *Client) ExpenseByCategory(ctx context.Context) ([]core.ChartRow, error) {
	return c.chartRows(ctx, "/api/graficaGastos")
}

func (c *Client) chartRows(ctx context.Context, path string) ([]core.ChartRow, error) {
	raw, err := c.request(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	records := decodeRecords(raw)
	out := make([]core.ChartRow, 0, len(records))
	for _, rec := range records {
		out = append(out, core.NormalizeChartRow(rec))
	}
	return out, nil
}
