package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"lana/internal/core"
	"lana/internal/ledger"
	"lana/internal/log"
)

// ChartView is a per-category breakdown for one chart, optionally limited
// to a single month.
type ChartView struct {
	Month      int
	Categories []ledger.CategoryTotal
	Total      decimal.Decimal
}

// IncomeChart aggregates income rows by category. Month 0 keeps all rows;
// 1-12 keeps only that month.
func (s *Service) IncomeChart(ctx context.Context, month int) (ChartView, error) {
	rows, err := s.backend.IncomeByCategory(ctx)
	if err != nil {
		return ChartView{}, err
	}
	return s.buildChart(ctx, rows, month), nil
}

// ExpenseChart aggregates expense rows by category.
func (s *Service) ExpenseChart(ctx context.Context, month int) (ChartView, error) {
	rows, err := s.backend.ExpenseByCategory(ctx)
	if err != nil {
		return ChartView{}, err
	}
	return s.buildChart(ctx, rows, month), nil
}

// GeneralChart fetches both charts in parallel and returns the income and
// expense breakdowns side by side.
func (s *Service) GeneralChart(ctx context.Context, month int) (ChartView, ChartView, error) {
	var income, expense []core.ChartRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.backend.IncomeByCategory(gctx)
		if err != nil {
			return err
		}
		income = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.backend.ExpenseByCategory(gctx)
		if err != nil {
			return err
		}
		expense = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return ChartView{}, ChartView{}, err
	}
	return s.buildChart(ctx, income, month), s.buildChart(ctx, expense, month), nil
}

func (s *Service) buildChart(ctx context.Context, rows []core.ChartRow, month int) ChartView {
	rows = ledger.FilterMonth(rows, month)
	totals := ledger.TotalsByCategory(rows)
	view := ChartView{Month: month, Categories: totals, Total: ledger.SumRows(rows)}
	s.logger.DebugContext(ctx, "Chart built",
		log.FieldOperation, log.OpChart,
		log.FieldMonth, month,
		log.FieldCount, len(totals))
	return view
}
