package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"lana/internal/core"
	"lana/internal/services"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func renderTimeline(tl services.Timeline) {
	fmt.Printf("%s %d\n", core.MonthName(tl.Month), tl.Year)
	fmt.Printf("  Ingresos:     %s\n", core.FormatMoney(tl.Income))
	fmt.Printf("  Gastos:       %s\n", core.FormatMoney(tl.Expense))
	fmt.Printf("  Presupuesto:  %s\n", core.FormatMoney(tl.Budget))
	fmt.Println()

	for _, g := range tl.Groups {
		fmt.Printf("%s %s  (+%s / -%s)\n",
			g.Weekday, g.Key, core.FormatMoney(g.Income), core.FormatMoney(g.Expense))
		w := newTable()
		for _, item := range g.Items {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
				item.ID, item.CategoryLabel, core.FormatMoney(item.Amount), item.Description)
		}
		w.Flush()
	}
}

func renderCategories(cats []core.Category) {
	w := newTable()
	fmt.Fprintln(w, "ID\tNOMBRE")
	for _, c := range cats {
		fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Name)
	}
	w.Flush()
}

func renderFixedPayments(payments []services.FixedPaymentView) {
	w := newTable()
	fmt.Fprintln(w, "ID\tDÍA\tFECHA\tCATEGORÍA\tMONTO\tDESCRIPCIÓN")
	for _, p := range payments {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			p.ID, p.Day, p.Date.Format("2006-01-02 15:04"), p.CategoryName,
			core.FormatMoney(p.Amount), p.Description)
	}
	w.Flush()
}

func renderBudgets(budgets []services.BudgetView) {
	w := newTable()
	fmt.Fprintln(w, "ID\tMES\tCATEGORÍA\tMONTO")
	for _, b := range budgets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			b.ID, b.MonthName, b.CategoryName, core.FormatMoney(b.Amount))
	}
	w.Flush()
}

func renderChart(title string, view services.ChartView) {
	if view.Month != 0 {
		fmt.Printf("%s - %s\n", title, core.MonthName(view.Month))
	} else {
		fmt.Println(title)
	}
	w := newTable()
	for _, ct := range view.Categories {
		fmt.Fprintf(w, "  %s\t%s\n", ct.Name, core.FormatMoney(ct.Total))
	}
	w.Flush()
	fmt.Printf("  Total\t%s\n\n", core.FormatMoney(view.Total))
}
