package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"lana/internal/core"
	"lana/internal/services"
)

func cmdLogin(ctx context.Context, svc *services.Service, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "account phone")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := svc.Login(ctx, services.LoginInput{Email: *email, Phone: *phone, Password: *password})
	if err != nil {
		return err
	}
	fmt.Println("Sesión iniciada.")
	return nil
}

func cmdRegister(ctx context.Context, svc *services.Service, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "first name")
	lastname := fs.String("lastname", "", "last name")
	email := fs.String("email", "", "email")
	phone := fs.String("phone", "", "phone")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := svc.Register(ctx, services.RegisterInput{
		Name:            *name,
		Lastname:        *lastname,
		Email:           *email,
		Phone:           *phone,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		return err
	}
	fmt.Println("Cuenta creada. Inicia sesión con \"lana login\".")
	return nil
}

func cmdLogout(ctx context.Context, svc *services.Service) error {
	if err := svc.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Sesión cerrada.")
	return nil
}

func cmdOverview(ctx context.Context, svc *services.Service, args []string) error {
	fs := flag.NewFlagSet("overview", flag.ExitOnError)
	month := fs.String("month", "", "month filter, YYYY-MM (default: everything, totals for the current month)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tl, err := svc.LoadTimeline(ctx, *month)
	if err != nil {
		return err
	}
	renderTimeline(tl)
	return nil
}

func cmdTransactions(ctx context.Context, svc *services.Service, args []string) error {
	sub, rest := splitSubcommand(args)
	switch sub {
	case "add", "edit":
		fs := flag.NewFlagSet("tx "+sub, flag.ExitOnError)
		id := fs.String("id", "", "transaction id (edit only)")
		income := fs.String("income", "", "income amount")
		incomeCat := fs.String("income-cat", "", "income category name")
		expense := fs.String("expense", "", "expense amount")
		expenseCat := fs.String("expense-cat", "", "expense category name")
		desc := fs.String("desc", "", "description")
		date := fs.String("date", "", "datetime, RFC3339 or YYYY-MM-DD (default: now)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if sub == "edit" && *id == "" {
			return fmt.Errorf("tx edit: -id is required")
		}

		dt, err := parseDate(*date)
		if err != nil {
			return err
		}
		in := services.SaveTransactionInput{ID: *id}
		if *income != "" {
			in.Income = &services.TransactionSide{
				Amount: *income, Category: *incomeCat, Datetime: dt, Description: *desc,
			}
		}
		if *expense != "" {
			in.Expense = &services.TransactionSide{
				Amount: *expense, Category: *expenseCat, Datetime: dt, Description: *desc,
			}
		}
		if err := svc.SaveTransaction(ctx, in); err != nil {
			return err
		}
		fmt.Println("Movimiento guardado.")
		return nil
	case "rm":
		fs := flag.NewFlagSet("tx rm", flag.ExitOnError)
		id := fs.String("id", "", "transaction id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := svc.DeleteTransaction(ctx, *id); err != nil {
			return err
		}
		fmt.Println("Movimiento eliminado.")
		return nil
	default:
		return fmt.Errorf("tx: unknown subcommand %q (add, edit, rm)", sub)
	}
}

func cmdCategories(ctx context.Context, svc *services.Service, args []string) error {
	sub, rest := splitSubcommand(args)
	switch sub {
	case "list", "":
		cats, err := svc.Categories(ctx)
		if err != nil {
			return err
		}
		renderCategories(cats)
		return nil
	case "add", "edit":
		fs := flag.NewFlagSet("cat "+sub, flag.ExitOnError)
		id := fs.String("id", "", "category id (edit only)")
		name := fs.String("name", "", "category name")
		desc := fs.String("desc", "", "description")
		schedulable := fs.Bool("schedulable", false, "usable for fixed payments")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		var err error
		if sub == "add" {
			err = svc.CreateCategory(ctx, *name, *desc, *schedulable)
		} else {
			if *id == "" {
				return fmt.Errorf("cat edit: -id is required")
			}
			err = svc.UpdateCategory(ctx, core.CategoryID(*id), *name, *desc, *schedulable)
		}
		if err != nil {
			return err
		}
		fmt.Println("Categoría guardada.")
		return nil
	case "rm":
		fs := flag.NewFlagSet("cat rm", flag.ExitOnError)
		id := fs.String("id", "", "category id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := svc.DeleteCategory(ctx, core.CategoryID(*id)); err != nil {
			return err
		}
		fmt.Println("Categoría eliminada.")
		return nil
	default:
		return fmt.Errorf("cat: unknown subcommand %q (list, add, edit, rm)", sub)
	}
}

func cmdFixedPayments(ctx context.Context, svc *services.Service, args []string) error {
	sub, rest := splitSubcommand(args)
	switch sub {
	case "list", "":
		payments, err := svc.FixedPayments(ctx)
		if err != nil {
			return err
		}
		renderFixedPayments(payments)
		return nil
	case "add", "edit":
		fs := flag.NewFlagSet("fixed "+sub, flag.ExitOnError)
		id := fs.String("id", "", "fixed payment id (edit only)")
		amount := fs.String("amount", "", "amount")
		category := fs.String("cat", "", "category name")
		day := fs.Int("day", 0, "day of month, 1-31")
		at := fs.String("time", "", "time of day, HH:MM:SS (default: now)")
		desc := fs.String("desc", "", "description")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if sub == "edit" && *id == "" {
			return fmt.Errorf("fixed edit: -id is required")
		}
		err := svc.SaveFixedPayment(ctx, services.FixedPaymentInput{
			ID:          *id,
			Category:    *category,
			Amount:      *amount,
			Day:         *day,
			Time:        *at,
			Description: *desc,
		})
		if err != nil {
			return err
		}
		fmt.Println("Pago fijo guardado.")
		return nil
	case "rm":
		fs := flag.NewFlagSet("fixed rm", flag.ExitOnError)
		id := fs.String("id", "", "fixed payment id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := svc.DeleteFixedPayment(ctx, *id); err != nil {
			return err
		}
		fmt.Println("Pago fijo eliminado.")
		return nil
	default:
		return fmt.Errorf("fixed: unknown subcommand %q (list, add, edit, rm)", sub)
	}
}

func cmdBudgets(ctx context.Context, svc *services.Service, args []string) error {
	sub, rest := splitSubcommand(args)
	switch sub {
	case "list", "":
		budgets, err := svc.Budgets(ctx)
		if err != nil {
			return err
		}
		renderBudgets(budgets)
		return nil
	case "set":
		fs := flag.NewFlagSet("budget set", flag.ExitOnError)
		id := fs.String("id", "", "budget id (blank creates a new budget)")
		amount := fs.String("amount", "", "amount")
		category := fs.String("cat", "", "category name")
		month := fs.String("month", "", "Spanish month name (default: current month)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		err := svc.SaveBudget(ctx, services.BudgetInput{
			ID:        *id,
			Category:  *category,
			Amount:    *amount,
			MonthName: *month,
		})
		if err != nil {
			return err
		}
		fmt.Println("Presupuesto guardado.")
		return nil
	case "rm":
		fs := flag.NewFlagSet("budget rm", flag.ExitOnError)
		id := fs.String("id", "", "budget id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := svc.DeleteBudget(ctx, *id); err != nil {
			return err
		}
		fmt.Println("Presupuesto eliminado.")
		return nil
	default:
		return fmt.Errorf("budget: unknown subcommand %q (list, set, rm)", sub)
	}
}

func cmdCharts(ctx context.Context, svc *services.Service, args []string) error {
	sub, rest := splitSubcommand(args)
	fs := flag.NewFlagSet("chart "+sub, flag.ExitOnError)
	month := fs.String("month", "", "Spanish month name or 1-12 (default: all months)")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	m, err := parseChartMonth(*month)
	if err != nil {
		return err
	}

	switch sub {
	case "income":
		view, err := svc.IncomeChart(ctx, m)
		if err != nil {
			return err
		}
		renderChart("Ingresos", view)
		return nil
	case "expense":
		view, err := svc.ExpenseChart(ctx, m)
		if err != nil {
			return err
		}
		renderChart("Gastos", view)
		return nil
	case "general", "":
		income, expense, err := svc.GeneralChart(ctx, m)
		if err != nil {
			return err
		}
		renderChart("Ingresos", income)
		renderChart("Gastos", expense)
		return nil
	default:
		return fmt.Errorf("chart: unknown subcommand %q (income, expense, general)", sub)
	}
}

func splitSubcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

// parseChartMonth accepts a Spanish month name or a number 1-12; blank
// means all months.
func parseChartMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
		if n < 1 || n > 12 {
			return 0, core.ErrInvalidMonth
		}
		return n, nil
	}
	for i, name := range core.MonthNames {
		if strings.EqualFold(name, s) {
			return i + 1, nil
		}
	}
	return 0, core.ErrInvalidMonth
}
