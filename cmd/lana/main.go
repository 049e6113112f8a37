package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"lana/internal/api"
	"lana/internal/cli"
	"lana/internal/log"
	"lana/internal/services"
)

const usage = `lana - personal finance client

Usage:
  lana <command> [flags]

Commands:
  login      Sign in with email or phone
  register   Create a new account
  logout     Clear the stored session
  overview   Month totals and the day-grouped history
  tx         Manage transactions (add, edit, rm)
  cat        Manage categories (list, add, edit, rm)
  fixed      Manage fixed payments (list, add, edit, rm)
  budget     Manage budgets (list, set, rm)
  chart      Category breakdowns (income, expense, general)

Run "lana <command> -h" for command flags.
`

func main() {
	cli.LoadEnvFile()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := cli.SignalContext()
	defer cancel()

	logger := cli.SetupLogger(os.Getenv("LANA_LOG_LEVEL")).WithComponent(log.ComponentCLI)
	cfg := cli.LoadAndValidateConfig(logger)
	logger.Debug("Configured",
		log.FieldOperation, log.OpStartup,
		"api_url", cfg.APIBaseURL)

	store, storage := cli.InitSessionStore(ctx, logger, cfg.SessionDBPath)
	defer storage.Close()

	client := api.New(cfg.APIBaseURL, store,
		api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		api.WithLogger(logger.WithComponent(log.ComponentAPI)))
	svc := services.New(client, cfg.CacheSize, cfg.CacheTTL,
		services.WithLogger(logger.WithComponent(log.ComponentService)))

	if err := run(ctx, svc, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "lana:", friendlyError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *services.Service, command string, args []string) error {
	switch command {
	case "login":
		return cmdLogin(ctx, svc, args)
	case "register":
		return cmdRegister(ctx, svc, args)
	case "logout":
		return cmdLogout(ctx, svc)
	case "overview":
		return cmdOverview(ctx, svc, args)
	case "tx":
		return cmdTransactions(ctx, svc, args)
	case "cat":
		return cmdCategories(ctx, svc, args)
	case "fixed":
		return cmdFixedPayments(ctx, svc, args)
	case "budget":
		return cmdBudgets(ctx, svc, args)
	case "chart":
		return cmdCharts(ctx, svc, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// friendlyError keeps API error messages verbatim and wraps transport
// failures in one line.
func friendlyError(err error) string {
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return "cannot reach the server: " + netErr.Err.Error()
	}
	return err.Error()
}
