package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	accountHandler "github.com/MrJamesThe3rd/tally/internal/http/account"
	expenseHandler "github.com/MrJamesThe3rd/tally/internal/http/expense"
	journalHandler "github.com/MrJamesThe3rd/tally/internal/http/journal"
	ledgerHandler "github.com/MrJamesThe3rd/tally/internal/http/ledger"
	postingHandler "github.com/MrJamesThe3rd/tally/internal/http/posting"
	taxHandler "github.com/MrJamesThe3rd/tally/internal/http/tax"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx := context.Background()

	a, err := app.New(ctx, cfg, slog.Default())
	if err != nil {
		slog.Error("failed to initialise services", "error", err)
		os.Exit(1)
	}

	if err := a.Migrate(ctx); err != nil {
		a.Close()
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		accountH = accountHandler.NewHandler(a.Accounts)
		journalH = journalHandler.NewHandler(a.Journals)
		ledgerH  = ledgerHandler.NewHandler(a.Ledger, a.Accounts)
		taxH     = taxHandler.NewHandler(a.Tax)
		expenseH = expenseHandler.NewHandler(a.Expenses)
		tdsH     = postingHandler.NewHandler(a.Engine)
	)

	router := tallyHttp.New(tallyHttp.Options{
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	}, accountH, journalH, ledgerH, taxH, expenseH, tdsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "store", cfg.Ledger.Store)

	err = http.ListenAndServe(port, router)
	a.Close()

	if err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
