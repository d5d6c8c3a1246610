// Package app assembles the services every binary shares from config.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/tally/internal/account"
	accountStore "github.com/MrJamesThe3rd/tally/internal/account/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/tally/internal/expense/store"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	journalStore "github.com/MrJamesThe3rd/tally/internal/journal/store"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/tally/internal/ledger/store"
	"github.com/MrJamesThe3rd/tally/internal/lock"
	"github.com/MrJamesThe3rd/tally/internal/posting"
	"github.com/MrJamesThe3rd/tally/internal/store/memory"
	"github.com/MrJamesThe3rd/tally/internal/tax"
	taxStore "github.com/MrJamesThe3rd/tally/internal/tax/store"
)

type App struct {
	Accounts *account.Service
	Journals *journal.Service
	Ledger   *ledger.Service
	Tax      *tax.Service
	Expenses *expense.Service
	Engine   *posting.Engine

	// DB is nil when running on the memory store.
	DB *sql.DB
	// Memory is set only when running on the memory store.
	Memory *memory.Store

	closers []func() error
}

type repositories struct {
	accounts account.Repository
	journals journal.Repository
	ledger   ledger.Repository
	tax      tax.Repository
	expenses expense.Repository
}

// New connects to the configured backends and builds the services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{}

	var repos repositories

	switch cfg.Ledger.Store {
	case config.StoreMemory:
		logger.Warn("using in-memory store, data will not survive a restart")

		a.Memory = memory.New()
		repos = repositories{a.Memory, a.Memory, a.Memory, a.Memory, a.Memory}
	default:
		db, err := database.New(cfg.ConnectionString(), database.PoolConfig{
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}

		a.DB = db
		a.closers = append(a.closers, db.Close)

		repos = repositories{
			accounts: accountStore.New(db),
			journals: journalStore.New(db),
			ledger:   ledgerStore.New(db),
			tax:      taxStore.New(db),
			expenses: expenseStore.New(db),
		}
	}

	locker, err := a.locker(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Accounts = account.NewService(repos.accounts)
	a.Journals = journal.NewService(repos.journals, journal.WithTolerance(cfg.Ledger.BalanceTolerance))
	a.Ledger = ledger.NewService(repos.ledger)
	a.Tax = tax.NewService(repos.tax)
	a.Engine = posting.NewEngine(a.Accounts, a.Journals,
		posting.WithMaxAttempts(cfg.Ledger.MaxPostAttempts),
		posting.WithLogger(logger),
	)
	a.Expenses = expense.NewService(repos.expenses, a.Engine, a.Journals, locker, logger)

	return a, nil
}

func (a *App) locker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (lock.Locker, error) {
	if cfg.Redis.Addr == "" {
		return lock.NewLocal(cfg.Redis.LockTTL), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
	}

	a.closers = append(a.closers, rdb.Close)
	logger.Info("using redis locks", "addr", cfg.Redis.Addr)

	return lock.NewRedis(rdb, cfg.Redis.LockTTL), nil
}

// Migrate brings the Postgres schema up to date. It is a no-op on the
// memory store.
func (a *App) Migrate(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}

	return database.Migrate(ctx, a.DB)
}

func (a *App) Close() error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	a.closers = nil

	return errors.Join(errs...)
}
