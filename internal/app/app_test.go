package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/posting"
)

func TestNew_Memory(t *testing.T) {
	t.Setenv("LEDGER_STORE", config.StoreMemory)
	t.Setenv("LEDGER_BALANCE_TOLERANCE", "0")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := app.New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	defer a.Close()

	require.NotNil(t, a.Memory)
	assert.Nil(t, a.DB)
	require.NoError(t, a.Migrate(context.Background()))

	owner := uuid.New()
	ctx := context.Background()

	e, err := a.Expenses.Create(ctx, expense.CreateParams{
		OwnerID:      owner,
		Date:         time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		CategoryName: "Stationery",
		GrossAmount:  decimal.NewFromInt(250),
		PaymentMode:  posting.PaymentCash,
	})
	require.NoError(t, err)

	posted, err := a.Expenses.Post(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, posted.JournalID)

	tb, err := a.Ledger.TrialBalance(ctx, owner, nil)
	require.NoError(t, err)
	assert.True(t, tb.Balanced())
	assert.Equal(t, "250.00", tb.Debit.StringFixed(2))
}
