package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestFold(t *testing.T) {
	rows := ledger.Fold(dec("1000.00"), []ledger.Entry{
		{Date: date(2024, 4, 1), JournalNumber: "JV/2024/0001", Debit: dec("200"), Credit: decimal.Zero},
		{Date: date(2024, 4, 2), JournalNumber: "JV/2024/0002", Debit: decimal.Zero, Credit: dec("50")},
	})

	require.Len(t, rows, 3)

	assert.True(t, rows[0].Opening)
	assert.Equal(t, "1000.00", rows[0].Balance.StringFixed(2))

	assert.Equal(t, "200.00", rows[1].Debit.StringFixed(2))
	assert.Equal(t, "1200.00", rows[1].Balance.StringFixed(2))

	assert.Equal(t, "50.00", rows[2].Credit.StringFixed(2))
	assert.Equal(t, "1150.00", rows[2].Balance.StringFixed(2))
}

func TestFold_NoEntries(t *testing.T) {
	rows := ledger.Fold(dec("-75.50"), nil)

	require.Len(t, rows, 1)
	assert.True(t, rows[0].Opening)
	assert.Equal(t, "-75.50", rows[0].Balance.StringFixed(2))
}

func TestFold_PrefixSums(t *testing.T) {
	opening := dec("312.40")
	entries := make([]ledger.Entry, 0, 40)

	for i := range 40 {
		e := ledger.Entry{Date: date(2024, 1, 1).AddDate(0, 0, i), Debit: decimal.Zero, Credit: decimal.Zero}
		amount := decimal.New(int64(1000+i*37), -2)

		if i%3 == 0 {
			e.Credit = amount
		} else {
			e.Debit = amount
		}

		entries = append(entries, e)
	}

	rows := ledger.Fold(opening, entries)
	require.Len(t, rows, len(entries)+1)

	want := opening

	for i, e := range entries {
		want = want.Add(e.Debit).Sub(e.Credit)
		assert.True(t, want.Equal(rows[i+1].Balance), "row %d", i+1)

		if i > 0 {
			assert.False(t, rows[i+1].Date.Before(rows[i].Date))
		}
	}
}

func TestService_RunningBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	acc := &account.Account{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Code:           "1001",
		Name:           "Cash Account",
		Type:           account.TypeAsset,
		OpeningBalance: dec("1000.00"),
	}
	asOf := date(2024, 4, 30)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().GetAccount(gomock.Any(), acc.ID).Return(acc, nil)
	repo.EXPECT().
		ListEntries(gomock.Any(), acc.ID, &asOf).
		Return([]ledger.Entry{
			{Date: date(2024, 4, 1), Debit: dec("200.00"), Credit: decimal.Zero},
			{Date: date(2024, 4, 9), Debit: decimal.Zero, Credit: dec("50.00")},
		}, nil)

	rows, err := ledger.NewService(repo).RunningBalance(context.Background(), acc.ID, &asOf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1150.00", rows[2].Balance.StringFixed(2))
}

func TestService_RunningBalance_UnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().GetAccount(gomock.Any(), id).Return(nil, account.ErrNotFound)

	_, err := ledger.NewService(repo).RunningBalance(context.Background(), id, nil)
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestService_TrialBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	cash := &account.Account{ID: uuid.New(), Code: "1001", Name: "Cash Account", Type: account.TypeAsset, OpeningBalance: dec("500")}
	bank := &account.Account{ID: uuid.New(), Code: "1002", Name: "Bank Account", Type: account.TypeAsset, OpeningBalance: decimal.Zero}
	capital := &account.Account{ID: uuid.New(), Code: "3001", Name: "Capital", Type: account.TypeEquity, OpeningBalance: dec("-500")}
	rent := &account.Account{ID: uuid.New(), Code: "5001", Name: "Rent", Type: account.TypeExpense, OpeningBalance: decimal.Zero}

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		ListAccounts(gomock.Any(), account.ListFilter{OwnerID: owner}).
		Return([]*account.Account{rent, bank, cash, capital}, nil)
	repo.EXPECT().
		AccountTotals(gomock.Any(), owner, nil).
		Return(map[uuid.UUID]ledger.Totals{
			cash.ID: {Debit: decimal.Zero, Credit: dec("120")},
			rent.ID: {Debit: dec("120"), Credit: decimal.Zero},
		}, nil)

	tb, err := ledger.NewService(repo).TrialBalance(context.Background(), owner, nil)
	require.NoError(t, err)

	require.Len(t, tb.Groups, 3)
	assert.Equal(t, "1", tb.Groups[0].Prefix)
	require.Len(t, tb.Groups[0].Accounts, 2)
	assert.Equal(t, "1001", tb.Groups[0].Accounts[0].Code)
	assert.Equal(t, "380.00", tb.Groups[0].Accounts[0].Closing.StringFixed(2))
	assert.Equal(t, "380.00", tb.Groups[0].Closing.StringFixed(2))

	assert.True(t, tb.Balanced())
	assert.Equal(t, "120.00", tb.Debit.StringFixed(2))
	assert.True(t, tb.Closing.IsZero())
}
