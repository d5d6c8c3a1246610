package posting_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/posting"
)

var (
	owner = uuid.New()
	date  = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// chart hands out one stable account per (type, name) and records the
// lookups it saw.
type chart struct {
	ids     map[string]uuid.UUID
	lookups []string
}

func newChart() *chart {
	return &chart{ids: make(map[string]uuid.UUID)}
}

func (c *chart) id(typ account.Type, name string) uuid.UUID {
	key := string(typ) + ":" + name
	if _, ok := c.ids[key]; !ok {
		c.ids[key] = uuid.New()
	}

	return c.ids[key]
}

func (c *chart) expect(m *posting.MockAccountResolver) {
	m.EXPECT().FindOrCreate(gomock.Any(), owner, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ownerID uuid.UUID, typ account.Type, hint string) (*account.Account, error) {
			c.lookups = append(c.lookups, string(typ)+":"+hint)
			return &account.Account{ID: c.id(typ, hint), OwnerID: ownerID, Name: hint, Type: typ, IsActive: true}, nil
		}).AnyTimes()
}

func capturePost(m *posting.MockPoster, got *journal.PostParams) *gomock.Call {
	return m.EXPECT().Post(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p journal.PostParams) (*journal.Journal, error) {
			*got = p
			return &journal.Journal{ID: uuid.New(), OwnerID: p.OwnerID, Number: "JV/2024/0001", Status: journal.StatusPosted}, nil
		})
}

func TestEngine_PostExpense(t *testing.T) {
	type wantLine struct {
		account string
		debit   string
		credit  string
	}

	tests := []struct {
		name          string
		event         posting.ExpenseEvent
		wantNarration string
		wantLines     []wantLine
	}{
		{
			name: "GrossTaxAndTDS",
			event: posting.ExpenseEvent{
				Date:         date,
				Description:  "Office rent",
				PayeeName:    "Acme Properties",
				CategoryName: "Rent",
				GrossAmount:  dec("10000.00"),
				TaxAmount:    dec("1800.00"),
				PaymentMode:  posting.PaymentBank,
				TDSAmount:    dec("1000.00"),
			},
			wantNarration: "Office rent - Acme Properties",
			wantLines: []wantLine{
				{account: "expense:Rent", debit: "10000.00"},
				{account: "asset:Input Tax Account", debit: "1800.00"},
				{account: "asset:Bank Account", credit: "10800.00"},
				{account: "liability:TDS Payable", credit: "1000.00"},
			},
		},
		{
			name: "TDSCoversWholePayment",
			event: posting.ExpenseEvent{
				Date:         date,
				PayeeName:    "Contractor",
				CategoryName: "Repairs",
				GrossAmount:  dec("500.00"),
				PaymentMode:  posting.PaymentCash,
				TDSAmount:    dec("500.00"),
			},
			wantNarration: "Repairs - Contractor",
			wantLines: []wantLine{
				{account: "expense:Repairs", debit: "500.00"},
				{account: "liability:TDS Payable", credit: "500.00"},
			},
		},
		{
			name: "PlainCreditCardExpense",
			event: posting.ExpenseEvent{
				Date:         date,
				Description:  "Team lunch",
				CategoryName: "Meals",
				GrossAmount:  dec("1234.5"),
				PaymentMode:  posting.PaymentCreditCard,
			},
			wantNarration: "Team lunch",
			wantLines: []wantLine{
				{account: "expense:Meals", debit: "1234.50"},
				{account: "asset:Credit Card Account", credit: "1234.50"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resolver := posting.NewMockAccountResolver(ctrl)
			poster := posting.NewMockPoster(ctrl)

			c := newChart()
			c.expect(resolver)

			var got journal.PostParams
			capturePost(poster, &got).Times(1)

			j, err := posting.NewEngine(resolver, poster).PostExpense(context.Background(), owner, tt.event)
			require.NoError(t, err)
			require.NotNil(t, j)

			assert.Equal(t, owner, got.OwnerID)
			assert.Equal(t, date, got.Date)
			assert.Equal(t, tt.wantNarration, got.Narration)
			require.Len(t, got.Lines, len(tt.wantLines))

			debits, credits := decimal.Zero, decimal.Zero

			for i, want := range tt.wantLines {
				line := got.Lines[i]

				typ, name, _ := strings.Cut(want.account, ":")
				assert.Equal(t, c.id(account.Type(typ), name), line.AccountID, "line %d account", i)

				if want.debit != "" {
					assert.Equal(t, want.debit, line.Debit.StringFixed(2), "line %d debit", i)
					assert.True(t, line.Credit.IsZero())
				} else {
					assert.Equal(t, want.credit, line.Credit.StringFixed(2), "line %d credit", i)
					assert.True(t, line.Debit.IsZero())
				}

				debits = debits.Add(line.Debit)
				credits = credits.Add(line.Credit)
			}

			assert.True(t, debits.Equal(credits), "debits %s credits %s", debits, credits)
		})
	}
}

func TestEngine_PostExpense_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		event posting.ExpenseEvent
		check func(t *testing.T, err error)
	}{
		{
			name: "TDSAboveTotal",
			event: posting.ExpenseEvent{
				CategoryName: "Rent",
				GrossAmount:  dec("100"),
				PaymentMode:  posting.PaymentBank,
				TDSAmount:    dec("100.01"),
			},
			check: func(t *testing.T, err error) {
				var degenerate *posting.DegenerateEventError
				assert.ErrorAs(t, err, &degenerate)
			},
		},
		{
			name: "NegativeTax",
			event: posting.ExpenseEvent{
				CategoryName: "Rent",
				GrossAmount:  dec("100"),
				TaxAmount:    dec("-1"),
				PaymentMode:  posting.PaymentBank,
			},
			check: func(t *testing.T, err error) {
				var degenerate *posting.DegenerateEventError
				assert.ErrorAs(t, err, &degenerate)
			},
		},
		{
			name:  "AllZero",
			event: posting.ExpenseEvent{CategoryName: "Nothing", PaymentMode: posting.PaymentCash},
			check: func(t *testing.T, err error) {
				var degenerate *posting.DegenerateEventError
				assert.ErrorAs(t, err, &degenerate)
			},
		},
		{
			name: "RoundsToZero",
			event: posting.ExpenseEvent{
				CategoryName: "Stamps",
				GrossAmount:  dec("0.004"),
				PaymentMode:  posting.PaymentCash,
			},
			check: func(t *testing.T, err error) {
				var degenerate *posting.DegenerateEventError
				assert.ErrorAs(t, err, &degenerate)
			},
		},
		{
			name: "UnknownPaymentMode",
			event: posting.ExpenseEvent{
				CategoryName: "Rent",
				GrossAmount:  dec("100"),
				PaymentMode:  posting.PaymentMode("barter"),
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, posting.ErrUnknownPaymentMode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resolver := posting.NewMockAccountResolver(ctrl)
			poster := posting.NewMockPoster(ctrl)
			resolver.EXPECT().FindOrCreate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			poster.EXPECT().Post(gomock.Any(), gomock.Any()).Times(0)

			_, err := posting.NewEngine(resolver, poster).PostExpense(context.Background(), owner, tt.event)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			tt.check(t, err)
		})
	}
}

func TestEngine_Retry(t *testing.T) {
	conflict := &apperr.SequenceConflictError{OwnerID: owner, Scope: "journal number", Value: "JV/2024/0001"}

	event := posting.ExpenseEvent{
		Date:         date,
		CategoryName: "Rent",
		GrossAmount:  dec("100"),
		PaymentMode:  posting.PaymentBank,
	}

	t.Run("SucceedsAfterConflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		resolver := posting.NewMockAccountResolver(ctrl)
		poster := posting.NewMockPoster(ctrl)
		newChart().expect(resolver)

		var got journal.PostParams
		gomock.InOrder(
			poster.EXPECT().Post(gomock.Any(), gomock.Any()).Return(nil, conflict),
			capturePost(poster, &got),
		)

		j, err := posting.NewEngine(resolver, poster).PostExpense(context.Background(), owner, event)
		require.NoError(t, err)
		assert.NotNil(t, j)
	})

	t.Run("GivesUpAfterMaxAttempts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		resolver := posting.NewMockAccountResolver(ctrl)
		poster := posting.NewMockPoster(ctrl)
		newChart().expect(resolver)
		poster.EXPECT().Post(gomock.Any(), gomock.Any()).Return(nil, conflict).Times(2)

		_, err := posting.NewEngine(resolver, poster, posting.WithMaxAttempts(2)).PostExpense(context.Background(), owner, event)
		assert.ErrorIs(t, err, conflict)
		assert.True(t, apperr.Retryable(err))
	})

	t.Run("OtherErrorsAreNotRetried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		resolver := posting.NewMockAccountResolver(ctrl)
		poster := posting.NewMockPoster(ctrl)
		newChart().expect(resolver)

		unbalanced := &journal.UnbalancedJournalError{Debit: dec("100"), Credit: dec("99")}
		poster.EXPECT().Post(gomock.Any(), gomock.Any()).Return(nil, unbalanced).Times(1)

		_, err := posting.NewEngine(resolver, poster).PostExpense(context.Background(), owner, event)
		assert.Equal(t, unbalanced, err)
	})

	t.Run("ConflictWhileResolvingAccounts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		resolver := posting.NewMockAccountResolver(ctrl)
		poster := posting.NewMockPoster(ctrl)

		codeConflict := &apperr.SequenceConflictError{OwnerID: owner, Scope: "account code", Value: "5001"}
		resolver.EXPECT().FindOrCreate(gomock.Any(), owner, account.TypeExpense, "Rent").Return(nil, codeConflict)
		newChart().expect(resolver)

		var got journal.PostParams
		capturePost(poster, &got)

		_, err := posting.NewEngine(resolver, poster).PostExpense(context.Background(), owner, event)
		require.NoError(t, err)
		assert.Len(t, got.Lines, 2)
	})
}

func TestEngine_PostTDSRemittance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := posting.NewMockAccountResolver(ctrl)
	poster := posting.NewMockPoster(ctrl)

	c := newChart()
	c.expect(resolver)

	var got journal.PostParams
	capturePost(poster, &got)

	_, err := posting.NewEngine(resolver, poster).PostTDSRemittance(context.Background(), owner, posting.TDSRemittance{
		Date:        date,
		Amount:      dec("1000"),
		PaymentMode: posting.PaymentUPI,
		Reference:   "CHALLAN-42",
	})
	require.NoError(t, err)

	assert.Equal(t, "TDS remittance - CHALLAN-42", got.Narration)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, c.id(account.TypeLiability, posting.TDSPayableAccount), got.Lines[0].AccountID)
	assert.Equal(t, "1000.00", got.Lines[0].Debit.StringFixed(2))
	assert.Equal(t, c.id(account.TypeAsset, posting.BankAccount), got.Lines[1].AccountID)
	assert.Equal(t, "1000.00", got.Lines[1].Credit.StringFixed(2))
}

func TestPaymentMode_AccountName(t *testing.T) {
	tests := map[posting.PaymentMode]string{
		posting.PaymentCash:       posting.CashAccount,
		posting.PaymentBank:       posting.BankAccount,
		posting.PaymentDebitCard:  posting.BankAccount,
		posting.PaymentUPI:        posting.BankAccount,
		posting.PaymentCheque:     posting.BankAccount,
		posting.PaymentCreditCard: posting.CreditCardAccount,
	}

	for mode, want := range tests {
		got, err := mode.AccountName()
		require.NoError(t, err)
		assert.Equal(t, want, got, string(mode))
	}

	_, err := posting.PaymentMode("").AccountName()
	assert.True(t, errors.Is(err, posting.ErrUnknownPaymentMode))
}
