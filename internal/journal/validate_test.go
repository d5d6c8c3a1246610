package journal_test

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dr(acc uuid.UUID, amount string) journal.LineParams {
	return journal.LineParams{AccountID: acc, Debit: dec(amount)}
}

func cr(acc uuid.UUID, amount string) journal.LineParams {
	return journal.LineParams{AccountID: acc, Credit: dec(amount)}
}

func TestValidate(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name    string
		lines   []journal.LineParams
		wantErr any
	}{
		{
			name:  "Balanced",
			lines: []journal.LineParams{dr(a, "500.00"), cr(b, "500.00")},
		},
		{
			name:  "WithinTolerance",
			lines: []journal.LineParams{dr(a, "100.004"), cr(b, "100.00")},
		},
		{
			name:    "OffByOneCent",
			lines:   []journal.LineParams{dr(a, "500.00"), cr(b, "499.99")},
			wantErr: &journal.UnbalancedJournalError{},
		},
		{
			name:    "SingleLine",
			lines:   []journal.LineParams{dr(a, "10.00")},
			wantErr: &journal.InsufficientLinesError{},
		},
		{
			name:    "ZeroLinesDoNotCount",
			lines:   []journal.LineParams{dr(a, "10.00"), {AccountID: b}, {AccountID: c}},
			wantErr: &journal.InsufficientLinesError{},
		},
		{
			name:    "ZeroLineAmongValidOnes",
			lines:   []journal.LineParams{dr(a, "10.00"), cr(b, "10.00"), {AccountID: c}},
			wantErr: &journal.InvalidLineError{},
		},
		{
			name: "BothSides",
			lines: []journal.LineParams{
				{AccountID: a, Debit: dec("10.00"), Credit: dec("10.00")},
				cr(b, "10.00"),
			},
			wantErr: &journal.InvalidLineError{},
		},
		{
			name:    "Negative",
			lines:   []journal.LineParams{dr(a, "-10.00"), cr(b, "-10.00")},
			wantErr: &journal.InvalidLineError{},
		},
		{
			name:    "MissingAccount",
			lines:   []journal.LineParams{dr(uuid.Nil, "10.00"), cr(b, "10.00")},
			wantErr: &journal.InvalidLineError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := journal.Validate(tt.lines, journal.DefaultTolerance)

			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Len(t, lines, len(tt.lines))
			case *journal.UnbalancedJournalError:
				require.ErrorAs(t, err, &want)
			case *journal.InsufficientLinesError:
				require.ErrorAs(t, err, &want)
			case *journal.InvalidLineError:
				require.ErrorAs(t, err, &want)
			}

			if tt.wantErr != nil {
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			}
		})
	}
}

func TestValidate_UnbalancedCarriesTotals(t *testing.T) {
	_, err := journal.Validate(
		[]journal.LineParams{dr(uuid.New(), "500.00"), cr(uuid.New(), "499.99")},
		journal.DefaultTolerance,
	)

	var unbalanced *journal.UnbalancedJournalError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, "500.00", unbalanced.Debit.StringFixed(2))
	assert.Equal(t, "499.99", unbalanced.Credit.StringFixed(2))
	assert.Equal(t, "0.01", unbalanced.Difference().StringFixed(2))
}

func TestValidate_BalanceProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(20240401, 7))

	for i := 0; i < 2000; i++ {
		n := 2 + rng.IntN(6)
		lines := make([]journal.LineParams, n)
		debit, credit := decimal.Zero, decimal.Zero

		for j := range lines {
			// Amounts in thousandths so some sets land inside the tolerance band.
			amount := decimal.New(10+rng.Int64N(10_000_000), -3)
			if j == 0 || (j != 1 && rng.IntN(2) == 0) {
				lines[j] = journal.LineParams{AccountID: uuid.New(), Debit: amount}
				debit = debit.Add(amount)
			} else {
				lines[j] = journal.LineParams{AccountID: uuid.New(), Credit: amount}
				credit = credit.Add(amount)
			}
		}

		// Half the sets are forced to balance by topping up the last line.
		if rng.IntN(2) == 0 {
			gap := debit.Sub(credit)
			last := &lines[n-1]

			switch {
			case gap.IsPositive() && !last.Credit.IsZero():
				last.Credit = last.Credit.Add(gap)
				credit = credit.Add(gap)
			case gap.IsNegative() && !last.Debit.IsZero():
				last.Debit = last.Debit.Sub(gap)
				debit = debit.Sub(gap)
			}
		}

		// Balance is judged on the two-place amounts that get stored.
		debit, credit = decimal.Zero, decimal.Zero
		for _, l := range lines {
			debit = debit.Add(money.Round2(l.Debit))
			credit = credit.Add(money.Round2(l.Credit))
		}

		balanced := debit.Sub(credit).Abs().LessThanOrEqual(journal.DefaultTolerance)

		got, err := journal.Validate(lines, journal.DefaultTolerance)
		if balanced {
			require.NoError(t, err, "set %d: debit %s credit %s", i, debit, credit)

			d, c := decimal.Zero, decimal.Zero
			for _, l := range got {
				d = d.Add(l.DebitAmount())
				c = c.Add(l.CreditAmount())
			}

			assert.True(t, d.Equal(debit), "set %d", i)
			assert.True(t, c.Equal(credit), "set %d", i)
			assert.True(t, d.Sub(c).Abs().LessThanOrEqual(journal.DefaultTolerance), "set %d", i)

			continue
		}

		var unbalanced *journal.UnbalancedJournalError
		require.ErrorAs(t, err, &unbalanced, "set %d", i)
		assert.True(t, unbalanced.Debit.Equal(debit))
		assert.True(t, unbalanced.Credit.Equal(credit))
	}
}

func TestValidate_RoundingCannotUnbalance(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	// 0.005 + 0.005 balances 0.01 exactly, but each debit rounds up to 0.01.
	_, err := journal.Validate(
		[]journal.LineParams{dr(a, "0.005"), dr(a, "0.005"), cr(b, "0.01")},
		journal.DefaultTolerance,
	)

	var unbalanced *journal.UnbalancedJournalError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, "0.02", unbalanced.Debit.StringFixed(2))
	assert.Equal(t, "0.01", unbalanced.Credit.StringFixed(2))
}

func TestLine_Variant(t *testing.T) {
	acc := uuid.New()

	d := journal.Debit(acc, dec("12.50"))
	assert.Equal(t, journal.SideDebit, d.Side)
	assert.Equal(t, "12.50", d.DebitAmount().StringFixed(2))
	assert.True(t, d.CreditAmount().IsZero())

	c := journal.Credit(acc, dec("3.00"))
	assert.True(t, c.DebitAmount().IsZero())
	assert.Equal(t, "3.00", c.Params().Credit.StringFixed(2))
}
