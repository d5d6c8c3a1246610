package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/account"
)

// Entry is one posted journal line as seen from its account.
type Entry struct {
	JournalID     uuid.UUID
	JournalNumber string
	Date          time.Time
	Narration     string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// BalanceRow is one row of an account ledger. The first row of every
// ledger is the opening balance.
type BalanceRow struct {
	Opening       bool
	Date          time.Time
	JournalNumber string
	Narration     string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Balance       decimal.Decimal
}

// Totals are the posted debit and credit sums of one account.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// TrialBalanceRow is one account in a trial balance.
type TrialBalanceRow struct {
	AccountID uuid.UUID
	Code      string
	Name      string
	Type      account.Type
	Opening   decimal.Decimal
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Closing   decimal.Decimal
}

// TrialBalanceGroup collects the accounts sharing a code prefix.
type TrialBalanceGroup struct {
	Prefix   string
	Accounts []TrialBalanceRow
	Opening  decimal.Decimal
	Debit    decimal.Decimal
	Credit   decimal.Decimal
	Closing  decimal.Decimal
}

type TrialBalance struct {
	AsOf    *time.Time
	Groups  []TrialBalanceGroup
	Opening decimal.Decimal
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Closing decimal.Decimal
}

// Balanced reports whether posted debits equal posted credits.
func (tb *TrialBalance) Balanced() bool {
	return tb.Debit.Equal(tb.Credit)
}
