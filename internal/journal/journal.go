package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a journal.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusPosted Status = "posted"
	StatusVoid   Status = "void"
)

// Side says which column of the ledger a line lands in.
type Side int

const (
	SideDebit Side = iota + 1
	SideCredit
)

func (s Side) String() string {
	switch s {
	case SideDebit:
		return "debit"
	case SideCredit:
		return "credit"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Line is one leg of a journal. It is either a debit or a credit of a
// positive amount, never both.
type Line struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Side      Side
	Amount    decimal.Decimal
	Narration string
	Position  int
}

// Debit builds a debit line.
func Debit(accountID uuid.UUID, amount decimal.Decimal) Line {
	return Line{AccountID: accountID, Side: SideDebit, Amount: amount}
}

// Credit builds a credit line.
func Credit(accountID uuid.UUID, amount decimal.Decimal) Line {
	return Line{AccountID: accountID, Side: SideCredit, Amount: amount}
}

// DebitAmount is the line's debit column, zero for credits.
func (l Line) DebitAmount() decimal.Decimal {
	if l.Side == SideDebit {
		return l.Amount
	}

	return decimal.Zero
}

// CreditAmount is the line's credit column, zero for debits.
func (l Line) CreditAmount() decimal.Decimal {
	if l.Side == SideCredit {
		return l.Amount
	}

	return decimal.Zero
}

// Params converts the line back to its two-column form.
func (l Line) Params() LineParams {
	return LineParams{
		AccountID: l.AccountID,
		Debit:     l.DebitAmount(),
		Credit:    l.CreditAmount(),
		Narration: l.Narration,
	}
}

// Journal is one atomic accounting event.
type Journal struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Number    string
	Date      time.Time
	Narration string
	Status    Status
	Lines     []Line
	CreatedAt time.Time
}

// Totals returns the debit and credit sums.
func (j *Journal) Totals() (decimal.Decimal, decimal.Decimal) {
	return totals(j.Lines)
}

func totals(lines []Line) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero

	for _, l := range lines {
		debit = debit.Add(l.DebitAmount())
		credit = credit.Add(l.CreditAmount())
	}

	return debit, credit
}

// AccountIDs lists the distinct accounts the journal touches, in line order.
func (j *Journal) AccountIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(j.Lines))
	ids := make([]uuid.UUID, 0, len(j.Lines))

	for _, l := range j.Lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}

		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}

	return ids
}
