package journal

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/money"
)

// DefaultTolerance is the largest debit/credit gap still treated as
// balanced.
var DefaultTolerance = decimal.New(5, -3)

// LineParams is the two-column form of a line as callers submit it.
type LineParams struct {
	AccountID uuid.UUID
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Narration string
}

// Validate checks a set of submitted lines and returns them as Lines.
// Checks run in order: line count, per-line shape, balance of the
// rounded amounts.
func Validate(params []LineParams, tolerance decimal.Decimal) ([]Line, error) {
	nonZero := 0

	for _, p := range params {
		if !p.Debit.IsZero() || !p.Credit.IsZero() {
			nonZero++
		}
	}

	if nonZero < 2 {
		return nil, &InsufficientLinesError{NonZero: nonZero}
	}

	lines := make([]Line, 0, len(params))

	for i, p := range params {
		line, err := toLine(i, p)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	// Lines are stored at two places, so balance is checked on what is stored.
	debit, credit := totals(lines)

	if !debit.IsPositive() || debit.Sub(credit).Abs().GreaterThan(tolerance) {
		return nil, &UnbalancedJournalError{Debit: debit, Credit: credit}
	}

	return lines, nil
}

func toLine(i int, p LineParams) (Line, error) {
	switch {
	case p.AccountID == uuid.Nil:
		return Line{}, &InvalidLineError{Index: i, Reason: "account is required"}
	case p.Debit.IsNegative() || p.Credit.IsNegative():
		return Line{}, &InvalidLineError{Index: i, Reason: "amounts must not be negative"}
	case !p.Debit.IsZero() && !p.Credit.IsZero():
		return Line{}, &InvalidLineError{Index: i, Reason: "line has both debit and credit"}
	case p.Debit.IsZero() && p.Credit.IsZero():
		return Line{}, &InvalidLineError{Index: i, Reason: "line has no amount"}
	}

	var line Line
	if p.Debit.IsPositive() {
		line = Debit(p.AccountID, money.Round2(p.Debit))
	} else {
		line = Credit(p.AccountID, money.Round2(p.Credit))
	}

	if line.Amount.IsZero() {
		return Line{}, &InvalidLineError{Index: i, Reason: "amount rounds to zero"}
	}

	line.Narration = p.Narration
	line.Position = i

	return line, nil
}
