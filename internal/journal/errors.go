package journal

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

var (
	ErrNotFound        = apperr.Sentinel(apperr.KindNotFound, "journal not found")
	ErrAccountNotFound = apperr.Sentinel(apperr.KindValidation, "journal references an unknown account")
	ErrAccountInactive = apperr.Sentinel(apperr.KindValidation, "journal references an inactive account")
	ErrNotPosted       = apperr.Sentinel(apperr.KindValidation, "only posted journals can be voided")
)

// InsufficientLinesError is returned when fewer than two lines carry an
// amount.
type InsufficientLinesError struct {
	NonZero int
}

func (e *InsufficientLinesError) Error() string {
	return fmt.Sprintf("journal needs at least 2 non-zero lines, got %d", e.NonZero)
}

func (e *InsufficientLinesError) Kind() apperr.Kind { return apperr.KindValidation }

// InvalidLineError describes a single malformed line.
type InvalidLineError struct {
	Index  int
	Reason string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Index+1, e.Reason)
}

func (e *InvalidLineError) Kind() apperr.Kind { return apperr.KindValidation }

// UnbalancedJournalError carries the totals that failed to balance.
type UnbalancedJournalError struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

func (e *UnbalancedJournalError) Error() string {
	return fmt.Sprintf("journal does not balance: debit %s, credit %s",
		e.Debit.StringFixed(2), e.Credit.StringFixed(2))
}

func (e *UnbalancedJournalError) Kind() apperr.Kind { return apperr.KindValidation }

// Difference is debit minus credit.
func (e *UnbalancedJournalError) Difference() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

type accountError struct {
	err       error
	accountID uuid.UUID
}

func (e *accountError) Error() string     { return fmt.Sprintf("%v: %s", e.err, e.accountID) }
func (e *accountError) Unwrap() error     { return e.err }
func (e *accountError) Kind() apperr.Kind { return apperr.KindValidation }
