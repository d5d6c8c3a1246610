package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/posting"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusPosted Status = "posted"
)

var (
	ErrNotFound      = apperr.Sentinel(apperr.KindNotFound, "expense not found")
	ErrRuleNotFound  = apperr.Sentinel(apperr.KindValidation, "tds rule not found")
	ErrEmptyCategory = apperr.Sentinel(apperr.KindValidation, "expense category is required")
	ErrInvalidAmount = apperr.Sentinel(apperr.KindValidation, "expense amounts must be non-negative and gross must be positive")
	ErrAlreadyPosted = apperr.Sentinel(apperr.KindConflict, "expense is already posted")
)

// Expense is a purchase recorded outside the ledger until it is posted.
type Expense struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Date         time.Time
	PayeeName    string
	CategoryName string
	Description  string
	GrossAmount  decimal.Decimal
	TaxAmount    decimal.Decimal
	TDSAmount    decimal.Decimal
	TDSRuleID    *uuid.UUID
	PaymentMode  posting.PaymentMode
	Status       Status
	JournalID    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Event converts the expense into what the posting engine consumes.
func (e *Expense) Event() posting.ExpenseEvent {
	return posting.ExpenseEvent{
		Date:         e.Date,
		Description:  e.Description,
		PayeeName:    e.PayeeName,
		CategoryName: e.CategoryName,
		GrossAmount:  e.GrossAmount,
		TaxAmount:    e.TaxAmount,
		PaymentMode:  e.PaymentMode,
		TDSAmount:    e.TDSAmount,
	}
}

// Rule is a TDS section with the rate withheld under it.
type Rule struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Section     string
	Category    string
	RatePercent decimal.Decimal
}
