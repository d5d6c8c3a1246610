// Package posting expands business events into balanced journals.
package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

// PaymentMode is how an expense was paid.
type PaymentMode string

const (
	PaymentCash       PaymentMode = "cash"
	PaymentBank       PaymentMode = "bank"
	PaymentDebitCard  PaymentMode = "debit_card"
	PaymentUPI        PaymentMode = "upi"
	PaymentCheque     PaymentMode = "cheque"
	PaymentCreditCard PaymentMode = "credit_card"
)

// Names of the accounts the engine resolves on its own.
const (
	CashAccount       = "Cash Account"
	BankAccount       = "Bank Account"
	CreditCardAccount = "Credit Card Account"
	InputTaxAccount   = "Input Tax Account"
	TDSPayableAccount = "TDS Payable"
)

var ErrUnknownPaymentMode = apperr.Sentinel(apperr.KindValidation, "unknown payment mode")

// AccountName returns the asset account a payment mode draws from.
func (m PaymentMode) AccountName() (string, error) {
	switch m {
	case PaymentCash:
		return CashAccount, nil
	case PaymentBank, PaymentDebitCard, PaymentUPI, PaymentCheque:
		return BankAccount, nil
	case PaymentCreditCard:
		return CreditCardAccount, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMode, string(m))
	}
}

// ExpenseEvent is a paid expense, possibly with input tax and TDS withheld.
type ExpenseEvent struct {
	Date         time.Time
	Description  string
	PayeeName    string
	CategoryName string
	GrossAmount  decimal.Decimal
	TaxAmount    decimal.Decimal
	PaymentMode  PaymentMode
	TDSAmount    decimal.Decimal
}

// Narration is "<description> - <payee>", falling back to the category
// when there is no description.
func (e ExpenseEvent) Narration() string {
	desc := e.Description
	if desc == "" {
		desc = e.CategoryName
	}

	if e.PayeeName == "" {
		return desc
	}

	return desc + " - " + e.PayeeName
}

// TDSRemittance is a payment of withheld tax to the government.
type TDSRemittance struct {
	Date        time.Time
	Amount      decimal.Decimal
	PaymentMode PaymentMode
	Reference   string
}

// DegenerateEventError is returned for events that cannot produce a valid
// journal.
type DegenerateEventError struct {
	Reason string
}

func (e *DegenerateEventError) Error() string {
	return "degenerate event: " + e.Reason
}

func (e *DegenerateEventError) Kind() apperr.Kind { return apperr.KindValidation }
