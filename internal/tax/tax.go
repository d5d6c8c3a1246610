package tax

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

// Kind selects which return-style summary to build.
type Kind string

const (
	KindGSTR1  Kind = "gstr1"
	KindGSTR3B Kind = "gstr3b"
	KindTDS    Kind = "tds"
)

var (
	ErrUnknownKind  = apperr.Sentinel(apperr.KindValidation, "unknown summary kind")
	ErrInvalidRange = apperr.Sentinel(apperr.KindValidation, "range start is after its end")
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindGSTR1, KindGSTR3B, KindTDS:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Source names a table of tax documents.
type Source string

const (
	SourceInvoices      Source = "invoices"
	SourceCreditNotes   Source = "credit_notes"
	SourcePurchaseBills Source = "purchase_bills"
	SourceDebitNotes    Source = "debit_notes"
)

// Range is an inclusive date range.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) Validate() error {
	if r.From.After(r.To) {
		return ErrInvalidRange
	}

	return nil
}

// Amounts pairs a taxable value with the tax charged on it.
type Amounts struct {
	Taxable decimal.Decimal
	Tax     decimal.Decimal
}

// NetOf subtracts returns from a, flooring each component at zero.
func (a Amounts) NetOf(returns Amounts) Amounts {
	return Amounts{
		Taxable: money.Floor0(a.Taxable.Sub(returns.Taxable)),
		Tax:     money.Floor0(a.Tax.Sub(returns.Tax)),
	}
}

// SupplyTotals shows documents, their returns and the floored net.
type SupplyTotals struct {
	Documents Amounts
	Returns   Amounts
	Net       Amounts
}

func newSupplyTotals(docs, returns Amounts) *SupplyTotals {
	return &SupplyTotals{Documents: docs, Returns: returns, Net: docs.NetOf(returns)}
}

// CategoryTotal is the TDS withheld under one rule category.
type CategoryTotal struct {
	Category          string
	TransactionAmount decimal.Decimal
	TDSAmount         decimal.Decimal
	Count             int
}

type TDSSummary struct {
	Categories        []CategoryTotal
	TransactionAmount decimal.Decimal
	TDSAmount         decimal.Decimal
	Count             int
}

// Summary is a return-ready aggregate. Sections not relevant to Kind are nil.
type Summary struct {
	Kind    Kind
	Range   Range
	Outward *SupplyTotals
	Inward  *SupplyTotals
	// NetPayable and CreditCarriedForward are set for GSTR-3B only.
	NetPayable           decimal.Decimal
	CreditCarriedForward decimal.Decimal
	TDS                  *TDSSummary
}
