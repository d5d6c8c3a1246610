package tax

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/money"
)

// Withholding splits a payment into the tax deducted at source and the
// amount actually paid out.
type Withholding struct {
	Amount decimal.Decimal
	Rate   decimal.Decimal
	TDS    decimal.Decimal
	Net    decimal.Decimal
}

// Withhold computes TDS at ratePercent on amount. The deduction is rounded
// half-up to two places once; the net is derived from it, so TDS and Net
// always add back up to the rounded amount.
func Withhold(amount, ratePercent decimal.Decimal) Withholding {
	tds := money.Round2(money.Percent(amount, ratePercent))

	return Withholding{
		Amount: amount,
		Rate:   ratePercent,
		TDS:    tds,
		Net:    money.Round2(amount.Sub(tds)),
	}
}
