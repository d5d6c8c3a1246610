// Package money holds the decimal helpers shared by the ledger packages.
// Amounts are shopspring decimals with two places at rest.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept at rest.
const Places = 2

var (
	Zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

// Round2 rounds half away from zero to two places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent returns amount * rate / 100, unrounded.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}

// Floor0 clamps negative values to zero.
func Floor0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return Zero
	}

	return d
}

// Sum adds up the given amounts.
func Sum(ds ...decimal.Decimal) decimal.Decimal {
	total := Zero
	for _, d := range ds {
		total = total.Add(d)
	}

	return total
}

// Parse reads a decimal string such as "1234.50".
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return d, nil
}

// Format renders d with exactly two places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// FromCents converts an integer number of minor units.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -Places)
}
