package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1.005", want: "1.01"},
		{in: "1.004", want: "1.00"},
		{in: "-1.005", want: "-1.01"},
		{in: "10", want: "10.00"},
		{in: "0.125", want: "0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Format(money.Round2(dec(tt.in))))
		})
	}
}

func TestFloor0(t *testing.T) {
	assert.True(t, money.Floor0(dec("-0.01")).IsZero())
	assert.True(t, money.Floor0(dec("3.50")).Equal(dec("3.5")))
}

func TestSumAndParse(t *testing.T) {
	got := money.Sum(dec("0.10"), dec("0.20"), dec("0.30"))
	assert.True(t, got.Equal(dec("0.6")))

	d, err := money.Parse("1234.50")
	require.NoError(t, err)
	assert.Equal(t, "1234.50", money.Format(d))

	_, err = money.Parse("12,50")
	assert.Error(t, err)

	assert.Equal(t, "-588.74", money.Format(money.FromCents(-58874)))
}
