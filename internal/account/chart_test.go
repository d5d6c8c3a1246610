package account_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/account"
)

func TestLoadChart(t *testing.T) {
	in := `
accounts:
  - code: "1001"
    name: Cash Account
    type: asset
    opening_balance: "2500.00"
  - code: "5001"
    name: Office Supplies
    type: Expense
`

	entries, err := account.LoadChart(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "1001", entries[0].Code)
	assert.Equal(t, account.TypeAsset, entries[0].Type)
	assert.Equal(t, "2500.00", entries[0].OpeningBalance.StringFixed(2))

	assert.Equal(t, account.TypeExpense, entries[1].Type)
	assert.True(t, entries[1].OpeningBalance.IsZero())
}

func TestLoadChart_InvalidType(t *testing.T) {
	in := "accounts:\n  - code: \"8001\"\n    name: Memo\n    type: memo\n"

	_, err := account.LoadChart(strings.NewReader(in))

	var typeErr *account.InvalidAccountTypeError
	assert.ErrorAs(t, err, &typeErr)
}
