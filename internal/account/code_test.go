package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/account"
)

func TestNextCode(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		highest string
		want    string
		wantErr bool
	}{
		{name: "FirstCode", prefix: "5", highest: "", want: "5001"},
		{name: "Increment", prefix: "5", highest: "5002", want: "5003"},
		{name: "CarriesPastPadding", prefix: "1", highest: "1999", want: "11000"},
		{name: "BarePrefix", prefix: "1", highest: "1", want: "1001"},
		{name: "WrongPrefix", prefix: "5", highest: "4001", wantErr: true},
		{name: "NonNumeric", prefix: "5", highest: "5abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := account.NextCode(tt.prefix, tt.highest)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHighestCode(t *testing.T) {
	assert.Equal(t, "5010", account.HighestCode("5", []string{"5001", "4009", "5010", "5002"}))
	assert.Equal(t, "51000", account.HighestCode("5", []string{"5999", "51000", "5998"}))
	assert.Equal(t, "", account.HighestCode("3", []string{"1001", "2001"}))
}

func TestHighestCode_SkipsCodesThatCannotBeNumbered(t *testing.T) {
	codes := []string{"1", "1002", "1000000000000000000001"}

	highest := account.HighestCode("1", codes)
	assert.Equal(t, "1002", highest)

	next, err := account.NextCode("1", highest)
	require.NoError(t, err)
	assert.Equal(t, "1003", next)

	next, err = account.NextCode("1", account.HighestCode("1", []string{"1"}))
	require.NoError(t, err)
	assert.Equal(t, "1001", next)
}

func TestType_Prefix(t *testing.T) {
	want := map[account.Type]string{
		account.TypeAsset:     "1",
		account.TypeLiability: "2",
		account.TypeEquity:    "3",
		account.TypeIncome:    "4",
		account.TypeExpense:   "5",
		account.Type("memo"):  "9",
	}

	for typ, prefix := range want {
		assert.Equal(t, prefix, typ.Prefix(), string(typ))
	}

	_, err := account.ParseType("Contra")

	var typeErr *account.InvalidAccountTypeError
	assert.ErrorAs(t, err, &typeErr)

	typ, err := account.ParseType(" Expense ")
	require.NoError(t, err)
	assert.Equal(t, account.TypeExpense, typ)
}
