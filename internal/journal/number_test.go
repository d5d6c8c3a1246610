package journal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/journal"
)

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		last    string
		want    string
		wantErr bool
	}{
		{name: "FirstOfYear", year: 2024, last: "", want: "JV/2024/0001"},
		{name: "Increment", year: 2024, last: "JV/2024/0041", want: "JV/2024/0042"},
		{name: "PastFourDigits", year: 2024, last: "JV/2024/9999", want: "JV/2024/10000"},
		{name: "WrongYear", year: 2025, last: "JV/2024/0003", wantErr: true},
		{name: "Garbage", year: 2024, last: "INV-7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := journal.NextNumber(tt.year, tt.last)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumber(t *testing.T) {
	year, seq, err := journal.ParseNumber("JV/2023/0107")
	require.NoError(t, err)
	assert.Equal(t, 2023, year)
	assert.Equal(t, 107, seq)

	_, _, err = journal.ParseNumber("JV/2023/0000")
	assert.Error(t, err)
}
