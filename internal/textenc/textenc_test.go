package textenc_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/textenc"
)

func readAll(t *testing.T, in []byte) (string, string) {
	t.Helper()

	r, charset, err := textenc.NewReader(bytes.NewReader(in))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewReader_UTF8Passthrough(t *testing.T) {
	input := "- code: \"5001\"\n  name: Café & Refeições\n"

	got, charset := readAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, textenc.UTF8, charset)
}

func TestNewReader_Windows1252(t *testing.T) {
	// "name: Refeição\n" with ç = 0xE7 and ã = 0xE3.
	in := []byte{'n', 'a', 'm', 'e', ':', ' ', 'R', 'e', 'f', 'e', 'i', 0xE7, 0xE3, 'o', '\n'}

	got, charset := readAll(t, in)
	assert.Equal(t, "name: Refeição\n", got)
	assert.NotEqual(t, textenc.UTF8, charset)
}

func TestNewReader_StripsUTF8BOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name: Caixa\n")...)

	got, charset := readAll(t, in)
	assert.Equal(t, "name: Caixa\n", got)
	assert.Equal(t, textenc.UTF8, charset)
}

func TestNewReader_UTF16LE(t *testing.T) {
	in := []byte{0xFF, 0xFE, 'o', 0, 'k', 0, '\n', 0}

	got, charset := readAll(t, in)
	assert.Equal(t, "ok\n", got)
	assert.Equal(t, textenc.UTF16LE, charset)
}
