package account

import (
	"fmt"
	"strconv"
	"strings"
)

const codeWidth = 3

// MaxCodeLen bounds codes so every numeric suffix fits an int.
const MaxCodeLen = 12

// FormatCode joins a prefix and a sequence number, zero-padding the number
// to three digits.
func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s%0*d", prefix, codeWidth, n)
}

// CodeSuffix parses the numeric part of code after prefix. An empty code
// and a code that is just the prefix both yield 0.
func CodeSuffix(prefix, code string) (int, error) {
	if code == "" {
		return 0, nil
	}

	rest, ok := strings.CutPrefix(code, prefix)
	if !ok {
		return 0, fmt.Errorf("code %q does not carry prefix %q", code, prefix)
	}

	if rest == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("code %q has a non-numeric suffix", code)
	}

	return n, nil
}

// NextCode returns the code that follows highest under prefix.
func NextCode(prefix, highest string) (string, error) {
	n, err := CodeSuffix(prefix, highest)
	if err != nil {
		return "", err
	}

	return FormatCode(prefix, n+1), nil
}

// codeLess orders codes by length first so that 51000 sorts after 5999.
func codeLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}

	return a < b
}

// HighestCode picks the greatest code in codes that starts with prefix.
// Codes whose suffix does not parse take no part in numbering.
func HighestCode(prefix string, codes []string) string {
	var best string

	for _, c := range codes {
		if !strings.HasPrefix(c, prefix) || len(c) > MaxCodeLen {
			continue
		}

		if _, err := CodeSuffix(prefix, c); err != nil {
			continue
		}

		if best == "" || codeLess(best, c) {
			best = c
		}
	}

	return best
}
