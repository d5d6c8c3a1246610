package journal

import (
	"fmt"
	"strconv"
	"strings"
)

const numberPrefix = "JV"

// FormatNumber renders a journal number as JV/<year>/<seq>.
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("%s/%d/%04d", numberPrefix, year, seq)
}

// NumberPrefix is the part of every number in year before the sequence.
func NumberPrefix(year int) string {
	return fmt.Sprintf("%s/%d/", numberPrefix, year)
}

// ParseNumber splits a journal number into its year and sequence.
func ParseNumber(number string) (int, int, error) {
	parts := strings.Split(number, "/")
	if len(parts) != 3 || parts[0] != numberPrefix {
		return 0, 0, fmt.Errorf("invalid journal number %q", number)
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid journal number %q: year: %w", number, err)
	}

	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return 0, 0, fmt.Errorf("invalid journal number %q: sequence", number)
	}

	return year, seq, nil
}

// NextNumber returns the number following last in year. An empty last
// starts the year at 0001.
func NextNumber(year int, last string) (string, error) {
	if last == "" {
		return FormatNumber(year, 1), nil
	}

	lastYear, seq, err := ParseNumber(last)
	if err != nil {
		return "", err
	}

	if lastYear != year {
		return "", fmt.Errorf("journal number %q is not in %d", last, year)
	}

	return FormatNumber(year, seq+1), nil
}
