package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/textenc"
)

// ChartEntry is one account in a chart file.
type ChartEntry struct {
	Code           string
	Name           string
	Type           Type
	OpeningBalance decimal.Decimal
}

type chartFile struct {
	Accounts []struct {
		Code           string `yaml:"code"`
		Name           string `yaml:"name"`
		Type           string `yaml:"type"`
		OpeningBalance string `yaml:"opening_balance"`
	} `yaml:"accounts"`
}

// LoadChart decodes a YAML chart of accounts. The file may be in any
// encoding textenc recognises.
func LoadChart(r io.Reader) ([]ChartEntry, error) {
	utf8r, charset, err := textenc.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	if charset != textenc.UTF8 {
		slog.Debug("chart file converted to UTF-8", "charset", charset)
	}

	var file chartFile
	if err := yaml.NewDecoder(utf8r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding chart: %w", err)
	}

	entries := make([]ChartEntry, 0, len(file.Accounts))

	for i, a := range file.Accounts {
		typ, err := ParseType(a.Type)
		if err != nil {
			return nil, fmt.Errorf("chart entry %d: %w", i+1, err)
		}

		opening := decimal.Zero
		if a.OpeningBalance != "" {
			opening, err = decimal.NewFromString(a.OpeningBalance)
			if err != nil {
				return nil, fmt.Errorf("chart entry %d: opening balance: %w", i+1, err)
			}
		}

		entries = append(entries, ChartEntry{
			Code:           a.Code,
			Name:           a.Name,
			Type:           typ,
			OpeningBalance: opening,
		})
	}

	return entries, nil
}

type ImportResult struct {
	Created []*Account
	Skipped []string
}

// ImportChart creates the entries whose codes the owner does not have yet.
// Existing codes are reported as skipped and left untouched.
func (s *Service) ImportChart(ctx context.Context, ownerID uuid.UUID, entries []ChartEntry) (*ImportResult, error) {
	result := &ImportResult{}

	for _, e := range entries {
		acc, err := s.Create(ctx, CreateParams{
			OwnerID:        ownerID,
			Code:           e.Code,
			Name:           e.Name,
			Type:           e.Type,
			OpeningBalance: e.OpeningBalance,
		})
		if err != nil {
			var dup *DuplicateCodeError
			if errors.As(err, &dup) {
				result.Skipped = append(result.Skipped, e.Code)
				continue
			}

			return result, apperr.Wrap("importing chart entry "+e.Code, ownerID, err)
		}

		result.Created = append(result.Created, acc)
	}

	return result, nil
}
