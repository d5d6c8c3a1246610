package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	ListAccounts(ctx context.Context, filter account.ListFilter) ([]*account.Account, error)
	// ListEntries returns the account's lines from posted journals dated on
	// or before asOf, ordered by journal date then insertion order.
	ListEntries(ctx context.Context, accountID uuid.UUID, asOf *time.Time) ([]Entry, error)
	// AccountTotals sums posted lines per account for the owner.
	AccountTotals(ctx context.Context, ownerID uuid.UUID, asOf *time.Time) (map[uuid.UUID]Totals, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

const openingNarration = "Opening Balance"

// RunningBalance folds the account's posted lines over its opening balance.
func (s *Service) RunningBalance(ctx context.Context, accountID uuid.UUID, asOf *time.Time) ([]BalanceRow, error) {
	acc, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, apperr.Wrap("loading account", uuid.Nil, err)
	}

	entries, err := s.repo.ListEntries(ctx, accountID, asOf)
	if err != nil {
		return nil, apperr.Wrap("listing ledger entries", acc.OwnerID, err)
	}

	return Fold(acc.OpeningBalance, entries), nil
}

// Fold emits the opening row followed by one row per entry, each carrying
// the balance after it.
func Fold(opening decimal.Decimal, entries []Entry) []BalanceRow {
	rows := make([]BalanceRow, 0, len(entries)+1)
	rows = append(rows, BalanceRow{
		Opening:   true,
		Narration: openingNarration,
		Debit:     decimal.Zero,
		Credit:    decimal.Zero,
		Balance:   opening,
	})

	running := opening

	for _, e := range entries {
		running = running.Add(e.Debit).Sub(e.Credit)
		rows = append(rows, BalanceRow{
			Date:          e.Date,
			JournalNumber: e.JournalNumber,
			Narration:     e.Narration,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Balance:       running,
		})
	}

	return rows
}

// TrialBalance lists every account of the owner with its opening, posted
// movement and closing balance, grouped by code prefix.
func (s *Service) TrialBalance(ctx context.Context, ownerID uuid.UUID, asOf *time.Time) (*TrialBalance, error) {
	accounts, err := s.repo.ListAccounts(ctx, account.ListFilter{OwnerID: ownerID})
	if err != nil {
		return nil, apperr.Wrap("listing accounts", ownerID, err)
	}

	totals, err := s.repo.AccountTotals(ctx, ownerID, asOf)
	if err != nil {
		return nil, apperr.Wrap("summing ledger", ownerID, err)
	}

	tb := &TrialBalance{
		AsOf:    asOf,
		Opening: decimal.Zero,
		Debit:   decimal.Zero,
		Credit:  decimal.Zero,
		Closing: decimal.Zero,
	}

	groups := make(map[string]*TrialBalanceGroup)

	var prefixes []string

	for _, acc := range accounts {
		t, ok := totals[acc.ID]
		if !ok {
			t = Totals{Debit: decimal.Zero, Credit: decimal.Zero}
		}

		row := TrialBalanceRow{
			AccountID: acc.ID,
			Code:      acc.Code,
			Name:      acc.Name,
			Type:      acc.Type,
			Opening:   acc.OpeningBalance,
			Debit:     t.Debit,
			Credit:    t.Credit,
			Closing:   acc.OpeningBalance.Add(t.Debit).Sub(t.Credit),
		}

		prefix := acc.Type.Prefix()

		grp, ok := groups[prefix]
		if !ok {
			grp = &TrialBalanceGroup{
				Prefix:  prefix,
				Opening: decimal.Zero,
				Debit:   decimal.Zero,
				Credit:  decimal.Zero,
				Closing: decimal.Zero,
			}
			groups[prefix] = grp
			prefixes = append(prefixes, prefix)
		}

		grp.Accounts = append(grp.Accounts, row)
		grp.Opening = grp.Opening.Add(row.Opening)
		grp.Debit = grp.Debit.Add(row.Debit)
		grp.Credit = grp.Credit.Add(row.Credit)
		grp.Closing = grp.Closing.Add(row.Closing)
	}

	sort.Strings(prefixes)

	for _, p := range prefixes {
		grp := groups[p]
		sort.Slice(grp.Accounts, func(i, j int) bool {
			a, b := grp.Accounts[i].Code, grp.Accounts[j].Code
			if len(a) != len(b) {
				return len(a) < len(b)
			}

			return a < b
		})

		tb.Groups = append(tb.Groups, *grp)
		tb.Opening = tb.Opening.Add(grp.Opening)
		tb.Debit = tb.Debit.Add(grp.Debit)
		tb.Credit = tb.Credit.Add(grp.Credit)
		tb.Closing = tb.Closing.Add(grp.Closing)
	}

	return tb, nil
}
