package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// posted returns the owner's posted journals dated on or before asOf, in
// date then commit order. The caller must hold s.mu.
func (s *Store) posted(match func(*journal.Journal) bool, asOf *time.Time) []*journal.Journal {
	var out []*journal.Journal

	for _, j := range s.journals {
		if j.Status != journal.StatusPosted || !match(j) {
			continue
		}

		if asOf != nil && j.Date.After(*asOf) {
			continue
		}

		out = append(out, j)
	}

	slices.SortFunc(out, func(a, b *journal.Journal) int {
		return cmp.Or(a.Date.Compare(b.Date), cmp.Compare(s.seq[a.ID], s.seq[b.ID]))
	})

	return out
}

func (s *Store) ListEntries(_ context.Context, accountID uuid.UUID, asOf *time.Time) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	touches := func(j *journal.Journal) bool {
		return slices.ContainsFunc(j.Lines, func(l journal.Line) bool { return l.AccountID == accountID })
	}

	var entries []ledger.Entry

	for _, j := range s.posted(touches, asOf) {
		for _, l := range j.Lines {
			if l.AccountID != accountID {
				continue
			}

			narration := l.Narration
			if narration == "" {
				narration = j.Narration
			}

			entries = append(entries, ledger.Entry{
				JournalID:     j.ID,
				JournalNumber: j.Number,
				Date:          j.Date,
				Narration:     narration,
				Debit:         l.DebitAmount(),
				Credit:        l.CreditAmount(),
			})
		}
	}

	return entries, nil
}

func (s *Store) AccountTotals(_ context.Context, ownerID uuid.UUID, asOf *time.Time) (map[uuid.UUID]ledger.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := func(j *journal.Journal) bool { return j.OwnerID == ownerID }
	totals := make(map[uuid.UUID]ledger.Totals)

	for _, j := range s.posted(owned, asOf) {
		for _, l := range j.Lines {
			t := totals[l.AccountID]
			t.Debit = t.Debit.Add(l.DebitAmount())
			t.Credit = t.Credit.Add(l.CreditAmount())
			totals[l.AccountID] = t
		}
	}

	return totals, nil
}
