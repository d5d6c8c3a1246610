package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/lock"
)

var errTxDone = errors.New("memory: transaction has already been committed or rolled back")

func (s *Store) GetJournal(_ context.Context, id uuid.UUID) (*journal.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.journals[id]
	if !ok {
		return nil, journal.ErrNotFound
	}

	return cloneJournal(j), nil
}

func (s *Store) ListJournals(_ context.Context, filter journal.ListFilter) ([]*journal.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*journal.Journal

	for _, j := range s.journals {
		if j.OwnerID != filter.OwnerID {
			continue
		}

		if filter.From != nil && j.Date.Before(*filter.From) {
			continue
		}

		if filter.To != nil && j.Date.After(*filter.To) {
			continue
		}

		if filter.Status != nil && j.Status != *filter.Status {
			continue
		}

		out = append(out, cloneJournal(j))
	}

	slices.SortFunc(out, func(a, b *journal.Journal) int {
		return cmp.Or(a.Date.Compare(b.Date), compareSeq(a.Number, b.Number))
	})

	return out, nil
}

func (s *Store) VoidJournal(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.journals[id]
	if !ok {
		return journal.ErrNotFound
	}

	if j.Status != journal.StatusPosted {
		return journal.ErrNotPosted
	}

	j.Status = journal.StatusVoid

	return nil
}

type postingTx struct {
	s       *Store
	ownerID uuid.UUID
	held    lock.Lock

	staged []*journal.Journal
	done   bool
}

func (s *Store) BeginPosting(ctx context.Context, ownerID uuid.UUID) (journal.PostingTx, error) {
	held, err := s.lockOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &postingTx{s: s, ownerID: ownerID, held: held}, nil
}

func (p *postingTx) AccountStates(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	states := make(map[uuid.UUID]bool, len(ids))

	for _, id := range ids {
		if a, ok := p.s.accounts[id]; ok && a.OwnerID == p.ownerID {
			states[id] = a.IsActive
		}
	}

	return states, nil
}

func (p *postingTx) numbers() []string {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var out []string

	for _, j := range p.s.journals {
		if j.OwnerID == p.ownerID {
			out = append(out, j.Number)
		}
	}

	for _, j := range p.staged {
		out = append(out, j.Number)
	}

	return out
}

func (p *postingTx) LastNumber(_ context.Context, year int) (string, error) {
	prefix := journal.NumberPrefix(year)

	var last string

	for _, n := range p.numbers() {
		if strings.HasPrefix(n, prefix) && (last == "" || compareSeq(n, last) > 0) {
			last = n
		}
	}

	return last, nil
}

func (p *postingTx) CreateJournal(_ context.Context, j *journal.Journal) error {
	if err := p.s.step("create journal"); err != nil {
		return fmt.Errorf("inserting journal: %w", err)
	}

	if slices.Contains(p.numbers(), j.Number) {
		return &apperr.SequenceConflictError{OwnerID: p.ownerID, Scope: "journal number", Value: j.Number}
	}

	j.ID = uuid.New()
	j.OwnerID = p.ownerID
	j.CreatedAt = p.s.now()

	for i := range j.Lines {
		j.Lines[i].ID = uuid.New()
		j.Lines[i].Position = i
	}

	p.staged = append(p.staged, cloneJournal(j))

	return nil
}

func (p *postingTx) Commit() error {
	if p.done {
		return errTxDone
	}

	if err := p.s.step("commit journal"); err != nil {
		p.finish()
		return err
	}

	p.s.mu.Lock()
	for _, j := range p.staged {
		p.s.nextSeq++
		p.s.journals[j.ID] = j
		p.s.seq[j.ID] = p.s.nextSeq
	}
	p.s.mu.Unlock()

	p.finish()

	return nil
}

func (p *postingTx) Rollback() error {
	if p.done {
		return errTxDone
	}

	p.finish()

	return nil
}

func (p *postingTx) finish() {
	p.done = true
	p.staged = nil
	_ = p.held.Release(context.Background())
}
