package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/tax"
)

// AddRule stores a TDS rule, assigning an id when it has none.
func (s *Store) AddRule(r *expense.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	c := *r
	s.rules[c.ID] = &c
}

func (s *Store) GetRule(_ context.Context, id uuid.UUID) (*expense.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rules[id]
	if !ok {
		return nil, expense.ErrRuleNotFound
	}

	c := *r

	return &c, nil
}

func (s *Store) ListRules(_ context.Context, ownerID uuid.UUID) ([]*expense.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*expense.Rule

	for _, r := range s.rules {
		if r.OwnerID == ownerID {
			c := *r
			out = append(out, &c)
		}
	}

	slices.SortFunc(out, func(a, b *expense.Rule) int {
		return cmp.Or(cmp.Compare(a.Section, b.Section), cmp.Compare(a.Category, b.Category))
	})

	return out, nil
}

func (s *Store) CreateExpense(_ context.Context, e *expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.New()
	e.CreatedAt = s.now()
	s.expenses[e.ID] = cloneExpense(e)

	return nil
}

func (s *Store) GetExpense(_ context.Context, id uuid.UUID) (*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, expense.ErrNotFound
	}

	return cloneExpense(e), nil
}

func (s *Store) ListExpenses(_ context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*expense.Expense

	for _, e := range s.expenses {
		if e.OwnerID != filter.OwnerID {
			continue
		}

		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}

		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}

		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}

		out = append(out, cloneExpense(e))
	}

	slices.SortFunc(out, func(a, b *expense.Expense) int {
		return cmp.Or(b.Date.Compare(a.Date), b.CreatedAt.Compare(a.CreatedAt))
	})

	return out, nil
}

func (s *Store) MarkPosted(_ context.Context, id, journalID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return expense.ErrNotFound
	}

	if e.Status != expense.StatusDraft {
		return expense.ErrAlreadyPosted
	}

	now := s.now()
	e.Status = expense.StatusPosted
	e.JournalID = &journalID
	e.UpdatedAt = &now

	if e.TDSRuleID != nil && e.TDSAmount.IsPositive() {
		s.withheld = append(s.withheld, withholding{
			ownerID:   e.OwnerID,
			ruleID:    *e.TDSRuleID,
			expenseID: e.ID,
			date:      e.Date,
			amount:    tax.Amounts{Taxable: e.GrossAmount, Tax: e.TDSAmount},
		})
	}

	return nil
}
