// Package memory is an in-process implementation of every repository in
// tally. Writes made through an owner unit of work are staged and applied
// atomically on commit; readers always see committed state.
package memory

import (
	"cmp"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/lock"
	"github.com/MrJamesThe3rd/tally/internal/tax"
)

type Store struct {
	mu sync.RWMutex

	accounts  map[uuid.UUID]*account.Account
	sequences map[sequenceKey]int
	journals  map[uuid.UUID]*journal.Journal
	// seq orders journals by commit, standing in for created_at.
	seq       map[uuid.UUID]int
	nextSeq   int
	documents map[tax.Source][]document
	rules     map[uuid.UUID]*expense.Rule
	expenses  map[uuid.UUID]*expense.Expense
	withheld  []withholding

	owners *lock.Local
	fault  func(op string) error
	now    func() time.Time
}

type sequenceKey struct {
	ownerID uuid.UUID
	prefix  string
}

type document struct {
	ownerID uuid.UUID
	date    time.Time
	amounts tax.Amounts
}

type withholding struct {
	ownerID   uuid.UUID
	ruleID    uuid.UUID
	expenseID uuid.UUID
	date      time.Time
	amount    tax.Amounts
}

type Option func(*Store)

// WithFault installs a hook consulted before each write step. A non-nil
// return aborts the step with that error. Steps are named "create account",
// "commit account", "create journal" and "commit journal".
func WithFault(fn func(op string) error) Option {
	return func(s *Store) { s.fault = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		accounts:  make(map[uuid.UUID]*account.Account),
		sequences: make(map[sequenceKey]int),
		journals:  make(map[uuid.UUID]*journal.Journal),
		seq:       make(map[uuid.UUID]int),
		documents: make(map[tax.Source][]document),
		rules:     make(map[uuid.UUID]*expense.Rule),
		expenses:  make(map[uuid.UUID]*expense.Expense),
		owners:    lock.NewLocal(0),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) step(op string) error {
	if s.fault == nil {
		return nil
	}

	return s.fault(op)
}

// lockOwner serializes units of work for one owner across accounts and
// journals.
func (s *Store) lockOwner(ctx context.Context, ownerID uuid.UUID) (lock.Lock, error) {
	return s.owners.Obtain(ctx, "owner:"+ownerID.String())
}

// Compile-time checks.
var (
	_ account.Repository = (*Store)(nil)
	_ journal.Repository = (*Store)(nil)
	_ ledger.Repository  = (*Store)(nil)
	_ tax.Repository     = (*Store)(nil)
	_ expense.Repository = (*Store)(nil)
)

func cloneAccount(a *account.Account) *account.Account {
	c := *a
	return &c
}

func cloneJournal(j *journal.Journal) *journal.Journal {
	c := *j
	c.Lines = append([]journal.Line(nil), j.Lines...)

	return &c
}

func cloneExpense(e *expense.Expense) *expense.Expense {
	c := *e
	if e.TDSRuleID != nil {
		id := *e.TDSRuleID
		c.TDSRuleID = &id
	}

	if e.JournalID != nil {
		id := *e.JournalID
		c.JournalID = &id
	}

	if e.UpdatedAt != nil {
		t := *e.UpdatedAt
		c.UpdatedAt = &t
	}

	return &c
}

// compareSeq orders sequence-like strings by length, then lexically, so
// that "10000" sorts after "9999".
func compareSeq(a, b string) int {
	return cmp.Or(cmp.Compare(len(a), len(b)), cmp.Compare(a, b))
}

func inRange(d time.Time, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}
