package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/lock"
)

func (s *Store) GetAccount(_ context.Context, id uuid.UUID) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, account.ErrNotFound
	}

	return cloneAccount(a), nil
}

func (s *Store) ListAccounts(_ context.Context, filter account.ListFilter) ([]*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*account.Account

	for _, a := range s.accounts {
		if a.OwnerID != filter.OwnerID {
			continue
		}

		if filter.Type != nil && a.Type != *filter.Type {
			continue
		}

		if filter.ActiveOnly && !a.IsActive {
			continue
		}

		out = append(out, cloneAccount(a))
	}

	sortByCode(out)

	return out, nil
}

func (s *Store) DeactivateAccount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return account.ErrNotFound
	}

	a.IsActive = false

	return nil
}

// Seed stores accounts directly, bypassing code generation.
func (s *Store) Seed(accounts ...*account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range accounts {
		c := cloneAccount(a)
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
			a.ID = c.ID
		}

		if c.CreatedAt.IsZero() {
			c.CreatedAt = s.now()
		}

		s.accounts[c.ID] = c
	}
}

func sortByCode(accounts []*account.Account) {
	slices.SortFunc(accounts, func(a, b *account.Account) int {
		return compareSeq(a.Code, b.Code)
	})
}

type ownerTx struct {
	s       *Store
	ownerID uuid.UUID
	held    lock.Lock

	staged    []*account.Account
	sequences map[string]int
	done      bool
}

func (s *Store) BeginOwner(ctx context.Context, ownerID uuid.UUID) (account.OwnerTx, error) {
	held, err := s.lockOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &ownerTx{s: s, ownerID: ownerID, held: held, sequences: make(map[string]int)}, nil
}

// visible returns the owner's committed accounts plus those staged here.
func (o *ownerTx) visible() []*account.Account {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	out := make([]*account.Account, 0, len(o.staged))

	for _, a := range o.s.accounts {
		if a.OwnerID == o.ownerID {
			out = append(out, cloneAccount(a))
		}
	}

	return append(out, o.staged...)
}

func (o *ownerTx) FindActiveByName(_ context.Context, typ account.Type, hint string) (*account.Account, error) {
	needle := strings.ToLower(hint)

	var matches []*account.Account

	for _, a := range o.visible() {
		if a.Type == typ && a.IsActive && strings.Contains(strings.ToLower(a.Name), needle) {
			matches = append(matches, a)
		}
	}

	if len(matches) == 0 {
		return nil, nil
	}

	sortByCode(matches)

	return matches[0], nil
}

func (o *ownerTx) HighestCode(_ context.Context, prefix string) (string, error) {
	var codes []string

	for _, a := range o.visible() {
		if isDigits(a.Code) {
			codes = append(codes, a.Code)
		}
	}

	return account.HighestCode(prefix, codes), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func (o *ownerTx) ReserveCode(_ context.Context, prefix string, floor int) (int, error) {
	last, ok := o.sequences[prefix]
	if !ok {
		o.s.mu.RLock()
		last = o.s.sequences[sequenceKey{o.ownerID, prefix}]
		o.s.mu.RUnlock()
	}

	n := max(last, floor) + 1
	o.sequences[prefix] = n

	return n, nil
}

func (o *ownerTx) CodeExists(_ context.Context, code string) (bool, error) {
	for _, a := range o.visible() {
		if a.Code == code {
			return true, nil
		}
	}

	return false, nil
}

func (o *ownerTx) CreateAccount(ctx context.Context, a *account.Account) error {
	if err := o.s.step("create account"); err != nil {
		return err
	}

	if exists, _ := o.CodeExists(ctx, a.Code); exists {
		return &account.DuplicateCodeError{OwnerID: o.ownerID, Code: a.Code}
	}

	a.ID = uuid.New()
	a.OwnerID = o.ownerID
	a.CreatedAt = o.s.now()

	o.staged = append(o.staged, cloneAccount(a))

	return nil
}

func (o *ownerTx) Commit() error {
	if o.done {
		return errTxDone
	}

	if err := o.s.step("commit account"); err != nil {
		o.finish()
		return err
	}

	o.s.mu.Lock()
	for _, a := range o.staged {
		o.s.accounts[a.ID] = a
	}

	for prefix, n := range o.sequences {
		o.s.sequences[sequenceKey{o.ownerID, prefix}] = n
	}
	o.s.mu.Unlock()

	o.finish()

	return nil
}

func (o *ownerTx) Rollback() error {
	if o.done {
		return errTxDone
	}

	o.finish()

	return nil
}

func (o *ownerTx) finish() {
	o.done = true
	o.staged = nil
	_ = o.held.Release(context.Background())
}
