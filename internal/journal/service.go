package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=journal
type Repository interface {
	GetJournal(ctx context.Context, id uuid.UUID) (*Journal, error)
	ListJournals(ctx context.Context, filter ListFilter) ([]*Journal, error)
	VoidJournal(ctx context.Context, id uuid.UUID) error

	// BeginPosting opens a unit of work serialized against every other
	// posting for the same owner.
	BeginPosting(ctx context.Context, ownerID uuid.UUID) (PostingTx, error)
}

// PostingTx is scoped to the owner it was opened for. Nothing written
// through it is visible to readers before Commit.
type PostingTx interface {
	// AccountStates reports, for each id the owner has, whether the account
	// is active. Unknown ids are absent from the map.
	AccountStates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	// LastNumber returns the highest journal number in year, or "".
	LastNumber(ctx context.Context, year int) (string, error)
	CreateJournal(ctx context.Context, j *Journal) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo      Repository
	tolerance decimal.Decimal
}

type Option func(*Service)

// WithTolerance overrides DefaultTolerance.
func WithTolerance(d decimal.Decimal) Option {
	return func(s *Service) {
		s.tolerance = d.Abs()
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type PostParams struct {
	OwnerID   uuid.UUID
	Date      time.Time
	Narration string
	Lines     []LineParams
}

type ListFilter struct {
	OwnerID uuid.UUID
	From    *time.Time
	To      *time.Time
	Status  *Status
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Journal, error) {
	return s.repo.GetJournal(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Journal, error) {
	journals, err := s.repo.ListJournals(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap("listing journals", filter.OwnerID, err)
	}

	return journals, nil
}

// Void marks a posted journal void. Its lines stop counting towards
// balances but stay on record.
func (s *Service) Void(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.VoidJournal(ctx, id); err != nil {
		return apperr.Wrap("voiding journal", uuid.Nil, err)
	}

	return nil
}

// Post validates the lines and commits them as one posted journal. Either
// the journal and all of its lines are stored, or nothing is.
func (s *Service) Post(ctx context.Context, params PostParams) (*Journal, error) {
	lines, err := Validate(params.Lines, s.tolerance)
	if err != nil {
		return nil, err
	}

	date := dateOnly(params.Date)

	ptx, err := s.repo.BeginPosting(ctx, params.OwnerID)
	if err != nil {
		return nil, apperr.Wrap("begin posting", params.OwnerID, err)
	}
	defer ptx.Rollback()

	j := &Journal{
		OwnerID:   params.OwnerID,
		Date:      date,
		Narration: params.Narration,
		Status:    StatusPosted,
		Lines:     lines,
	}

	if err := checkAccounts(ctx, ptx, j.AccountIDs()); err != nil {
		return nil, apperr.Wrap("checking accounts", params.OwnerID, err)
	}

	last, err := ptx.LastNumber(ctx, date.Year())
	if err != nil {
		return nil, apperr.Wrap("scanning journal numbers", params.OwnerID, err)
	}

	j.Number, err = NextNumber(date.Year(), last)
	if err != nil {
		return nil, apperr.Wrap("numbering journal", params.OwnerID, err)
	}

	if err := ptx.CreateJournal(ctx, j); err != nil {
		return nil, apperr.Wrap("creating journal", params.OwnerID, err)
	}

	if err := ptx.Commit(); err != nil {
		return nil, apperr.Wrap("commit journal", params.OwnerID, err)
	}

	return j, nil
}

func checkAccounts(ctx context.Context, ptx PostingTx, ids []uuid.UUID) error {
	states, err := ptx.AccountStates(ctx, ids)
	if err != nil {
		return fmt.Errorf("loading accounts: %w", err)
	}

	for _, id := range ids {
		active, ok := states[id]
		if !ok {
			return &accountError{err: ErrAccountNotFound, accountID: id}
		}

		if !active {
			return &accountError{err: ErrAccountInactive, accountID: id}
		}
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
