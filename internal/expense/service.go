package expense

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/lock"
	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/posting"
	"github.com/MrJamesThe3rd/tally/internal/tax"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
	GetRule(ctx context.Context, id uuid.UUID) (*Rule, error)
	ListRules(ctx context.Context, ownerID uuid.UUID) ([]*Rule, error)
	// MarkPosted links a draft expense to its journal and, when TDS was
	// withheld under a rule, records the TDS transaction. It returns
	// ErrAlreadyPosted if the expense is no longer a draft.
	MarkPosted(ctx context.Context, id, journalID uuid.UUID) error
}

type Poster interface {
	PostExpense(ctx context.Context, ownerID uuid.UUID, ev posting.ExpenseEvent) (*journal.Journal, error)
}

type Voider interface {
	Void(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo   Repository
	poster Poster
	voider Voider
	locker lock.Locker
	logger *slog.Logger
}

func NewService(repo Repository, poster Poster, voider Voider, locker lock.Locker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{repo: repo, poster: poster, voider: voider, locker: locker, logger: logger}
}

type CreateParams struct {
	OwnerID      uuid.UUID
	Date         time.Time
	PayeeName    string
	CategoryName string
	Description  string
	GrossAmount  decimal.Decimal
	TaxAmount    decimal.Decimal
	TDSAmount    decimal.Decimal
	TDSRuleID    *uuid.UUID
	PaymentMode  posting.PaymentMode
}

type ListFilter struct {
	OwnerID uuid.UUID
	From    *time.Time
	To      *time.Time
	Status  *Status
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	expenses, err := s.repo.ListExpenses(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap("listing expenses", filter.OwnerID, err)
	}

	return expenses, nil
}

// Rules lists the TDS rules an expense may be withheld under.
func (s *Service) Rules(ctx context.Context, ownerID uuid.UUID) ([]*Rule, error) {
	rules, err := s.repo.ListRules(ctx, ownerID)
	if err != nil {
		return nil, apperr.Wrap("listing tds rules", ownerID, err)
	}

	return rules, nil
}

// Create stores a draft expense. When a TDS rule is given the TDS amount is
// computed from it and any amount in params is ignored.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	category := strings.TrimSpace(params.CategoryName)
	if category == "" {
		return nil, ErrEmptyCategory
	}

	if _, err := params.PaymentMode.AccountName(); err != nil {
		return nil, err
	}

	e := &Expense{
		OwnerID:      params.OwnerID,
		Date:         params.Date,
		PayeeName:    strings.TrimSpace(params.PayeeName),
		CategoryName: category,
		Description:  strings.TrimSpace(params.Description),
		GrossAmount:  money.Round2(params.GrossAmount),
		TaxAmount:    money.Round2(params.TaxAmount),
		TDSAmount:    money.Round2(params.TDSAmount),
		PaymentMode:  params.PaymentMode,
		Status:       StatusDraft,
	}

	if params.TDSRuleID != nil {
		rule, err := s.repo.GetRule(ctx, *params.TDSRuleID)
		if err != nil {
			return nil, apperr.Wrap("loading tds rule", params.OwnerID, err)
		}

		if rule.OwnerID != params.OwnerID {
			return nil, ErrRuleNotFound
		}

		e.TDSRuleID = &rule.ID
		e.TDSAmount = tax.Withhold(e.GrossAmount, rule.RatePercent).TDS
	}

	if !e.GrossAmount.IsPositive() || e.TaxAmount.IsNegative() || e.TDSAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, apperr.Wrap("creating expense", params.OwnerID, err)
	}

	return e, nil
}

// Post posts a draft expense to the ledger and links it to the resulting
// journal. Posting an expense that is already linked returns it unchanged,
// so callers may retry freely.
func (s *Service) Post(ctx context.Context, id uuid.UUID) (*Expense, error) {
	held, err := s.locker.Obtain(ctx, "expense:"+id.String())
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := held.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release expense lock", "expense_id", id, "error", err)
		}
	}()

	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if e.Status == StatusPosted {
		return e, nil
	}

	j, err := s.poster.PostExpense(ctx, e.OwnerID, e.Event())
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkPosted(ctx, e.ID, j.ID); err != nil {
		s.logger.Error("failed to link expense, voiding journal",
			"expense_id", e.ID,
			"journal_id", j.ID,
			"error", err,
		)

		if verr := s.voider.Void(context.WithoutCancel(ctx), j.ID); verr != nil {
			s.logger.Error("failed to void orphaned journal", "journal_id", j.ID, "error", verr)
		}

		return nil, apperr.Wrap("linking expense", e.OwnerID, err)
	}

	e.Status = StatusPosted
	e.JournalID = &j.ID

	s.logger.Info("expense posted", "expense_id", e.ID, "journal_id", j.ID, "number", j.Number)

	return e, nil
}
