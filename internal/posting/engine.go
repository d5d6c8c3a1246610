package posting

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

const DefaultMaxAttempts = 3

//go:generate mockgen -source=engine.go -destination=engine_mock.go -package=posting
type AccountResolver interface {
	FindOrCreate(ctx context.Context, ownerID uuid.UUID, typ account.Type, hint string) (*account.Account, error)
}

type Poster interface {
	Post(ctx context.Context, params journal.PostParams) (*journal.Journal, error)
}

type Engine struct {
	accounts    AccountResolver
	poster      Poster
	maxAttempts int
	logger      *slog.Logger
}

type Option func(*Engine)

// WithMaxAttempts bounds how often a post is tried when it loses a
// numbering race. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(accounts AccountResolver, poster Poster, opts ...Option) *Engine {
	e := &Engine{
		accounts:    accounts,
		poster:      poster,
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// PostExpense posts ev as one journal: the expense and any input tax are
// debited, the payment account and any TDS payable are credited. Linking
// the journal back to the source record is up to the caller.
func (e *Engine) PostExpense(ctx context.Context, ownerID uuid.UUID, ev ExpenseEvent) (*journal.Journal, error) {
	gross := money.Round2(ev.GrossAmount)
	tax := money.Round2(ev.TaxAmount)
	tds := money.Round2(ev.TDSAmount)

	if gross.IsNegative() || tax.IsNegative() || tds.IsNegative() {
		return nil, &DegenerateEventError{Reason: "amounts must not be negative"}
	}

	net := money.Round2(gross.Add(tax).Sub(tds))
	if net.IsNegative() {
		return nil, &DegenerateEventError{Reason: "tds exceeds gross plus tax"}
	}

	if countNonZero(gross, tax, net, tds) < 2 {
		return nil, &DegenerateEventError{Reason: "fewer than two non-zero lines"}
	}

	modeAccount, err := ev.PaymentMode.AccountName()
	if err != nil {
		return nil, err
	}

	return e.retry(ctx, ownerID, "expense", func() (*journal.Journal, error) {
		var lines []journal.LineParams

		expense, err := e.accounts.FindOrCreate(ctx, ownerID, account.TypeExpense, ev.CategoryName)
		if err != nil {
			return nil, err
		}

		lines = appendLine(lines, expense.ID, gross, journal.SideDebit)

		payment, err := e.accounts.FindOrCreate(ctx, ownerID, account.TypeAsset, modeAccount)
		if err != nil {
			return nil, err
		}

		if tax.IsPositive() {
			input, err := e.accounts.FindOrCreate(ctx, ownerID, account.TypeAsset, InputTaxAccount)
			if err != nil {
				return nil, err
			}

			lines = appendLine(lines, input.ID, tax, journal.SideDebit)
		}

		lines = appendLine(lines, payment.ID, net, journal.SideCredit)

		if tds.IsPositive() {
			payable, err := e.accounts.FindOrCreate(ctx, ownerID, account.TypeLiability, TDSPayableAccount)
			if err != nil {
				return nil, err
			}

			lines = appendLine(lines, payable.ID, tds, journal.SideCredit)
		}

		return e.poster.Post(ctx, journal.PostParams{
			OwnerID:   ownerID,
			Date:      ev.Date,
			Narration: ev.Narration(),
			Lines:     lines,
		})
	})
}

// PostTDSRemittance debits TDS Payable and credits the payment account.
func (e *Engine) PostTDSRemittance(ctx context.Context, ownerID uuid.UUID, r TDSRemittance) (*journal.Journal, error) {
	amount := money.Round2(r.Amount)
	if !amount.IsPositive() {
		return nil, &DegenerateEventError{Reason: "remittance amount must be positive"}
	}

	modeAccount, err := r.PaymentMode.AccountName()
	if err != nil {
		return nil, err
	}

	narration := "TDS remittance"
	if r.Reference != "" {
		narration += " - " + r.Reference
	}

	return e.retry(ctx, ownerID, "tds remittance", func() (*journal.Journal, error) {
		payable, err := e.accounts.FindOrCreate(ctx, ownerID, account.TypeLiability, TDSPayableAccount)
		if err != nil {
			return nil, err
		}

		payment, err := e.accounts.FindOrCreate(ctx, ownerID, account.TypeAsset, modeAccount)
		if err != nil {
			return nil, err
		}

		return e.poster.Post(ctx, journal.PostParams{
			OwnerID:   ownerID,
			Date:      r.Date,
			Narration: narration,
			Lines: []journal.LineParams{
				{AccountID: payable.ID, Debit: amount},
				{AccountID: payment.ID, Credit: amount},
			},
		})
	})
}

// retry runs attempt until it succeeds, fails with something other than a
// sequence conflict, or the attempts run out.
func (e *Engine) retry(ctx context.Context, ownerID uuid.UUID, event string, attempt func() (*journal.Journal, error)) (*journal.Journal, error) {
	var err error

	for i := 1; i <= e.maxAttempts; i++ {
		var j *journal.Journal

		j, err = attempt()
		if err == nil {
			return j, nil
		}

		var conflict *apperr.SequenceConflictError
		if !errors.As(err, &conflict) {
			return nil, err
		}

		e.logger.Warn("sequence conflict while posting",
			"event", event,
			"owner_id", ownerID,
			"scope", conflict.Scope,
			"value", conflict.Value,
			"attempt", i,
		)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, err
}

func countNonZero(amounts ...decimal.Decimal) int {
	n := 0

	for _, a := range amounts {
		if !a.IsZero() {
			n++
		}
	}

	return n
}

func appendLine(lines []journal.LineParams, accountID uuid.UUID, amount decimal.Decimal, side journal.Side) []journal.LineParams {
	if amount.IsZero() {
		return lines
	}

	if side == journal.SideDebit {
		return append(lines, journal.LineParams{AccountID: accountID, Debit: amount})
	}

	return append(lines, journal.LineParams{AccountID: accountID, Credit: amount})
}
