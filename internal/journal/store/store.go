package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/journal"
)

// Shares the accounts scope so that postings and account creation for one
// owner never interleave.
const lockScope = "accounts"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectJournalColumns = `id, owner_id, number, date, narration, status, created_at`

func scanJournal(s scanner) (*journal.Journal, error) {
	var (
		j         journal.Journal
		statusStr string
	)

	if err := s.Scan(&j.ID, &j.OwnerID, &j.Number, &j.Date, &j.Narration, &statusStr, &j.CreatedAt); err != nil {
		return nil, err
	}

	j.Status = journal.Status(statusStr)

	return &j, nil
}

func scanLine(s scanner) (journal.Line, error) {
	var (
		l             journal.Line
		debit, credit decimal.Decimal
	)

	if err := s.Scan(&l.ID, &l.AccountID, &l.Position, &debit, &credit, &l.Narration); err != nil {
		return journal.Line{}, err
	}

	if debit.IsPositive() {
		l.Side, l.Amount = journal.SideDebit, debit
	} else {
		l.Side, l.Amount = journal.SideCredit, credit
	}

	return l, nil
}

func (s *Store) GetJournal(ctx context.Context, id uuid.UUID) (*journal.Journal, error) {
	query := `SELECT ` + selectJournalColumns + ` FROM journals WHERE id = $1`

	j, err := scanJournal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, journal.ErrNotFound
		}

		return nil, fmt.Errorf("getting journal: %w", err)
	}

	if err := s.loadLines(ctx, []*journal.Journal{j}); err != nil {
		return nil, err
	}

	return j, nil
}

func (s *Store) ListJournals(ctx context.Context, filter journal.ListFilter) ([]*journal.Journal, error) {
	query := `SELECT ` + selectJournalColumns + ` FROM journals WHERE owner_id = $1`
	args := []any{filter.OwnerID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}

	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY date ASC, LENGTH(number) ASC, number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}
	defer rows.Close()

	var journals []*journal.Journal

	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning journal: %w", err)
		}

		journals = append(journals, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journals: %w", err)
	}

	if err := s.loadLines(ctx, journals); err != nil {
		return nil, err
	}

	return journals, nil
}

func (s *Store) loadLines(ctx context.Context, journals []*journal.Journal) error {
	if len(journals) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*journal.Journal, len(journals))
	ids := make([]uuid.UUID, 0, len(journals))

	for _, j := range journals {
		byID[j.ID] = j
		ids = append(ids, j.ID)
	}

	query := `
		SELECT journal_id, id, account_id, position, debit, credit, narration
		FROM journal_lines
		WHERE journal_id = ANY($1::uuid[])
		ORDER BY journal_id, position`

	rows, err := s.db.QueryContext(ctx, query, database.UUIDArray(ids))
	if err != nil {
		return fmt.Errorf("loading journal lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var journalID uuid.UUID

		line, err := scanLine(prefixed{rows, &journalID})
		if err != nil {
			return fmt.Errorf("scanning journal line: %w", err)
		}

		if j, ok := byID[journalID]; ok {
			j.Lines = append(j.Lines, line)
		}
	}

	return rows.Err()
}

// prefixed scans a leading column into dest before handing the rest on.
type prefixed struct {
	s    scanner
	dest any
}

func (p prefixed) Scan(dest ...any) error {
	return p.s.Scan(append([]any{p.dest}, dest...)...)
}

func (s *Store) VoidJournal(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE journals SET status = $1 WHERE id = $2 AND status = $3`,
		journal.StatusVoid, id, journal.StatusPosted,
	)
	if err != nil {
		return fmt.Errorf("voiding journal: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("voiding journal: %w", err)
	}

	if n > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM journals WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("checking journal: %w", err)
	}

	if !exists {
		return journal.ErrNotFound
	}

	return journal.ErrNotPosted
}

type postingTx struct {
	tx      *sql.Tx
	ownerID uuid.UUID
}

func (s *Store) BeginPosting(ctx context.Context, ownerID uuid.UUID) (journal.PostingTx, error) {
	tx, err := database.BeginOwnerTx(ctx, s.db, lockScope, ownerID)
	if err != nil {
		return nil, err
	}

	return &postingTx{tx: tx, ownerID: ownerID}, nil
}

func (p *postingTx) Commit() error   { return p.tx.Commit() }
func (p *postingTx) Rollback() error { return p.tx.Rollback() }

func (p *postingTx) AccountStates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := p.tx.QueryContext(ctx,
		`SELECT id, is_active FROM accounts WHERE owner_id = $1 AND id = ANY($2::uuid[])`,
		p.ownerID, database.UUIDArray(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("loading account states: %w", err)
	}
	defer rows.Close()

	states := make(map[uuid.UUID]bool, len(ids))

	for rows.Next() {
		var (
			id     uuid.UUID
			active bool
		)

		if err := rows.Scan(&id, &active); err != nil {
			return nil, fmt.Errorf("scanning account state: %w", err)
		}

		states[id] = active
	}

	return states, rows.Err()
}

func (p *postingTx) LastNumber(ctx context.Context, year int) (string, error) {
	query := `
		SELECT number FROM journals
		WHERE owner_id = $1 AND number LIKE $2 || '%'
		ORDER BY LENGTH(number) DESC, number DESC
		LIMIT 1`

	var number string

	err := p.tx.QueryRowContext(ctx, query, p.ownerID, journal.NumberPrefix(year)).Scan(&number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("scanning journal numbers: %w", err)
	}

	return number, nil
}

func (p *postingTx) CreateJournal(ctx context.Context, j *journal.Journal) error {
	query := `
		INSERT INTO journals (owner_id, number, date, narration, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	err := p.tx.QueryRowContext(ctx, query,
		p.ownerID, j.Number, j.Date, j.Narration, j.Status,
	).Scan(&j.ID, &j.CreatedAt)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return &apperr.SequenceConflictError{OwnerID: p.ownerID, Scope: "journal number", Value: j.Number}
		}

		return fmt.Errorf("creating journal: %w", err)
	}

	lineQuery := `
		INSERT INTO journal_lines (journal_id, account_id, position, debit, credit, narration)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	for i := range j.Lines {
		l := &j.Lines[i]

		err := p.tx.QueryRowContext(ctx, lineQuery,
			j.ID, l.AccountID, l.Position, l.DebitAmount(), l.CreditAmount(), l.Narration,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("creating journal line %d: %w", i+1, err)
		}
	}

	j.OwnerID = p.ownerID

	return nil
}
