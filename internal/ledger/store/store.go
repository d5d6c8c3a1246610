package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountStore "github.com/MrJamesThe3rd/tally/internal/account/store"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// Store reads the ledger. Account lookups are delegated to the account
// store so both sides scan rows the same way.
type Store struct {
	*accountStore.Store
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{Store: accountStore.New(db), db: db}
}

func (s *Store) ListEntries(ctx context.Context, accountID uuid.UUID, asOf *time.Time) ([]ledger.Entry, error) {
	query := `
		SELECT j.id, j.number, j.date, COALESCE(NULLIF(l.narration, ''), j.narration), l.debit, l.credit
		FROM journal_lines l
		JOIN journals j ON j.id = l.journal_id
		WHERE l.account_id = $1 AND j.status = $2`
	args := []any{accountID, journal.StatusPosted}

	if asOf != nil {
		args = append(args, *asOf)
		query += fmt.Sprintf(" AND j.date <= $%d", len(args))
	}

	query += " ORDER BY j.date, j.created_at, LENGTH(j.number), j.number, l.position"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry

	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.JournalID, &e.JournalNumber, &e.Date, &e.Narration, &e.Debit, &e.Credit); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}

	return entries, nil
}

func (s *Store) AccountTotals(ctx context.Context, ownerID uuid.UUID, asOf *time.Time) (map[uuid.UUID]ledger.Totals, error) {
	query := `
		SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journals j ON j.id = l.journal_id
		WHERE j.owner_id = $1 AND j.status = $2`
	args := []any{ownerID, journal.StatusPosted}

	if asOf != nil {
		args = append(args, *asOf)
		query += fmt.Sprintf(" AND j.date <= $%d", len(args))
	}

	query += " GROUP BY l.account_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summing ledger: %w", err)
	}
	defer rows.Close()

	totals := make(map[uuid.UUID]ledger.Totals)

	for rows.Next() {
		var (
			id            uuid.UUID
			debit, credit decimal.Decimal
		)

		if err := rows.Scan(&id, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scanning ledger totals: %w", err)
		}

		totals[id] = ledger.Totals{Debit: debit, Credit: credit}
	}

	return totals, rows.Err()
}

var _ ledger.Repository = (*Store)(nil)
