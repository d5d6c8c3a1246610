package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/posting"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectExpenseColumns = `
	id, owner_id, date, payee_name, category_name, description,
	gross_amount, tax_amount, tds_amount, tds_rule_id, payment_mode,
	status, journal_id, created_at, updated_at`

func scanExpense(s scanner) (*expense.Expense, error) {
	var (
		e                 expense.Expense
		mode, status      string
		ruleID, journalID uuid.NullUUID
		updatedAt         sql.NullTime
	)

	err := s.Scan(
		&e.ID, &e.OwnerID, &e.Date, &e.PayeeName, &e.CategoryName, &e.Description,
		&e.GrossAmount, &e.TaxAmount, &e.TDSAmount, &ruleID, &mode,
		&status, &journalID, &e.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.PaymentMode = posting.PaymentMode(mode)
	e.Status = expense.Status(status)

	if ruleID.Valid {
		e.TDSRuleID = &ruleID.UUID
	}

	if journalID.Valid {
		e.JournalID = &journalID.UUID
	}

	if updatedAt.Valid {
		e.UpdatedAt = &updatedAt.Time
	}

	return &e, nil
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (owner_id, date, payee_name, category_name, description,
			gross_amount, tax_amount, tds_amount, tds_rule_id, payment_mode, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		e.OwnerID, e.Date, e.PayeeName, e.CategoryName, e.Description,
		e.GrossAmount, e.TaxAmount, e.TDSAmount, e.TDSRuleID, e.PaymentMode, e.Status,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE id = $1`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE owner_id = $1`
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

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

const selectRuleColumns = `id, owner_id, section, category, rate_percent`

func scanRule(s scanner) (*expense.Rule, error) {
	var r expense.Rule
	if err := s.Scan(&r.ID, &r.OwnerID, &r.Section, &r.Category, &r.RatePercent); err != nil {
		return nil, err
	}

	return &r, nil
}

func (s *Store) GetRule(ctx context.Context, id uuid.UUID) (*expense.Rule, error) {
	query := `SELECT ` + selectRuleColumns + ` FROM tds_rules WHERE id = $1`

	r, err := scanRule(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrRuleNotFound
		}

		return nil, fmt.Errorf("getting tds rule: %w", err)
	}

	return r, nil
}

func (s *Store) ListRules(ctx context.Context, ownerID uuid.UUID) ([]*expense.Rule, error) {
	query := `SELECT ` + selectRuleColumns + ` FROM tds_rules WHERE owner_id = $1 ORDER BY section, category`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing tds rules: %w", err)
	}
	defer rows.Close()

	var rules []*expense.Rule

	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tds rule: %w", err)
		}

		rules = append(rules, r)
	}

	return rules, rows.Err()
}

// MarkPosted flips a draft to posted and records withheld TDS in the same
// transaction.
func (s *Store) MarkPosted(ctx context.Context, id, journalID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE expenses SET status = $1, journal_id = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4`,
		expense.StatusPosted, journalID, id, expense.StatusDraft,
	)
	if err != nil {
		return fmt.Errorf("marking expense posted: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking expense posted: %w", err)
	}

	if n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM expenses WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("checking expense: %w", err)
		}

		if !exists {
			return expense.ErrNotFound
		}

		return expense.ErrAlreadyPosted
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tds_transactions (owner_id, rule_id, expense_id, date, transaction_amount, tds_amount)
		SELECT owner_id, tds_rule_id, id, date, gross_amount, tds_amount
		FROM expenses
		WHERE id = $1 AND tds_rule_id IS NOT NULL AND tds_amount > 0`,
		id,
	)
	if err != nil {
		return fmt.Errorf("recording tds transaction: %w", err)
	}

	return tx.Commit()
}

var _ expense.Repository = (*Store)(nil)
