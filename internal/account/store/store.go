package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/database"
)

const lockScope = "accounts"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, owner_id, code, name, type, opening_balance, is_active, created_at
func scanAccount(s scanner) (*account.Account, error) {
	var (
		a       account.Account
		typeStr string
	)

	if err := s.Scan(
		&a.ID, &a.OwnerID, &a.Code, &a.Name, &typeStr, &a.OpeningBalance, &a.IsActive, &a.CreatedAt,
	); err != nil {
		return nil, err
	}

	a.Type = account.Type(typeStr)

	return &a, nil
}

const selectAccountColumns = `id, owner_id, code, name, type, opening_balance, is_active, created_at`

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, filter account.ListFilter) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE owner_id = $1`
	args := []any{filter.OwnerID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}

	if filter.ActiveOnly {
		query += " AND is_active"
	}

	query += " ORDER BY LENGTH(code), code"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) DeactivateAccount(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivating account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivating account: %w", err)
	}

	if n == 0 {
		return account.ErrNotFound
	}

	return nil
}

type ownerTx struct {
	tx      *sql.Tx
	ownerID uuid.UUID
}

func (s *Store) BeginOwner(ctx context.Context, ownerID uuid.UUID) (account.OwnerTx, error) {
	tx, err := database.BeginOwnerTx(ctx, s.db, lockScope, ownerID)
	if err != nil {
		return nil, err
	}

	return &ownerTx{tx: tx, ownerID: ownerID}, nil
}

func (o *ownerTx) Commit() error   { return o.tx.Commit() }
func (o *ownerTx) Rollback() error { return o.tx.Rollback() }

func (o *ownerTx) FindActiveByName(ctx context.Context, typ account.Type, hint string) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts
		WHERE owner_id = $1 AND type = $2 AND is_active
		  AND POSITION(LOWER($3) IN LOWER(name)) > 0
		ORDER BY LENGTH(code), code
		LIMIT 1`

	a, err := scanAccount(o.tx.QueryRowContext(ctx, query, o.ownerID, typ, hint))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding account by name: %w", err)
	}

	return a, nil
}

func (o *ownerTx) HighestCode(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT code FROM accounts
		WHERE owner_id = $1 AND code LIKE $2 || '%' AND code ~ '^[0-9]{1,12}$'
		ORDER BY LENGTH(code) DESC, code DESC
		LIMIT 1`

	var code string

	err := o.tx.QueryRowContext(ctx, query, o.ownerID, prefix).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("scanning highest code: %w", err)
	}

	return code, nil
}

func (o *ownerTx) ReserveCode(ctx context.Context, prefix string, floor int) (int, error) {
	query := `
		INSERT INTO account_code_sequences (owner_id, prefix, last_value)
		VALUES ($1, $2, $3 + 1)
		ON CONFLICT (owner_id, prefix)
		DO UPDATE SET last_value = GREATEST(account_code_sequences.last_value, $3) + 1
		RETURNING last_value`

	var n int
	if err := o.tx.QueryRowContext(ctx, query, o.ownerID, prefix, floor).Scan(&n); err != nil {
		return 0, fmt.Errorf("reserving code: %w", err)
	}

	return n, nil
}

func (o *ownerTx) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool

	err := o.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE owner_id = $1 AND code = $2)`,
		o.ownerID, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking code: %w", err)
	}

	return exists, nil
}

func (o *ownerTx) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (owner_id, code, name, type, opening_balance, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`

	err := o.tx.QueryRowContext(ctx, query,
		o.ownerID, a.Code, a.Name, a.Type, a.OpeningBalance, a.IsActive,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return &account.DuplicateCodeError{OwnerID: o.ownerID, Code: a.Code}
		}

		return fmt.Errorf("creating account: %w", err)
	}

	a.OwnerID = o.ownerID

	return nil
}
