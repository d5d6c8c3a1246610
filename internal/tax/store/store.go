package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/tax"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Table names are never taken from input, only from this set.
var sourceTables = map[tax.Source]string{
	tax.SourceInvoices:      "invoices",
	tax.SourceCreditNotes:   "credit_notes",
	tax.SourcePurchaseBills: "purchase_bills",
	tax.SourceDebitNotes:    "debit_notes",
}

func (s *Store) SumDocuments(ctx context.Context, ownerID uuid.UUID, source tax.Source, r tax.Range) (tax.Amounts, error) {
	table, ok := sourceTables[source]
	if !ok {
		return tax.Amounts{}, fmt.Errorf("unknown tax source %q", source)
	}

	query := `
		SELECT COALESCE(SUM(taxable_amount), 0), COALESCE(SUM(tax_amount), 0)
		FROM ` + table + `
		WHERE owner_id = $1 AND date >= $2 AND date <= $3`

	var a tax.Amounts
	if err := s.db.QueryRowContext(ctx, query, ownerID, r.From, r.To).Scan(&a.Taxable, &a.Tax); err != nil {
		return tax.Amounts{}, fmt.Errorf("summing %s: %w", table, err)
	}

	return a, nil
}

func (s *Store) TDSByCategory(ctx context.Context, ownerID uuid.UUID, r tax.Range) ([]tax.CategoryTotal, error) {
	query := `
		SELECT r.category, SUM(t.transaction_amount), SUM(t.tds_amount), COUNT(*)
		FROM tds_transactions t
		JOIN tds_rules r ON r.id = t.rule_id
		WHERE t.owner_id = $1 AND t.date >= $2 AND t.date <= $3
		GROUP BY r.category
		ORDER BY r.category`

	rows, err := s.db.QueryContext(ctx, query, ownerID, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("summing tds: %w", err)
	}
	defer rows.Close()

	var totals []tax.CategoryTotal

	for rows.Next() {
		var c tax.CategoryTotal
		if err := rows.Scan(&c.Category, &c.TransactionAmount, &c.TDSAmount, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning tds totals: %w", err)
		}

		totals = append(totals, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tds totals: %w", err)
	}

	return totals, nil
}

var _ tax.Repository = (*Store)(nil)
