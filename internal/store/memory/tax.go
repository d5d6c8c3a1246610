package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/tax"
)

// AddDocument records an invoice, credit note, purchase bill or debit note.
func (s *Store) AddDocument(ownerID uuid.UUID, source tax.Source, date time.Time, taxable, taxAmount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[source] = append(s.documents[source], document{
		ownerID: ownerID,
		date:    date,
		amounts: tax.Amounts{Taxable: taxable, Tax: taxAmount},
	})
}

func (s *Store) SumDocuments(_ context.Context, ownerID uuid.UUID, source tax.Source, r tax.Range) (tax.Amounts, error) {
	switch source {
	case tax.SourceInvoices, tax.SourceCreditNotes, tax.SourcePurchaseBills, tax.SourceDebitNotes:
	default:
		return tax.Amounts{}, fmt.Errorf("unknown tax source %q", source)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := tax.Amounts{Taxable: decimal.Zero, Tax: decimal.Zero}

	for _, d := range s.documents[source] {
		if d.ownerID == ownerID && inRange(d.date, r.From, r.To) {
			sum.Taxable = sum.Taxable.Add(d.amounts.Taxable)
			sum.Tax = sum.Tax.Add(d.amounts.Tax)
		}
	}

	return sum, nil
}

func (s *Store) TDSByCategory(_ context.Context, ownerID uuid.UUID, r tax.Range) ([]tax.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCategory := make(map[string]*tax.CategoryTotal)

	var order []string

	for _, w := range s.withheld {
		if w.ownerID != ownerID || !inRange(w.date, r.From, r.To) {
			continue
		}

		rule, ok := s.rules[w.ruleID]
		if !ok {
			continue
		}

		ct, ok := byCategory[rule.Category]
		if !ok {
			ct = &tax.CategoryTotal{Category: rule.Category}
			byCategory[rule.Category] = ct
			order = append(order, rule.Category)
		}

		ct.TransactionAmount = ct.TransactionAmount.Add(w.amount.Taxable)
		ct.TDSAmount = ct.TDSAmount.Add(w.amount.Tax)
		ct.Count++
	}

	out := make([]tax.CategoryTotal, 0, len(order))
	for _, c := range order {
		out = append(out, *byCategory[c])
	}

	return out, nil
}
