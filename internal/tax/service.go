package tax

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tax
type Repository interface {
	// SumDocuments totals the taxable and tax amounts of source documents
	// dated within r.
	SumDocuments(ctx context.Context, ownerID uuid.UUID, source Source, r Range) (Amounts, error)
	// TDSByCategory groups TDS transactions dated within r by the category
	// of their rule.
	TDSByCategory(ctx context.Context, ownerID uuid.UUID, r Range) ([]CategoryTotal, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summarize recomputes a summary from the source records on every call.
// Periods without records produce zeroed summaries.
func (s *Service) Summarize(ctx context.Context, ownerID uuid.UUID, r Range, kind Kind) (*Summary, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Kind:                 kind,
		Range:                r,
		NetPayable:           decimal.Zero,
		CreditCarriedForward: decimal.Zero,
	}

	switch kind {
	case KindGSTR1:
		outward, err := s.supplies(ctx, ownerID, r, SourceInvoices, SourceCreditNotes)
		if err != nil {
			return nil, err
		}

		summary.Outward = outward
	case KindGSTR3B:
		outward, err := s.supplies(ctx, ownerID, r, SourceInvoices, SourceCreditNotes)
		if err != nil {
			return nil, err
		}

		inward, err := s.supplies(ctx, ownerID, r, SourcePurchaseBills, SourceDebitNotes)
		if err != nil {
			return nil, err
		}

		summary.Outward = outward
		summary.Inward = inward
		summary.NetPayable = money.Floor0(outward.Net.Tax.Sub(inward.Net.Tax))
		summary.CreditCarriedForward = money.Floor0(inward.Net.Tax.Sub(outward.Net.Tax))
	case KindTDS:
		tds, err := s.tds(ctx, ownerID, r)
		if err != nil {
			return nil, err
		}

		summary.TDS = tds
	default:
		return nil, ErrUnknownKind
	}

	return summary, nil
}

func (s *Service) supplies(ctx context.Context, ownerID uuid.UUID, r Range, docs, returns Source) (*SupplyTotals, error) {
	d, err := s.repo.SumDocuments(ctx, ownerID, docs, r)
	if err != nil {
		return nil, apperr.Wrap("summing "+string(docs), ownerID, err)
	}

	ret, err := s.repo.SumDocuments(ctx, ownerID, returns, r)
	if err != nil {
		return nil, apperr.Wrap("summing "+string(returns), ownerID, err)
	}

	return newSupplyTotals(d, ret), nil
}

func (s *Service) tds(ctx context.Context, ownerID uuid.UUID, r Range) (*TDSSummary, error) {
	cats, err := s.repo.TDSByCategory(ctx, ownerID, r)
	if err != nil {
		return nil, apperr.Wrap("summing tds", ownerID, err)
	}

	sort.Slice(cats, func(i, j int) bool { return cats[i].Category < cats[j].Category })

	summary := &TDSSummary{
		Categories:        make([]CategoryTotal, 0, len(cats)),
		TransactionAmount: decimal.Zero,
		TDSAmount:         decimal.Zero,
	}

	for _, c := range cats {
		summary.Categories = append(summary.Categories, c)
		summary.TransactionAmount = summary.TransactionAmount.Add(c.TransactionAmount)
		summary.TDSAmount = summary.TDSAmount.Add(c.TDSAmount)
		summary.Count += c.Count
	}

	return summary, nil
}
