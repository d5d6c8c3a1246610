package commands

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/tax"
)

func newSummaryCommand(open opener, ownerID func() (uuid.UUID, error)) *cobra.Command {
	var kind, from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a GSTR-1, GSTR-3B or TDS summary for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := ownerID()
			if err != nil {
				return err
			}

			k, err := tax.ParseKind(kind)
			if err != nil {
				return err
			}

			start, err := parseDate("from", from)
			if err != nil {
				return err
			}

			end, err := parseDate("to", to)
			if err != nil {
				return err
			}

			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.Tax.Summarize(cmd.Context(), owner, tax.Range{From: start, To: end}, k)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), s)

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(tax.KindGSTR3B), "gstr1, gstr3b or tds")
	cmd.Flags().StringVar(&from, "from", "", "range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "range end, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func printSummary(w io.Writer, s *tax.Summary) {
	fmt.Fprintf(w, "%s %s to %s\n", s.Kind, s.Range.From.Format(dateLayout), s.Range.To.Format(dateLayout))

	var rows [][]string

	supply := func(label string, t *tax.SupplyTotals) {
		if t == nil {
			return
		}

		rows = append(rows,
			[]string{label, "documents", money.Format(t.Documents.Taxable), money.Format(t.Documents.Tax)},
			[]string{label, "returns", money.Format(t.Returns.Taxable), money.Format(t.Returns.Tax)},
			[]string{label, "net", money.Format(t.Net.Taxable), money.Format(t.Net.Tax)},
		)
	}

	supply("outward", s.Outward)
	supply("inward", s.Inward)

	if len(rows) > 0 {
		render(w, []string{"Supply", "", "Taxable", "Tax"}, rows)
	}

	if s.Kind == tax.KindGSTR3B {
		fmt.Fprintf(w, "net payable: %s\n", money.Format(s.NetPayable))
		fmt.Fprintf(w, "credit carried forward: %s\n", money.Format(s.CreditCarriedForward))
	}

	if s.TDS != nil {
		tds := make([][]string, 0, len(s.TDS.Categories)+1)
		for _, c := range s.TDS.Categories {
			tds = append(tds, []string{
				c.Category, fmt.Sprint(c.Count), money.Format(c.TransactionAmount), money.Format(c.TDSAmount),
			})
		}

		tds = append(tds, []string{
			"total", fmt.Sprint(s.TDS.Count), money.Format(s.TDS.TransactionAmount), money.Format(s.TDS.TDSAmount),
		})

		render(w, []string{"Category", "Count", "Amount", "TDS"}, tds)
	}
}
