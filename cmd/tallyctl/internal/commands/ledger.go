package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tally/internal/money"
)

const dateLayout = "2006-01-02"

func parseDate(flag, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD: %w", flag, err)
	}

	return t, nil
}

func newLedgerCommand(open opener) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "ledger <account-id>",
		Short: "Print an account's running balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parsing account id: %w", err)
			}

			var cutoff *time.Time

			if asOf != "" {
				t, err := parseDate("as-of", asOf)
				if err != nil {
					return err
				}

				cutoff = &t
			}

			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			acc, err := a.Accounts.Get(cmd.Context(), accountID)
			if err != nil {
				return err
			}

			balance, err := a.Ledger.RunningBalance(cmd.Context(), accountID, cutoff)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s)\n", acc.Code, acc.Name, acc.Type)

			rows := make([][]string, 0, len(balance))
			for _, row := range balance {
				date := ""
				if !row.Opening {
					date = row.Date.Format(dateLayout)
				}

				rows = append(rows, []string{
					date,
					row.JournalNumber,
					row.Narration,
					money.Format(row.Debit),
					money.Format(row.Credit),
					money.Format(row.Balance),
				})
			}

			render(out, []string{"Date", "Journal", "Narration", "Debit", "Credit", "Balance"}, rows)

			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "only include journals dated on or before YYYY-MM-DD")

	return cmd
}
