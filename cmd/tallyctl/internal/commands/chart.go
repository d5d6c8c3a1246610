package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

func newChartCommand(open opener, ownerID func() (uuid.UUID, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Manage the chart of accounts",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "import <file.yaml>",
			Short: "Create the accounts listed in a YAML chart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				owner, err := ownerID()
				if err != nil {
					return err
				}

				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening chart: %w", err)
				}
				defer f.Close()

				entries, err := account.LoadChart(f)
				if err != nil {
					return err
				}

				a, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer a.Close()

				res, err := a.Accounts.ImportChart(cmd.Context(), owner, entries)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "created %d, skipped %d\n", len(res.Created), len(res.Skipped))

				for _, code := range res.Skipped {
					fmt.Fprintf(out, "  skipped %s (exists)\n", code)
				}

				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print the chart of accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				owner, err := ownerID()
				if err != nil {
					return err
				}

				a, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer a.Close()

				accounts, err := a.Accounts.List(cmd.Context(), account.ListFilter{OwnerID: owner})
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(accounts))
				for _, acc := range accounts {
					rows = append(rows, []string{
						acc.Code, acc.Name, string(acc.Type), money.Format(acc.OpeningBalance), acc.ID.String(),
					})
				}

				render(cmd.OutOrStdout(), []string{"Code", "Name", "Type", "Opening", "ID"}, rows)

				return nil
			},
		},
	)

	return cmd
}
