package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if a.DB == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "memory store, nothing to migrate")
				return nil
			}

			if err := a.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrating: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")

			return nil
		},
	}
}
