package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
)

// opener builds the services a command runs against. Tests swap it for a
// memory-backed app.
type opener func(ctx context.Context) (*app.App, error)

func openFromEnv(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return app.New(ctx, cfg, nil)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(openFromEnv)
}

func newRootCommand(open opener) *cobra.Command {
	var owner string

	rootCmd := &cobra.Command{
		Use:   "tallyctl",
		Short: "Ledger maintenance and reporting",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&owner, "owner", "", "owner id the command acts for")

	ownerID := func() (uuid.UUID, error) {
		if owner == "" {
			return uuid.Nil, fmt.Errorf("--owner is required")
		}

		id, err := uuid.Parse(owner)
		if err != nil {
			return uuid.Nil, fmt.Errorf("parsing --owner: %w", err)
		}

		return id, nil
	}

	rootCmd.AddCommand(
		newMigrateCommand(open),
		newChartCommand(open, ownerID),
		newLedgerCommand(open),
		newSummaryCommand(open, ownerID),
	)

	return rootCmd
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func render(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return lipgloss.NewStyle().Padding(0, 1)
		})

	fmt.Fprintln(w, t.Render())
}
