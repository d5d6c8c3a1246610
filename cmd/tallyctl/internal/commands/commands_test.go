package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
)

const chartYAML = `
accounts:
  - code: "1001"
    name: Cash Account
    type: asset
    opening_balance: "2500.00"
  - code: "5001"
    name: Office Supplies
    type: expense
`

func memoryApp(t *testing.T) *app.App {
	t.Helper()

	cfg := &config.Config{}
	cfg.Ledger.Store = config.StoreMemory
	cfg.Ledger.MaxPostAttempts = 3

	a, err := app.New(context.Background(), cfg, nil)
	require.NoError(t, err)

	return a
}

func run(t *testing.T, a *app.App, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCommand(func(context.Context) (*app.App, error) { return a, nil })
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

func TestChartImportAndLedger(t *testing.T) {
	a := memoryApp(t)
	owner := uuid.New()

	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chartYAML), 0o644))

	out, err := run(t, a, "--owner", owner.String(), "chart", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created 2, skipped 0")

	out, err = run(t, a, "--owner", owner.String(), "chart", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created 0, skipped 2")

	out, err = run(t, a, "--owner", owner.String(), "chart", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Cash Account")
	assert.Contains(t, out, "2500.00")

	accounts, err := a.Accounts.List(context.Background(), account.ListFilter{OwnerID: owner})
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	out, err = run(t, a, "ledger", accounts[0].ID.String(), "--as-of", "2024-03-31")
	require.NoError(t, err)
	assert.Contains(t, out, "1001 Cash Account")
	assert.Contains(t, out, "2500.00")
}

func TestSummary(t *testing.T) {
	a := memoryApp(t)
	owner := uuid.New().String()

	out, err := run(t, a, "--owner", owner, "summary", "--kind", "tds", "--from", "2024-01-01", "--to", "2024-03-31")
	require.NoError(t, err)
	assert.Contains(t, out, "tds 2024-01-01 to 2024-03-31")
	assert.Contains(t, out, "total")

	out, err = run(t, a, "--owner", owner, "summary", "--from", "2024-01-01", "--to", "2024-03-31")
	require.NoError(t, err)
	assert.Contains(t, out, "net payable: 0.00")
}

func TestCommandErrors(t *testing.T) {
	a := memoryApp(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "MissingOwner", args: []string{"chart", "list"}},
		{name: "BadOwner", args: []string{"--owner", "nope", "chart", "list"}},
		{name: "UnknownKind", args: []string{"--owner", uuid.NewString(), "summary", "--kind", "vat", "--from", "2024-01-01", "--to", "2024-01-31"}},
		{name: "BadDate", args: []string{"--owner", uuid.NewString(), "summary", "--from", "01/01/2024", "--to", "2024-01-31"}},
		{name: "InvertedRange", args: []string{"--owner", uuid.NewString(), "summary", "--from", "2024-02-01", "--to", "2024-01-31"}},
		{name: "UnknownAccount", args: []string{"ledger", uuid.NewString()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, a, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestMigrateOnMemoryStore(t *testing.T) {
	out, err := run(t, memoryApp(t), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to migrate")
}
