package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

// OpenLedgerMsg asks the parent to show the ledger of Account.
type OpenLedgerMsg struct {
	Account *account.Account
}

type loadAccountsMsg struct {
	accounts []*account.Account
	err      error
}

// AccountsModel lists the owner's chart of accounts.
type AccountsModel struct {
	CommonModel
	accounts *account.Service
	ownerID  uuid.UUID

	table      table.Model
	rows       []*account.Account
	activeOnly bool
	err        error
}

func NewAccountsModel(svc *account.Service, ownerID uuid.UUID) AccountsModel {
	return AccountsModel{
		accounts: svc,
		ownerID:  ownerID,
		table: newTable([]table.Column{
			{Title: "Code", Width: 8},
			{Title: "Name", Width: 32},
			{Title: "Type", Width: 10},
			{Title: "Opening", Width: 14},
			{Title: "Active", Width: 6},
		}),
	}
}

func (m AccountsModel) Title() string { return "Chart of Accounts" }
func (m AccountsModel) ShortHelp() string {
	return "Esc: back | Enter: ledger | a: active only | r: refresh"
}

func (m AccountsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AccountsModel) loadCmd() tea.Cmd {
	filter := account.ListFilter{OwnerID: m.ownerID, ActiveOnly: m.activeOnly}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accounts.List(ctx, filter)
		return loadAccountsMsg{accounts: accounts, err: err}
	}
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAccountsMsg:
		m.err = msg.err
		m.rows = msg.accounts
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "a":
			m.activeOnly = !m.activeOnly
			return m, m.loadCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.rows) {
				return m, nil
			}

			acc := m.rows[idx]

			return m, func() tea.Msg { return OpenLedgerMsg{Account: acc} }
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *AccountsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))

	for _, a := range m.rows {
		active := "yes"
		if !a.IsActive {
			active = "no"
		}

		rows = append(rows, table.Row{a.Code, a.Name, string(a.Type), money.Format(a.OpeningBalance), active})
	}

	m.table.SetRows(rows)
}

func (m AccountsModel) View() string {
	if m.err != nil {
		return frame(m, renderErr(m.err))
	}

	filter := "all accounts"
	if m.activeOnly {
		filter = "active accounts"
	}

	return frame(m, fmt.Sprintf("%s (%d)\n\n%s", filter, len(m.rows), m.table.View()))
}
