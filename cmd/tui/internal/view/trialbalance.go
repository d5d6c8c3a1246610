package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

type loadTrialBalanceMsg struct {
	tb  *ledger.TrialBalance
	err error
}

// TrialBalanceModel shows every account's opening, movement and closing
// balance, grouped by code prefix.
type TrialBalanceModel struct {
	CommonModel
	ledger  *ledger.Service
	ownerID uuid.UUID

	table table.Model
	tb    *ledger.TrialBalance
	err   error
}

func NewTrialBalanceModel(svc *ledger.Service, ownerID uuid.UUID) TrialBalanceModel {
	return TrialBalanceModel{
		ledger:  svc,
		ownerID: ownerID,
		table: newTable([]table.Column{
			{Title: "Code", Width: 8},
			{Title: "Name", Width: 30},
			{Title: "Opening", Width: 14},
			{Title: "Debit", Width: 14},
			{Title: "Credit", Width: 14},
			{Title: "Closing", Width: 14},
		}),
	}
}

func (m TrialBalanceModel) Title() string { return "Trial Balance" }
func (m TrialBalanceModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m TrialBalanceModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TrialBalanceModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tb, err := m.ledger.TrialBalance(ctx, m.ownerID, nil)
		return loadTrialBalanceMsg{tb: tb, err: err}
	}
}

func (m TrialBalanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTrialBalanceMsg:
		m.err = msg.err
		m.tb = msg.tb
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *TrialBalanceModel) refreshTable() {
	if m.tb == nil {
		m.table.SetRows(nil)
		return
	}

	var rows []table.Row

	for _, g := range m.tb.Groups {
		for _, a := range g.Accounts {
			rows = append(rows, table.Row{
				a.Code, a.Name,
				money.Format(a.Opening), FormatAmount(a.Debit), FormatAmount(a.Credit), money.Format(a.Closing),
			})
		}

		rows = append(rows, table.Row{
			g.Prefix + "xxx", "subtotal",
			money.Format(g.Opening), money.Format(g.Debit), money.Format(g.Credit), money.Format(g.Closing),
		})
	}

	m.table.SetRows(rows)
}

func (m TrialBalanceModel) View() string {
	if m.err != nil {
		return frame(m, renderErr(m.err))
	}

	if m.tb == nil {
		return frame(m, "Loading...")
	}

	status := okStyle.Render("balanced")
	if !m.tb.Balanced() {
		status = errorStyle.Render("out of balance")
	}

	return frame(m, fmt.Sprintf("%s\n\n%s\n\nDebit %s | Credit %s",
		status, m.table.View(), money.Format(m.tb.Debit), money.Format(m.tb.Credit)))
}
