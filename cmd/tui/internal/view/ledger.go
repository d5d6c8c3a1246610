package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

type ledgerState int

const (
	ledgerStatePeriod ledgerState = iota
	ledgerStateRows
)

type loadLedgerMsg struct {
	rows []ledger.BalanceRow
	err  error
}

// LedgerModel shows an account's running balance up to a chosen date.
type LedgerModel struct {
	CommonModel
	ledger  *ledger.Service
	account *account.Account

	state  ledgerState
	picker TimeframePicker
	asOf   *time.Time
	table  table.Model
	rows   []ledger.BalanceRow
	err    error
}

func NewLedgerModel(svc *ledger.Service, acc *account.Account) LedgerModel {
	return LedgerModel{
		ledger:  svc,
		account: acc,
		picker:  NewTimeframePicker(true),
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Journal", Width: 14},
			{Title: "Narration", Width: 36},
			{Title: "Debit", Width: 12},
			{Title: "Credit", Width: 12},
			{Title: "Balance", Width: 14},
		}),
	}
}

func (m LedgerModel) Title() string {
	return fmt.Sprintf("Ledger: %s %s", m.account.Code, m.account.Name)
}

func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStatePeriod {
		return "Pick the balance date | Esc: back"
	}

	return "Esc: change date | q: back"
}

func (m LedgerModel) Init() tea.Cmd { return nil }

func (m LedgerModel) loadCmd() tea.Cmd {
	id, asOf := m.account.ID, m.asOf

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rows, err := m.ledger.RunningBalance(ctx, id, asOf)
		return loadLedgerMsg{rows: rows, err: err}
	}
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.asOf = nil
		if !msg.All {
			end := msg.End
			m.asOf = &end
		}

		m.state = ledgerStateRows

		return m, m.loadCmd()

	case loadLedgerMsg:
		m.err = msg.err
		m.rows = msg.rows
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	if m.state == ledgerStatePeriod {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = ledgerStatePeriod
			m.picker.Reset()

			return m, nil
		case "q":
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *LedgerModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))

	for _, r := range m.rows {
		narration := r.Narration
		if r.Opening {
			narration = "Opening balance"
		}

		rows = append(rows, table.Row{
			FormatDate(r.Date),
			r.JournalNumber,
			narration,
			FormatAmount(r.Debit),
			FormatAmount(r.Credit),
			money.Format(r.Balance),
		})
	}

	m.table.SetRows(rows)
}

func (m LedgerModel) View() string {
	if m.state == ledgerStatePeriod {
		return frame(m, m.picker.View())
	}

	if m.err != nil {
		return frame(m, renderErr(m.err))
	}

	asOf := "all dates"
	if m.asOf != nil {
		asOf = "as of " + FormatDate(*m.asOf)
	}

	closing := "0.00"
	if n := len(m.rows); n > 0 {
		closing = money.Format(m.rows[n-1].Balance)
	}

	return frame(m, fmt.Sprintf("%s, closing %s\n\n%s", asOf, closing, m.table.View()))
}
