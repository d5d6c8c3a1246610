package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
)

type model struct {
	app     *app.App
	ownerID uuid.UUID

	currentView View

	accountsView     view.AccountsModel
	ledgerView       view.LedgerModel
	trialBalanceView view.TrialBalanceModel
	expenseView      view.ExpenseModel
	summaryView      view.SummaryModel
}

type View int

const (
	ViewMenu View = iota
	ViewAccounts
	ViewLedger
	ViewTrialBalance
	ViewExpense
	ViewSummary
)

func initialModel() (model, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return model{}, fmt.Errorf("loading config: %w", err)
	}

	if cfg.TUI.OwnerID == uuid.Nil {
		return model{}, fmt.Errorf("TUI_OWNER_ID is required")
	}

	a, err := app.New(context.Background(), cfg, nil)
	if err != nil {
		return model{}, err
	}

	return model{
		app:         a,
		ownerID:     cfg.TUI.OwnerID,
		currentView: ViewMenu,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAccounts
				m.accountsView = view.NewAccountsModel(m.app.Accounts, m.ownerID)

				return m, m.accountsView.Init()
			case "2":
				m.currentView = ViewTrialBalance
				m.trialBalanceView = view.NewTrialBalanceModel(m.app.Ledger, m.ownerID)

				return m, m.trialBalanceView.Init()
			case "3":
				m.currentView = ViewExpense
				m.expenseView = view.NewExpenseModel(m.app.Expenses, m.ownerID)

				return m, m.expenseView.Init()
			case "4":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.app.Tax, m.ownerID)

				return m, m.summaryView.Init()
			}
		}
	case view.OpenLedgerMsg:
		m.currentView = ViewLedger
		m.ledgerView = view.NewLedgerModel(m.app.Ledger, msg.Account)

		return m, m.ledgerView.Init()
	case view.BackMsg:
		if m.currentView == ViewLedger {
			m.currentView = ViewAccounts
			return m, nil
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewAccounts:
		var newModel tea.Model
		newModel, cmd = m.accountsView.Update(msg)
		m.accountsView = newModel.(view.AccountsModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewTrialBalance:
		var newModel tea.Model
		newModel, cmd = m.trialBalanceView.Update(msg)
		m.trialBalanceView = newModel.(view.TrialBalanceModel)
	case ViewExpense:
		var newModel tea.Model
		newModel, cmd = m.expenseView.Update(msg)
		m.expenseView = newModel.(view.ExpenseModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tally TUI\n\n" +
				"1. Chart of Accounts\n" +
				"2. Trial Balance\n" +
				"3. Record Expense\n" +
				"4. Tax Summary\n\n" +
				"q. Quit",
		)
	case ViewAccounts:
		return m.accountsView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewTrialBalance:
		return m.trialBalanceView.View()
	case ViewExpense:
		return m.expenseView.View()
	case ViewSummary:
		return m.summaryView.View()
	}

	return "Unknown View"
}

func main() {
	m, err := initialModel()
	if err != nil {
		slog.Error("failed to start TUI", "error", err)
		os.Exit(1)
	}

	_, err = tea.NewProgram(m).Run()
	m.app.Close()

	if err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
