package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/posting"
)

type expenseState int

const (
	expenseStateLoading expenseState = iota
	expenseStateForm
	expenseStateSaving
	expenseStateResult
)

// expenseDraft holds the form bindings. It lives behind a pointer so the
// form keeps writing to the same values as the model is copied.
type expenseDraft struct {
	date        string
	payee       string
	category    string
	description string
	gross       string
	tax         string
	mode        posting.PaymentMode
	ruleID      string
	postNow     bool
}

type loadRulesMsg struct {
	rules []*expense.Rule
	err   error
}

type expenseSavedMsg struct {
	expense *expense.Expense
	err     error
}

// ExpenseModel records an expense and optionally posts it to the ledger.
type ExpenseModel struct {
	CommonModel
	expenses *expense.Service
	ownerID  uuid.UUID

	state   expenseState
	rules   []*expense.Rule
	draft   *expenseDraft
	form    *huh.Form
	spinner spinner.Model

	saved *expense.Expense
	err   error
}

func NewExpenseModel(svc *expense.Service, ownerID uuid.UUID) ExpenseModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExpenseModel{
		expenses: svc,
		ownerID:  ownerID,
		spinner:  s,
		draft:    newExpenseDraft(),
	}
}

func newExpenseDraft() *expenseDraft {
	return &expenseDraft{
		date:    time.Now().Format("2006-01-02"),
		mode:    posting.PaymentBank,
		postNow: true,
	}
}

func (m ExpenseModel) Title() string { return "Record Expense" }

func (m ExpenseModel) ShortHelp() string {
	switch m.state {
	case expenseStateResult:
		return "Enter: record another | Esc: back to menu"
	case expenseStateSaving:
		return "Saving..."
	}

	return "Esc: back"
}

func (m ExpenseModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rules, err := m.expenses.Rules(ctx, m.ownerID)
		return loadRulesMsg{rules: rules, err: err}
	}
}

func (m ExpenseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != expenseStateSaving {
		return m, Back
	}

	switch m.state {
	case expenseStateLoading:
		if loaded, ok := msg.(loadRulesMsg); ok {
			if loaded.err != nil {
				m.err = loaded.err
				m.state = expenseStateResult

				return m, nil
			}

			m.rules = loaded.rules
			m.form = m.buildForm()
			m.state = expenseStateForm

			return m, m.form.Init()
		}

	case expenseStateForm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.state = expenseStateSaving

		return m, tea.Batch(m.spinner.Tick, m.saveCmd(*m.draft))

	case expenseStateSaving:
		if saved, ok := msg.(expenseSavedMsg); ok {
			m.saved, m.err = saved.expense, saved.err
			m.state = expenseStateResult

			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case expenseStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			m.draft = newExpenseDraft()
			m.saved, m.err = nil, nil
			m.state = expenseStateLoading

			return m, m.Init()
		}
	}

	return m, nil
}

func validateAmount(optional bool) func(string) error {
	return func(s string) error {
		if optional && strings.TrimSpace(s) == "" {
			return nil
		}

		d, err := money.Parse(s)
		if err != nil {
			return fmt.Errorf("not an amount")
		}

		if d.IsNegative() {
			return fmt.Errorf("must not be negative")
		}

		return nil
	}
}

func (m ExpenseModel) buildForm() *huh.Form {
	modes := []posting.PaymentMode{
		posting.PaymentBank,
		posting.PaymentCash,
		posting.PaymentUPI,
		posting.PaymentDebitCard,
		posting.PaymentCreditCard,
		posting.PaymentCheque,
	}

	modeOpts := make([]huh.Option[posting.PaymentMode], 0, len(modes))
	for _, mode := range modes {
		modeOpts = append(modeOpts, huh.NewOption(string(mode), mode))
	}

	ruleOpts := []huh.Option[string]{huh.NewOption("No TDS", "")}
	for _, r := range m.rules {
		label := fmt.Sprintf("%s %s (%s%%)", r.Section, r.Category, r.RatePercent.String())
		ruleOpts = append(ruleOpts, huh.NewOption(label, r.ID.String()))
	}

	d := m.draft

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&d.date).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Category").
				Description("Expense account to debit").
				Value(&d.category).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category cannot be empty")
					}
					return nil
				}),
			huh.NewInput().Title("Payee").Value(&d.payee),
			huh.NewInput().Title("Description").Value(&d.description),
		),
		huh.NewGroup(
			huh.NewInput().Title("Gross Amount").Value(&d.gross).Validate(validateAmount(false)),
			huh.NewInput().Title("Input Tax").Placeholder("0.00").Value(&d.tax).Validate(validateAmount(true)),
			huh.NewSelect[posting.PaymentMode]().Title("Paid By").Options(modeOpts...).Value(&d.mode),
			huh.NewSelect[string]().Title("TDS Rule").Options(ruleOpts...).Value(&d.ruleID),
			huh.NewConfirm().Title("Post to the ledger now?").Value(&d.postNow),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ExpenseModel) saveCmd(d expenseDraft) tea.Cmd {
	return func() tea.Msg {
		params, err := d.params(m.ownerID)
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.expenses.Create(ctx, params)
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		if d.postNow {
			e, err = m.expenses.Post(ctx, e.ID)
		}

		return expenseSavedMsg{expense: e, err: err}
	}
}

func (d expenseDraft) params(ownerID uuid.UUID) (expense.CreateParams, error) {
	date, err := time.Parse("2006-01-02", d.date)
	if err != nil {
		return expense.CreateParams{}, fmt.Errorf("parsing date: %w", err)
	}

	gross, err := money.Parse(d.gross)
	if err != nil {
		return expense.CreateParams{}, err
	}

	tax := decimal.Zero
	if strings.TrimSpace(d.tax) != "" {
		if tax, err = money.Parse(d.tax); err != nil {
			return expense.CreateParams{}, err
		}
	}

	params := expense.CreateParams{
		OwnerID:      ownerID,
		Date:         date,
		PayeeName:    d.payee,
		CategoryName: d.category,
		Description:  d.description,
		GrossAmount:  gross,
		TaxAmount:    tax,
		PaymentMode:  d.mode,
	}

	if d.ruleID != "" {
		id, err := uuid.Parse(d.ruleID)
		if err != nil {
			return expense.CreateParams{}, fmt.Errorf("parsing rule id: %w", err)
		}

		params.TDSRuleID = &id
	}

	return params, nil
}

func (m ExpenseModel) View() string {
	switch m.state {
	case expenseStateLoading:
		return frame(m, "Loading TDS rules...")
	case expenseStateForm:
		return frame(m, m.form.View())
	case expenseStateSaving:
		return frame(m, m.spinner.View()+" Saving expense...")
	}

	if m.err != nil {
		return frame(m, renderErr(m.err))
	}

	e := m.saved
	lines := []string{
		okStyle.Render("Expense " + string(e.Status)),
		"",
		fmt.Sprintf("Gross:   %s", money.Format(e.GrossAmount)),
		fmt.Sprintf("Tax:     %s", money.Format(e.TaxAmount)),
		fmt.Sprintf("TDS:     %s", money.Format(e.TDSAmount)),
	}

	if e.JournalID != nil {
		lines = append(lines, fmt.Sprintf("Journal: %s", e.JournalID))
	}

	return frame(m, lipgloss.JoinVertical(lipgloss.Left, lines...))
}
