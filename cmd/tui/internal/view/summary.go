package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/tax"
)

type summaryState int

const (
	summaryStatePeriod summaryState = iota
	summaryStateResult
)

var summaryKinds = []tax.Kind{tax.KindGSTR3B, tax.KindGSTR1, tax.KindTDS}

type loadSummaryMsg struct {
	summary *tax.Summary
	err     error
}

// SummaryModel builds a return-ready tax summary for a period.
type SummaryModel struct {
	CommonModel
	tax     *tax.Service
	ownerID uuid.UUID

	state   summaryState
	kindIdx int
	picker  TimeframePicker
	period  tax.Range
	summary *tax.Summary
	err     error
}

func NewSummaryModel(svc *tax.Service, ownerID uuid.UUID) SummaryModel {
	return SummaryModel{
		tax:     svc,
		ownerID: ownerID,
		picker:  NewTimeframePicker(false),
	}
}

func (m SummaryModel) kind() tax.Kind { return summaryKinds[m.kindIdx] }

func (m SummaryModel) Title() string {
	return "Tax Summary: " + strings.ToUpper(string(m.kind()))
}

func (m SummaryModel) ShortHelp() string {
	if m.state == summaryStatePeriod {
		return "k: switch return | Esc: back"
	}

	return "k: switch return | Esc: change period | q: back"
}

func (m SummaryModel) Init() tea.Cmd { return nil }

func (m SummaryModel) loadCmd() tea.Cmd {
	r, kind := m.period, m.kind()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.tax.Summarize(ctx, m.ownerID, r, kind)
		return loadSummaryMsg{summary: s, err: err}
	}
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.period = tax.Range{From: msg.Start, To: msg.End}
		m.state = summaryStateResult
		m.summary, m.err = nil, nil

		return m, m.loadCmd()

	case loadSummaryMsg:
		m.summary, m.err = msg.summary, msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "k" && (m.state == summaryStateResult || m.picker.IsSelecting()) {
			m.kindIdx = (m.kindIdx + 1) % len(summaryKinds)
			if m.state == summaryStateResult {
				return m, m.loadCmd()
			}

			return m, nil
		}
	}

	if m.state == summaryStatePeriod {
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
			m.state = summaryStatePeriod
			m.picker.Reset()
		case "q":
			return m, Back
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.state == summaryStatePeriod {
		return frame(m, m.picker.View())
	}

	if m.err != nil {
		return frame(m, renderErr(m.err))
	}

	if m.summary == nil {
		return frame(m, "Loading...")
	}

	return frame(m, renderSummary(m.summary))
}

func renderSummary(s *tax.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s to %s\n", s.Range.From.Format(time.DateOnly), s.Range.To.Format(time.DateOnly))

	supply := func(label string, t *tax.SupplyTotals) {
		if t == nil {
			return
		}

		fmt.Fprintf(&b, "\n%s\n", titleStyle.Render(label))
		fmt.Fprintf(&b, "  %-10s %14s %14s\n", "", "Taxable", "Tax")
		fmt.Fprintf(&b, "  %-10s %14s %14s\n", "documents", money.Format(t.Documents.Taxable), money.Format(t.Documents.Tax))
		fmt.Fprintf(&b, "  %-10s %14s %14s\n", "returns", money.Format(t.Returns.Taxable), money.Format(t.Returns.Tax))
		fmt.Fprintf(&b, "  %-10s %14s %14s\n", "net", money.Format(t.Net.Taxable), money.Format(t.Net.Tax))
	}

	supply("Outward supplies", s.Outward)
	supply("Inward supplies", s.Inward)

	if s.Kind == tax.KindGSTR3B {
		fmt.Fprintf(&b, "\nNet payable:            %s\n", money.Format(s.NetPayable))
		fmt.Fprintf(&b, "Credit carried forward: %s\n", money.Format(s.CreditCarriedForward))
	}

	if s.TDS != nil {
		fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("TDS withheld"))

		for _, c := range s.TDS.Categories {
			fmt.Fprintf(&b, "  %-24s %4d %14s %14s\n",
				c.Category, c.Count, money.Format(c.TransactionAmount), money.Format(c.TDSAmount))
		}

		fmt.Fprintf(&b, "  %-24s %4d %14s %14s\n",
			"total", s.TDS.Count, money.Format(s.TDS.TransactionAmount), money.Format(s.TDS.TDSAmount))
	}

	return b.String()
}
