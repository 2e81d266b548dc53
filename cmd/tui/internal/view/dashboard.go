package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type DashboardModel struct {
	CommonModel
	svc *workspace.Service

	overview workspace.Overview
	table    table.Model
}

func NewDashboardModel(svc *workspace.Service) DashboardModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Project", Width: 40},
			{Title: "Total Fees", Width: 18},
			{Title: "Approved", Width: 18},
			{Title: "Pending", Width: 18},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	t.SetStyles(tableStyles())

	return DashboardModel{svc: svc, table: t}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.overview = msg.overview

		rows := make([]table.Row, 0, len(m.overview.Breakdown))
		for _, b := range m.overview.Breakdown {
			rows = append(rows, table.Row{
				b.Title,
				FormatAmount(b.TotalFees),
				FormatAmount(b.PaidFees),
				FormatAmount(b.PendingFees),
			})
		}

		m.table.SetRows(rows)

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

func (m DashboardModel) View() string {
	s := m.overview.Summary
	f := m.overview.Finance

	cards := []string{
		card("Projects", fmt.Sprintf("%d (%d active)", s.TotalProjects, s.ActiveProjects)),
		card("Consultant Fees", FormatAmount(s.TotalConsultantFees)),
		card("Submissions", fmt.Sprintf("%d pending / %d approved", s.PendingSubmissions, s.ApprovedSubmissions)),
	}

	money := []string{
		card("Revenue", FormatAmount(f.Revenue)),
		card("Outstanding", FormatAmount(f.Pending)),
		card("Invoiced", FormatAmount(f.Invoiced)),
		card("Budget", FormatAmount(m.overview.TotalBudget)),
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Dashboard"))
	sb.WriteString(faintStyle.Render(fmt.Sprintf("  %d online", m.overview.OnlineUsers)))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, money...))
	sb.WriteString("\n\nFee breakdown\n")
	sb.WriteString(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}

func card(label, value string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		MarginRight(1).
		Render(faintStyle.Render(label) + "\n" + value)
}

type loadDashboardMsg struct {
	overview workspace.Overview
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadDashboardMsg{overview: m.svc.Overview()}
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}
