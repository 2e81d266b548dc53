package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type ProjectsModel struct {
	CommonModel
	svc *workspace.Service

	table     table.Model
	search    textinput.Model
	searching bool
	projects  []project.Project
}

func NewProjectsModel(svc *workspace.Service) ProjectsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Title", Width: 40},
			{Title: "Client", Width: 26},
			{Title: "Status", Width: 20},
			{Title: "Start", Width: 12},
			{Title: "Budget", Width: 18},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	ti := textinput.New()
	ti.Placeholder = "title, client or location"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return ProjectsModel{svc: svc, table: t, search: ti}
}

func (m ProjectsModel) Title() string { return "Projects" }

func (m ProjectsModel) ShortHelp() string {
	if m.searching {
		return "Enter: done | Esc: clear"
	}

	return "Esc: back | /: search"
}

func (m ProjectsModel) Init() tea.Cmd {
	return m.loadCmd("")
}

func (m ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProjectsMsg:
		m.projects = msg.projects
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 16)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "/":
			m.searching = true
			m.table.Blur()

			return m, m.search.Focus()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProjectsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		fallthrough
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.table.Focus()

		return m, m.loadCmd(m.search.Value())
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, tea.Batch(cmd, m.loadCmd(m.search.Value()))
}

func (m ProjectsModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Projects"),
		m.search.View(),
		m.table.View(),
	)

	if p, ok := m.selected(); ok {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.viewDetail(p))
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ProjectsModel) viewDetail(p project.Project) string {
	var sb strings.Builder

	fin := project.ComputeFinancials(p)

	fmt.Fprintf(&sb, "%s  %s\n", colored(p.Color, "■"), p.Title)
	fmt.Fprintf(&sb, "%s | %s\n", p.Location, colored(p.Status.Color(), string(p.Status)))
	fmt.Fprintf(&sb, "Fees %s | Approved %s | Pending %s\n\n",
		FormatAmount(fin.TotalFees), FormatAmount(fin.PaidFees), FormatAmount(fin.PendingFees))

	if len(p.Submissions) == 0 {
		sb.WriteString(faintStyle.Render("No submissions"))
	}

	for _, s := range p.Submissions {
		fmt.Fprintf(&sb, "* %-22s %-28s %s %s\n",
			s.Type, s.Authority, colored(s.Status.Color(), string(s.Status)), FormatAmount(s.ConsultantFee))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(sb.String())
}

func (m ProjectsModel) selected() (project.Project, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.projects) {
		return project.Project{}, false
	}

	return m.projects[idx], true
}

func (m *ProjectsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.projects))
	for _, p := range m.projects {
		budget := "-"
		if p.TotalBudget != nil {
			budget = FormatAmount(*p.TotalBudget)
		}

		rows = append(rows, table.Row{
			p.Title,
			p.ClientName,
			string(p.Status),
			FormatDate(p.StartDate),
			budget,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

type loadProjectsMsg struct {
	projects []project.Project
}

func (m ProjectsModel) loadCmd(query string) tea.Cmd {
	return func() tea.Msg {
		return loadProjectsMsg{projects: m.svc.Projects(query)}
	}
}
