package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/studiodesk/internal/note"
	"github.com/MrJamesThe3rd/studiodesk/internal/user"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

var categoryFilters = []note.Category{
	note.CategoryAll,
	note.CategoryGeneral,
	note.CategoryMeeting,
	note.CategoryIdea,
	note.CategoryProject,
	note.CategoryPersonal,
	note.CategoryTodo,
}

type notesState int

const (
	notesStateBrowse notesState = iota
	notesStateForm
)

type NotesModel struct {
	CommonModel
	svc   *workspace.Service
	actor user.User

	state       notesState
	table       table.Model
	notes       []note.Note
	categoryIdx int

	form    *huh.Form
	fields  *noteFields
	editing string

	status string
}

type noteFields struct {
	Title    string
	Content  string
	Category note.Category
	Priority note.Priority
}

func NewNotesModel(svc *workspace.Service, actor user.User) NotesModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 2},
			{Title: "Title", Width: 36},
			{Title: "Category", Width: 10},
			{Title: "Priority", Width: 8},
			{Title: "Updated", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return NotesModel{svc: svc, actor: actor, table: t}
}

func (m NotesModel) Title() string { return "Notes" }

func (m NotesModel) ShortHelp() string {
	if m.state == notesStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | c: category | n: new | e: edit | p: pin | d: delete"
}

func (m NotesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m NotesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadNotesMsg:
		m.notes = msg.notes
		m.refreshTable()

		return m, nil

	case noteSaveMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = notesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()
	}

	if m.state == notesStateForm {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % len(categoryFilters)
			return m, m.loadCmd()
		case "n":
			return m.enterForm(note.Note{Category: note.CategoryGeneral, Priority: note.PriorityMedium})
		case "e":
			if n, ok := m.selected(); ok {
				return m.enterForm(n)
			}
		case "p":
			if n, ok := m.selected(); ok {
				return m, m.pinCmd(n.ID)
			}
		case "d":
			if n, ok := m.selected(); ok {
				return m, m.deleteCmd(n.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m NotesModel) enterForm(n note.Note) (tea.Model, tea.Cmd) {
	m.editing = n.ID
	m.fields = &noteFields{
		Title:    n.Title,
		Content:  n.Content,
		Category: n.Category,
		Priority: n.Priority,
	}

	categories := make([]huh.Option[note.Category], 0, len(categoryFilters)-1)
	for _, c := range categoryFilters[1:] {
		categories = append(categories, huh.NewOption(string(c), c))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&m.fields.Title).
				Validate(required("title")),
			huh.NewText().
				Key("content").
				Title("Content").
				Lines(4).
				Value(&m.fields.Content),
			huh.NewSelect[note.Category]().
				Key("category").
				Title("Category").
				Options(categories...).
				Value(&m.fields.Category),
			huh.NewSelect[note.Priority]().
				Key("priority").
				Title("Priority").
				Options(
					huh.NewOption("Low", note.PriorityLow),
					huh.NewOption("Medium", note.PriorityMedium),
					huh.NewOption("High", note.PriorityHigh),
				).
				Value(&m.fields.Priority),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = notesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m NotesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = notesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m NotesModel) View() string {
	header := fmt.Sprintf("[c] Category: %s", activeStyle(string(categoryFilters[m.categoryIdx])))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		m.table.View(),
	)

	var side string

	if m.state == notesStateForm && m.form != nil {
		title := "New Note"
		if m.editing != "" {
			title = "Edit Note"
		}

		side = title + "\n\n" + m.form.View()
	} else if n, ok := m.selected(); ok {
		side = fmt.Sprintf("%s\n%s  %s\n\n%s",
			titleStyle.Render(n.Title),
			colored(n.Category.Color(), string(n.Category)),
			colored(n.Priority.Color(), string(n.Priority)),
			n.Content)
	}

	if side != "" {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render(side)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m NotesModel) selected() (note.Note, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.notes) {
		return note.Note{}, false
	}

	return m.notes[idx], true
}

func (m *NotesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.notes))
	for _, n := range m.notes {
		pin := ""
		if n.IsPinned {
			pin = "*"
		}

		rows = append(rows, table.Row{
			pin,
			n.Title,
			string(n.Category),
			string(n.Priority),
			n.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// Messages

type loadNotesMsg struct {
	notes []note.Note
}

func (m NotesModel) loadCmd() tea.Cmd {
	category := categoryFilters[m.categoryIdx]

	return func() tea.Msg {
		return loadNotesMsg{notes: m.svc.Notes("", category)}
	}
}

type noteSaveMsg struct {
	err error
}

func (m NotesModel) saveCmd() tea.Cmd {
	f := *m.fields
	f.Title = strings.TrimSpace(f.Title)
	id := m.editing

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if id == "" {
			_, err := m.svc.CreateNote(ctx, note.CreateParams{
				Title:    f.Title,
				Content:  f.Content,
				Category: f.Category,
				Priority: f.Priority,
			}, m.actor.ID)

			return noteSaveMsg{err: err}
		}

		_, err := m.svc.EditNote(ctx, id, note.Update{
			Title:    &f.Title,
			Content:  &f.Content,
			Category: &f.Category,
			Priority: &f.Priority,
		})

		return noteSaveMsg{err: err}
	}
}

func (m NotesModel) pinCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.TogglePin(ctx, id)

		return noteSaveMsg{err: err}
	}
}

func (m NotesModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return noteSaveMsg{err: m.svc.DeleteNote(ctx, id)}
	}
}
