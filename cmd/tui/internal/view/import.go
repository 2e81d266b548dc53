package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/importer"
	"github.com/MrJamesThe3rd/studiodesk/internal/matching"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateProject importState = iota
	importStateFilePick
	importStateParsing
	importStatePreview
	importStateResolve
	importStateSaving
	importStateResult
)

// keepSide is the user's choice for one duplicated payment.
type keepSide int

const (
	keepRecorded keepSide = iota
	keepLedger
	keepBoth
)

func (k keepSide) String() string {
	switch k {
	case keepLedger:
		return "ledger"
	case keepBoth:
		return "both"
	}

	return "recorded"
}

type ImportModel struct {
	CommonModel
	svc           *workspace.Service
	importService *importer.Service
	matchService  *matching.Service

	state      importState
	form       *huh.Form
	fields     *importFields
	filePicker filepicker.Model
	table      table.Model

	record    finance.Record
	fresh     []finance.PaymentParams
	conflicts []finance.Conflict
	choices   []keepSide

	summary string
	err     error
}

type importFields struct {
	ProjectID string
}

func NewImportModel(svc *workspace.Service, impSvc *importer.Service, matchSvc *matching.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	m := ImportModel{
		svc:           svc,
		importService: impSvc,
		matchService:  matchSvc,
		filePicker:    fp,
		fields:        &importFields{},
	}
	m.form = m.buildForm()

	return m
}

func (m ImportModel) Title() string { return "Import Ledger" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		return "Enter: continue | Esc: cancel"
	case importStateResolve:
		return "Space: cycle recorded/ledger/both | r: all recorded | l: all ledger | Enter: save | Esc: cancel"
	case importStateResult:
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) buildForm() *huh.Form {
	projects := m.svc.Projects("")

	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		options = append(options, huh.NewOption(p.Title, p.ID))
	}

	if len(projects) > 0 {
		m.fields.ProjectID = projects[0].ID
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Import ledger into").
				Options(options...).
				Value(&m.fields.ProjectID),
		),
	)
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.handleEsc()
	}

	switch msg := msg.(type) {
	case ledgerParsedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err

			return m, nil
		}

		m.record = msg.record
		m.fresh, m.conflicts = finance.SplitConflicts(msg.record, msg.params)
		m.choices = make([]keepSide, len(m.conflicts))
		m.table = previewTable(m.fresh, m.conflicts)
		m.state = importStatePreview

		return m, nil

	case importSavedMsg:
		m.state = importStateResult
		m.err = msg.err
		m.summary = msg.summary

		return m, nil
	}

	switch m.state {
	case importStateProject:
		return m.updateForm(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	case importStatePreview:
		return m.updatePreview(msg)
	case importStateResolve:
		return m.updateResolve(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateProject:
		return m, Back
	case importStateParsing, importStateSaving:
		return m, nil
	}

	m.state = importStateProject
	m.err = nil
	m.summary = ""
	m.fresh, m.conflicts, m.choices = nil, nil, nil
	m.form = m.buildForm()

	return m, m.form.Init()
}

func (m ImportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.fields.ProjectID == "" {
		return m, Back
	}

	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		return m, m.parseCmd(m.fields.ProjectID, path)
	}

	return m, cmd
}

func (m ImportModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		if len(m.conflicts) == 0 {
			m.state = importStateSaving
			return m, m.saveCmd()
		}

		m.table = resolveTable(m.conflicts, m.choices)
		m.state = importStateResolve

		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ImportModel) updateResolve(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case " ":
		i := m.table.Cursor()
		m.choices[i] = (m.choices[i] + 1) % 3
	case "r":
		m.setAll(keepRecorded)
	case "l":
		m.setAll(keepLedger)
	case "enter":
		m.state = importStateSaving
		return m, m.saveCmd()
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	cursor := m.table.Cursor()
	m.table = resolveTable(m.conflicts, m.choices)
	m.table.SetCursor(cursor)

	return m, nil
}

func (m ImportModel) setAll(k keepSide) {
	for i := range m.choices {
		m.choices[i] = k
	}
}

// resolution turns the reviewed ledger into what gets written: rows without
// a match, plus each duplicate according to the side the user kept.
func (m ImportModel) resolution() workspace.ImportResolution {
	res := workspace.ImportResolution{
		Add:     append([]finance.PaymentParams(nil), m.fresh...),
		Replace: make(map[string]finance.PaymentParams),
	}

	for i, c := range m.conflicts {
		switch m.choices[i] {
		case keepLedger:
			res.Replace[c.Existing.ID] = c.Incoming
		case keepBoth:
			res.Add = append(res.Add, c.Incoming)
		}
	}

	return res
}

func (m ImportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case importStateProject:
		return style.Render(m.form.View())
	case importStateFilePick:
		return style.Render(fmt.Sprintf("Select ledger CSV:\n\n%s", m.filePicker.View()))
	case importStateParsing:
		return style.Render("Reading ledger...")
	case importStatePreview:
		return style.Render(m.viewPreview())
	case importStateResolve:
		return style.Render(m.viewResolve())
	case importStateSaving:
		return style.Render("Saving payments...")
	case importStateResult:
		if m.err != nil {
			return style.Render(errorStyle.Render("Error: "+m.err.Error()) + "\n\n(Esc to go back)")
		}

		return style.Render(okStyle.Render(m.summary) + "\n\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) viewPreview() string {
	var addAmount, addPaid int64
	for _, p := range m.fresh {
		addAmount += p.Amount
		addPaid += p.PaidAmount
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Ledger preview") + "\n\n")
	fmt.Fprintf(&b, "Recorded:    total %s | paid %s | balance %s\n",
		FormatAmount(m.record.TotalAmount), FormatAmount(m.record.PaidAmount), FormatAmount(m.record.Balance))
	fmt.Fprintf(&b, "New rows:    %d adding %s (%s paid)\n",
		len(m.fresh), FormatAmount(addAmount), FormatAmount(addPaid))
	fmt.Fprintf(&b, "After:       total %s | paid %s | balance %s\n",
		FormatAmount(m.record.TotalAmount+addAmount), FormatAmount(m.record.PaidAmount+addPaid),
		FormatAmount(m.record.Balance+addAmount-addPaid))

	if len(m.conflicts) > 0 {
		b.WriteString(activeStyle(fmt.Sprintf("\n%d rows match payments already recorded and need a decision.", len(m.conflicts))) + "\n")
	}

	b.WriteString("\n" + m.table.View())

	return b.String()
}

func (m ImportModel) viewResolve() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Duplicated payments") + "\n")
	b.WriteString(faintStyle.Render("recorded: keep what is on file | ledger: overwrite it with the row | both: record the row as well") + "\n\n")
	b.WriteString(m.table.View())

	return b.String()
}

func previewTable(fresh []finance.PaymentParams, conflicts []finance.Conflict) table.Model {
	rows := make([]table.Row, 0, len(fresh)+len(conflicts))

	for _, p := range fresh {
		rows = append(rows, paramsRow(p, "new"))
	}

	for _, c := range conflicts {
		rows = append(rows, paramsRow(c.Incoming, "dup "+c.Existing.InvoiceNumber))
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Due", Width: 12},
			{Title: "Type", Width: 15},
			{Title: "Description", Width: 30},
			{Title: "Amount", Width: 18},
			{Title: "Paid", Width: 18},
			{Title: "Status", Width: 9},
			{Title: "Match", Width: 18},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return t
}

func paramsRow(p finance.PaymentParams, match string) table.Row {
	return table.Row{
		FormatDatePtr(p.DueDate),
		string(p.Type),
		p.Description,
		FormatAmount(p.Amount),
		FormatAmount(p.PaidAmount),
		string(p.Status),
		match,
	}
}

func resolveTable(conflicts []finance.Conflict, choices []keepSide) table.Model {
	rows := make([]table.Row, 0, len(conflicts))

	for i, c := range conflicts {
		rows = append(rows, table.Row{
			choices[i].String(),
			c.Incoming.Description,
			FormatAmount(c.Incoming.PaidAmount) + " / " + FormatAmount(c.Incoming.Amount),
			string(c.Incoming.Status),
			FormatAmount(c.Existing.PaidAmount) + " / " + FormatAmount(c.Existing.Amount),
			string(c.Existing.Status),
		})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Keep", Width: 9},
			{Title: "Ledger row", Width: 28},
			{Title: "Ledger paid/amount", Width: 30},
			{Title: "Status", Width: 9},
			{Title: "Recorded paid/amount", Width: 30},
			{Title: "Status", Width: 9},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return t
}

type ledgerParsedMsg struct {
	record finance.Record
	params []finance.PaymentParams
	err    error
}

type importSavedMsg struct {
	summary string
	err     error
}

func (m ImportModel) parseCmd(projectID, path string) tea.Cmd {
	return func() tea.Msg {
		record, err := m.svc.FinanceRecord(projectID)
		if err != nil {
			return ledgerParsedMsg{err: err}
		}

		f, err := os.Open(path)
		if err != nil {
			return ledgerParsedMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(importer.FormatLedger, f)
		if err != nil {
			return ledgerParsedMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		return ledgerParsedMsg{record: record, params: m.matchService.Apply(ctx, params)}
	}
}

func (m ImportModel) saveCmd() tea.Cmd {
	projectID := m.fields.ProjectID
	res := m.resolution()

	skipped := 0
	for _, k := range m.choices {
		if k == keepRecorded {
			skipped++
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		done, err := m.svc.ResolveImport(ctx, projectID, res)
		if err != nil {
			return importSavedMsg{err: err}
		}

		record, err := m.svc.FinanceRecord(projectID)
		if err != nil {
			return importSavedMsg{err: err}
		}

		return importSavedMsg{summary: fmt.Sprintf(
			"Added %d, replaced %d, skipped %d.\nLedger now: total %s | paid %s | balance %s",
			len(done.Added), len(done.Replaced), skipped,
			FormatAmount(record.TotalAmount), FormatAmount(record.PaidAmount), FormatAmount(record.Balance),
		)}
	}
}
