package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type paymentsState int

const (
	paymentsStateBrowse paymentsState = iota
	paymentsStateEdit
	paymentsStateNew
)

var statusFilters = []finance.PaymentStatus{
	finance.StatusAll,
	finance.StatusPending,
	finance.StatusPartial,
	finance.StatusPaid,
	finance.StatusOverdue,
}

type PaymentsModel struct {
	CommonModel
	svc *workspace.Service

	state    paymentsState
	table    table.Model
	projects []project.Project
	record   finance.Record
	payments []finance.Payment
	form     *huh.Form

	projectIdx      int
	statusFilterIdx int

	err    error
	status string

	fields *paymentFields
}

// paymentFields holds the values bound to the edit and new forms. It lives
// behind a pointer so the bindings survive the model being copied.
type paymentFields struct {
	Type    finance.PaymentType
	Desc    string
	Amount  string
	Paid    string
	Status  finance.PaymentStatus
	Invoice string
	Due     string
}

func NewPaymentsModel(svc *workspace.Service) PaymentsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Due", Width: 12},
			{Title: "Type", Width: 15},
			{Title: "Description", Width: 34},
			{Title: "Amount", Width: 18},
			{Title: "Paid", Width: 18},
			{Title: "Status", Width: 9},
			{Title: "Invoice", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return PaymentsModel{
		svc:      svc,
		table:    t,
		projects: svc.Projects(""),
	}
}

func (m PaymentsModel) Title() string { return "Payments" }

func (m PaymentsModel) ShortHelp() string {
	if m.state != paymentsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | p: project | s: status filter | e: edit | n: new | r: refresh"
}

func (m PaymentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPaymentsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.record = msg.record
		m.payments = msg.payments
		m.refreshTable()

		return m, nil

	case paymentSaveMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = paymentsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case paymentsStateBrowse:
		return m.updateBrowse(msg)
	case paymentsStateEdit, paymentsStateNew:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m PaymentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "n":
			return m.enterNewMode()
		case "p":
			if len(m.projects) > 0 {
				m.projectIdx = (m.projectIdx + 1) % len(m.projects)
			}

			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PaymentsModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.payments) {
		return m, nil
	}

	p := m.payments[idx]
	m.fields = &paymentFields{
		Desc:    p.Description,
		Amount:  decimal.New(p.Amount, -2).StringFixed(2),
		Paid:    decimal.New(p.PaidAmount, -2).StringFixed(2),
		Status:  p.Status,
		Invoice: p.InvoiceNumber,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.fields.Desc).
				Validate(required("description")),
			huh.NewInput().
				Key("amount").
				Title("Amount (RM)").
				Value(&m.fields.Amount).
				Validate(validAmount),
			huh.NewInput().
				Key("paid").
				Title("Paid (RM)").
				Value(&m.fields.Paid).
				Validate(validAmount),
			huh.NewSelect[finance.PaymentStatus]().
				Key("status").
				Title("Status").
				Options(statusOptions()...).
				Value(&m.fields.Status),
			huh.NewInput().
				Key("invoice").
				Title("Invoice Number").
				Value(&m.fields.Invoice),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = paymentsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m PaymentsModel) enterNewMode() (tea.Model, tea.Cmd) {
	if len(m.projects) == 0 {
		return m, nil
	}

	m.fields = &paymentFields{Type: finance.TypeMilestone}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[finance.PaymentType]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Deposit", finance.TypeDeposit),
					huh.NewOption("Milestone", finance.TypeMilestone),
					huh.NewOption("Final", finance.TypeFinal),
					huh.NewOption("Consultant Fee", finance.TypeConsultantFee),
					huh.NewOption("Material", finance.TypeMaterial),
					huh.NewOption("Other", finance.TypeOther),
				).
				Value(&m.fields.Type),
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.fields.Desc).
				Validate(required("description")),
			huh.NewInput().
				Key("amount").
				Title("Amount (RM)").
				Value(&m.fields.Amount).
				Validate(validAmount),
			huh.NewInput().
				Key("due").
				Title("Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.Due).
				Validate(validOptionalDate),
			huh.NewInput().
				Key("invoice").
				Title("Invoice Number").
				Value(&m.fields.Invoice),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = paymentsStateNew
	m.table.Blur()

	return m, m.form.Init()
}

func (m PaymentsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = paymentsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == paymentsStateNew {
		return m, m.createCmd()
	}

	return m, m.saveCmd()
}

func (m PaymentsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	projectTitle := "No projects"
	if p, ok := m.currentProject(); ok {
		projectTitle = p.Title
	}

	header := fmt.Sprintf(
		"[p] Project: %s | [s] Status: %s",
		activeStyle(projectTitle),
		activeStyle(string(statusFilters[m.statusFilterIdx])),
	)

	totals := fmt.Sprintf("Total %s | Paid %s | Balance %s",
		FormatAmount(m.record.TotalAmount), FormatAmount(m.record.PaidAmount), FormatAmount(m.record.Balance))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(totals),
	)

	if m.state != paymentsStateBrowse && m.form != nil {
		title := "New Payment"
		if m.state == paymentsStateEdit {
			title = "Edit Payment"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m PaymentsModel) currentProject() (project.Project, bool) {
	if m.projectIdx < 0 || m.projectIdx >= len(m.projects) {
		return project.Project{}, false
	}

	return m.projects[m.projectIdx], true
}

func (m *PaymentsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.payments))
	for _, p := range m.payments {
		rows = append(rows, table.Row{
			FormatDatePtr(p.DueDate),
			string(p.Type),
			p.Description,
			FormatAmount(p.Amount),
			FormatAmount(p.PaidAmount),
			string(p.Status),
			p.InvoiceNumber,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func statusOptions() []huh.Option[finance.PaymentStatus] {
	return []huh.Option[finance.PaymentStatus]{
		huh.NewOption("Pending", finance.StatusPending),
		huh.NewOption("Partial", finance.StatusPartial),
		huh.NewOption("Paid", finance.StatusPaid),
		huh.NewOption("Overdue", finance.StatusOverdue),
	}
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// parseRinggit reads a user-entered amount such as "RM 1,250.50" into sen.
func parseRinggit(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "RM"))
	s = strings.ReplaceAll(s, ",", "")

	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if d.IsNegative() {
		return 0, errors.New("amount cannot be negative")
	}

	return d.Shift(2).IntPart(), nil
}

func validAmount(s string) error {
	_, err := parseRinggit(s)
	return err
}

func validOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

// Messages

type loadPaymentsMsg struct {
	record   finance.Record
	payments []finance.Payment
	err      error
}

func (m PaymentsModel) loadCmd() tea.Cmd {
	p, ok := m.currentProject()
	if !ok {
		return nil
	}

	status := statusFilters[m.statusFilterIdx]

	return func() tea.Msg {
		record, err := m.svc.FinanceRecord(p.ID)
		if err != nil {
			return loadPaymentsMsg{err: err}
		}

		return loadPaymentsMsg{record: record, payments: finance.FilterPayments(record.Payments, status)}
	}
}

type paymentSaveMsg struct {
	err error
}

func (m PaymentsModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.payments) {
		return nil
	}

	payment := m.payments[idx]
	desc := strings.TrimSpace(m.fields.Desc)
	amount, _ := parseRinggit(m.fields.Amount)
	paid, _ := parseRinggit(m.fields.Paid)
	status := m.fields.Status
	invoice := strings.TrimSpace(m.fields.Invoice)

	upd := finance.PaymentUpdate{
		Description:   &desc,
		Amount:        &amount,
		PaidAmount:    &paid,
		Status:        &status,
		InvoiceNumber: &invoice,
	}

	if status == finance.StatusPaid && payment.PaidDate == nil {
		now := time.Now()
		upd.PaidDate = &now
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.UpdatePayment(ctx, payment.ProjectID, payment.ID, upd)

		return paymentSaveMsg{err: err}
	}
}

func (m PaymentsModel) createCmd() tea.Cmd {
	p, ok := m.currentProject()
	if !ok {
		return nil
	}

	amount, _ := parseRinggit(m.fields.Amount)

	params := finance.PaymentParams{
		Type:          m.fields.Type,
		Description:   strings.TrimSpace(m.fields.Desc),
		Amount:        amount,
		Status:        finance.StatusPending,
		InvoiceNumber: strings.TrimSpace(m.fields.Invoice),
	}

	if due, err := time.Parse(time.DateOnly, strings.TrimSpace(m.fields.Due)); err == nil {
		params.DueDate = &due
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.AddPayment(ctx, p.ID, params)

		return paymentSaveMsg{err: err}
	}
}
