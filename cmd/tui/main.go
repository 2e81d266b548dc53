package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/studiodesk/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/studiodesk/internal/config"
	"github.com/MrJamesThe3rd/studiodesk/internal/database"
	"github.com/MrJamesThe3rd/studiodesk/internal/export"
	"github.com/MrJamesThe3rd/studiodesk/internal/fixture"
	"github.com/MrJamesThe3rd/studiodesk/internal/importer"
	"github.com/MrJamesThe3rd/studiodesk/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/studiodesk/internal/matching/store"
	"github.com/MrJamesThe3rd/studiodesk/internal/user"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
	workspaceStore "github.com/MrJamesThe3rd/studiodesk/internal/workspace/store"
)

type model struct {
	appName         string
	svc             *workspace.Service
	matchingService *matching.Service
	importService   *importer.Service
	exportService   *export.Service

	actor       user.User
	currentView View

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	projectsView  view.ProjectsModel
	paymentsView  view.PaymentsModel
	notesView     view.NotesModel
	chatView      view.ChatModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewLogin     View = 0
	ViewMenu      View = 1
	ViewDashboard View = 2
	ViewProjects  View = 3
	ViewPayments  View = 4
	ViewNotes     View = 5
	ViewChat      View = 6
	ViewImport    View = 7
	ViewExport    View = 8
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	driver, dsn, err := cfg.DataSource()
	if err != nil {
		slog.Error("invalid database config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(driver, dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	seed, err := fixture.Load(cfg.Seed.Fixture)
	if err != nil {
		slog.Error("failed to load seed data", "error", err)
		os.Exit(1)
	}

	svc, err := workspace.Open(context.Background(), workspaceStore.New(db, driver), seed)
	if err != nil {
		slog.Error("failed to open workspace", "error", err)
		os.Exit(1)
	}

	return model{
		appName:         cfg.App.Name,
		svc:             svc,
		matchingService: matching.NewService(matchingStore.New(db, driver)),
		importService:   importer.NewService(),
		exportService:   export.NewService(svc, cfg.Documents.Token),
		currentView:     ViewLogin,
		loginView:       view.NewLoginModel(svc, cfg.App.Name),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, m.quit()
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.svc)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewProjects
				m.projectsView = view.NewProjectsModel(m.svc)

				return m, m.projectsView.Init()
			case "3":
				m.currentView = ViewPayments
				m.paymentsView = view.NewPaymentsModel(m.svc)

				return m, m.paymentsView.Init()
			case "4":
				m.currentView = ViewNotes
				m.notesView = view.NewNotesModel(m.svc, m.actor)

				return m, m.notesView.Init()
			case "5":
				m.currentView = ViewChat
				m.chatView = view.NewChatModel(m.svc, m.actor)

				return m, m.chatView.Init()
			case "6":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.svc, m.importService, m.matchingService)

				return m, m.importView.Init()
			case "7":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.svc, m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.LoggedInMsg:
		m.actor = msg.User
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewProjects:
		var newModel tea.Model
		newModel, cmd = m.projectsView.Update(msg)
		m.projectsView = newModel.(view.ProjectsModel)
	case ViewPayments:
		var newModel tea.Model
		newModel, cmd = m.paymentsView.Update(msg)
		m.paymentsView = newModel.(view.PaymentsModel)
	case ViewNotes:
		var newModel tea.Model
		newModel, cmd = m.notesView.Update(msg)
		m.notesView = newModel.(view.NotesModel)
	case ViewChat:
		var newModel tea.Model
		newModel, cmd = m.chatView.Update(msg)
		m.chatView = newModel.(view.ChatModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

// quit marks the signed-in user offline before leaving.
func (m model) quit() tea.Cmd {
	if m.actor.ID == "" {
		return tea.Quit
	}

	return tea.Sequence(func() tea.Msg {
		if err := m.svc.Logout(context.Background(), m.actor.ID); err != nil {
			slog.Error("failed to log out", "error", err)
		}

		return nil
	}, tea.Quit)
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + " | " + m.actor.FullName + " (" + string(m.actor.Role) + ")\n\n" +
				"1. Dashboard\n" +
				"2. Projects\n" +
				"3. Payments\n" +
				"4. Notes\n" +
				"5. Team Chat\n" +
				"6. Import Ledger\n" +
				"7. Export Statement\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewProjects:
		return m.projectsView.View()
	case ViewPayments:
		return m.paymentsView.View()
	case ViewNotes:
		return m.notesView.View()
	case ViewChat:
		return m.chatView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
