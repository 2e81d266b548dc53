package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/studiodesk/internal/user"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

// LoggedInMsg is sent once the user has signed in.
type LoggedInMsg struct {
	User user.User
}

type LoginModel struct {
	CommonModel
	svc *workspace.Service

	appName string
	form    *huh.Form
	fields  *loginFields
	err     error
}

type loginFields struct {
	Username string
	Password string
}

func NewLoginModel(svc *workspace.Service, appName string) LoginModel {
	m := LoginModel{svc: svc, appName: appName, fields: &loginFields{}}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	m.fields.Password = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.fields.Username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fields.Password),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(loginResultMsg); ok {
		if res.err == nil {
			return m, func() tea.Msg { return LoggedInMsg{User: res.user} }
		}

		m.err = res.err
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.loginCmd(strings.TrimSpace(m.fields.Username), m.fields.Password)
}

func (m LoginModel) View() string {
	content := titleStyle.Render(m.appName) + "\n\n" + m.form.View()

	if m.err != nil {
		msg := fmt.Sprintf("Login failed: %v", m.err)
		if errors.Is(m.err, user.ErrInvalidCredentials) {
			msg = "Invalid username or password"
		}

		content += "\n" + errorStyle.Render(msg)
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type loginResultMsg struct {
	user user.User
	err  error
}

func (m LoginModel) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		u, err := m.svc.Login(ctx, username, password)

		return loginResultMsg{user: u, err: err}
	}
}
