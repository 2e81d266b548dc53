package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/studiodesk/internal/chat"
	"github.com/MrJamesThe3rd/studiodesk/internal/user"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

const chatHistory = 15

type ChatModel struct {
	CommonModel
	svc   *workspace.Service
	actor user.User

	rooms   []chat.Room
	cursor  int
	input   textinput.Model
	writing bool
	err     error
}

func NewChatModel(svc *workspace.Service, actor user.User) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message"
	ti.CharLimit = 500
	ti.Width = 60

	return ChatModel{svc: svc, actor: actor, input: ti}
}

func (m ChatModel) Title() string { return "Team Chat" }

func (m ChatModel) ShortHelp() string {
	if m.writing {
		return "Enter: send | Esc: rooms"
	}

	return "Esc: back | Up/Down: room | Tab: write"
}

func (m ChatModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRoomsMsg:
		m.rooms = msg.rooms
		if m.cursor >= len(m.rooms) {
			m.cursor = 0
		}

		return m, nil

	case sentMsg:
		m.err = msg.err
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.writing {
			return m.updateInput(msg)
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rooms)-1 {
				m.cursor++
			}
		case "tab", "enter":
			m.writing = true
			return m, m.input.Focus()
		}
	}

	return m, nil
}

func (m ChatModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		m.writing = false
		m.input.Blur()

		return m, nil
	case tea.KeyEnter:
		text := m.input.Value()
		m.input.SetValue("")

		if room, ok := m.current(); ok {
			return m, m.sendCmd(room.ID, text)
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m ChatModel) View() string {
	var rooms strings.Builder

	for i, r := range m.rooms {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		fmt.Fprintf(&rooms, "%s%s %s\n", cursor, r.Name, faintStyle.Render(fmt.Sprintf("(%d)", len(r.Messages))))
	}

	left := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(34).
		Render(rooms.String())

	var msgs strings.Builder

	if room, ok := m.current(); ok {
		msgs.WriteString(titleStyle.Render(room.Name) + "\n\n")

		history := room.Messages
		if len(history) > chatHistory {
			history = history[len(history)-chatHistory:]
		}

		for _, msg := range history {
			name := msg.Username
			if msg.UserID == m.actor.ID {
				name = activeStyle(name)
			}

			fmt.Fprintf(&msgs, "%s %s\n  %s\n", faintStyle.Render(msg.Timestamp.Local().Format("02 Jan 15:04")), name, msg.Message)
		}
	}

	msgs.WriteString("\n" + m.input.View())

	if m.err != nil {
		msgs.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	right := lipgloss.NewStyle().Padding(0, 2).Render(msgs.String())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
}

func (m ChatModel) current() (chat.Room, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rooms) {
		return chat.Room{}, false
	}

	return m.rooms[m.cursor], true
}

// Messages

type loadRoomsMsg struct {
	rooms []chat.Room
}

func (m ChatModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadRoomsMsg{rooms: m.svc.Rooms("")}
	}
}

type sentMsg struct {
	err error
}

func (m ChatModel) sendCmd(roomID, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, _, err := m.svc.SendMessage(ctx, roomID, m.actor.ID, m.actor.FullName, text)

		return sentMsg{err: err}
	}
}
