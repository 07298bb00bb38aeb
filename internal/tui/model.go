// Package tui is a terminal front end for the portfolio chat, standing in
// for the web widget when talking to a local or remote API server.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gabgonzales/portfolio-api/internal/chat"
	"github.com/gabgonzales/portfolio-api/internal/chatclient"
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cursorGlyph    = "▌"
)

// Event messages bridged from the controller goroutine.
type (
	stateMsg    chatclient.State
	typingMsg   string
	transcriptMsg chat.Message
	turnDoneMsg struct{}
)

// Model is the Bubble Tea model for the chat session.
type Model struct {
	controller *chatclient.Controller
	events     chan tea.Msg

	input        textinput.Model
	transcript   []chat.Message
	typingPrefix string
	state        chatclient.State
	hint         string
	width        int
	personaName  string
}

// New creates the model and its controller wired to the given API base URL.
func New(baseURL, greeting, personaName string, maxLen int) *Model {
	events := make(chan tea.Msg, 64)

	client := chatclient.NewClient(baseURL)
	controller := chatclient.NewController(client, greeting, maxLen, chatclient.Events{
		OnState:    func(s chatclient.State) { events <- stateMsg(s) },
		OnTyping:   func(prefix string) { events <- typingMsg(prefix) },
		OnMessage:  func(m chat.Message) { events <- transcriptMsg(m) },
		OnTurnDone: func() { events <- turnDoneMsg{} },
	})

	ti := textinput.New()
	ti.Placeholder = "Ask me anything…"
	ti.CharLimit = maxLen
	ti.Focus()

	return &Model{
		controller:  controller,
		events:      events,
		input:       ti,
		transcript:  controller.Messages(),
		personaName: personaName,
		width:       80,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// waitForEvent forwards one controller event into the update loop.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.controller.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			m.hint = ""
			if err := m.controller.Submit(context.Background(), m.input.Value()); err != nil {
				m.hint = submitHint(err)
				return m, nil
			}
			m.input.Reset()
			return m, nil
		}

	case stateMsg:
		m.state = chatclient.State(msg)
		if m.state != chatclient.StateTyping {
			m.typingPrefix = ""
		}
		return m, m.waitForEvent()

	case typingMsg:
		m.typingPrefix = string(msg)
		return m, m.waitForEvent()

	case transcriptMsg:
		m.transcript = append(m.transcript, chat.Message(msg))
		return m, m.waitForEvent()

	case turnDoneMsg:
		m.typingPrefix = ""
		return m, m.waitForEvent()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder

	for _, msg := range m.transcript {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	switch m.state {
	case chatclient.StateThinking:
		b.WriteString(statusStyle.Render(m.personaName + " is thinking…"))
		b.WriteString("\n")
	case chatclient.StateTyping:
		b.WriteString(m.renderMessage(chat.Message{
			Role:    chat.RoleAssistant,
			Content: m.typingPrefix + cursorGlyph,
		}))
		b.WriteString("\n")
	}

	if m.hint != "" {
		b.WriteString(errorStyle.Render(m.hint))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("enter to send · esc to quit"))
	return b.String()
}

func (m *Model) renderMessage(msg chat.Message) string {
	label := "You"
	style := userStyle
	if msg.Role == chat.RoleAssistant {
		label = m.personaName
		style = assistantStyle
	}
	wrapped := lipgloss.NewStyle().Width(m.width - 2).Render(msg.Content)
	return fmt.Sprintf("%s\n%s", style.Render(label+":"), wrapped)
}

func submitHint(err error) string {
	switch {
	case errors.Is(err, chatclient.ErrEmptyMessage):
		return "Type a message first."
	case errors.Is(err, chatclient.ErrTooLong):
		return "Message too long."
	case errors.Is(err, chatclient.ErrBusy):
		return "Hold on, still replying…"
	default:
		return err.Error()
	}
}
