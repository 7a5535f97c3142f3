package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fieldreport/mapchat"
	"github.com/fieldreport/mapchat/session"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the map chat client.
type Model struct {
	// Input is the message composer. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable conversation area. Exported for test access.
	Viewport viewport.Model

	manager *session.Manager
	view    mapchat.MapView
	styles  Styles

	sending bool
	err     error
	ready   bool
}

// New creates a TUI model bound to the manager. view may be nil; the map
// status line is omitted then.
func New(manager *session.Manager, view mapchat.MapView) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about incidents or tell me to move the map..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:   ti,
		manager: manager,
		view:    view,
		styles:  DefaultStyles(),
	}
}

// Err returns the last send error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SendDoneMsg:
		m.sending = false
		if msg.Err != nil {
			m.err = msg.Err
			// Give the user their words back to edit and retry.
			m.Input.SetValue(msg.Text)
		}
		m.refresh()
		cmd := m.Input.Focus()
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.sending {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusH := 1
	borderH := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusH - borderH
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
		m.refresh()
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyCtrlN:
		if !m.sending {
			m.manager.Clear()
			m.manager.Initialize(context.Background())
			m.err = nil
			m.refresh()
		}
		return m, nil

	case tea.KeyEnter:
		if m.sending || !m.manager.CanSendMessage() {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submit(text)
	}

	if !m.sending {
		var cmds []tea.Cmd
		var cmd tea.Cmd
		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil
	m.sending = true

	manager := m.manager
	return m, func() tea.Msg {
		err := manager.Send(context.Background(), text, mapchat.ModeText)
		return SendDoneMsg{Text: text, Err: err}
	}
}

func (m *Model) refresh() {
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
}

func (m Model) renderContent() string {
	var b strings.Builder
	for _, msg := range m.manager.Messages() {
		switch msg.Sender {
		case mapchat.SenderUser:
			b.WriteString(m.styles.UserMsg.Render("You: " + msg.Text))
		case mapchat.SenderBot:
			if msg.Status == mapchat.StatusPending {
				b.WriteString(m.styles.Pending.Render("Assistant is thinking..."))
			} else {
				b.WriteString(m.styles.BotMsg.Render("Assistant: " + msg.Text))
			}
		}
		b.WriteString("\n")
		for _, res := range msg.MapCommandResults {
			if res.Success {
				b.WriteString(m.styles.CmdOK.Render("  + " + res.Function))
			} else {
				b.WriteString(m.styles.CmdFail.Render("  ! " + res.Function + ": " + res.Error))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) statusLine() string {
	var parts []string
	if sess, ok := m.manager.Session(); ok {
		parts = append(parts, m.styles.Accent.Render(sess.Title))
	} else {
		parts = append(parts, m.styles.Muted.Render("no session"))
	}
	if m.view != nil {
		center, zoom := m.view.Camera()
		parts = append(parts, m.styles.Muted.Render(
			fmt.Sprintf("%.4f, %.4f z%.0f %s", center.Lat, center.Lon, zoom, m.view.Basemap())))
	}
	if m.sending {
		parts = append(parts, m.styles.Pending.Render("sending..."))
	}
	parts = append(parts, m.styles.Muted.Render("enter send / ctrl+n new chat / ctrl+c quit"))
	return strings.Join(parts, "  ")
}
