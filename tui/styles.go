package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for rendering.
type Styles struct {
	UserMsg lipgloss.Style
	BotMsg  lipgloss.Style
	Pending lipgloss.Style
	CmdOK   lipgloss.Style
	CmdFail lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
}

// DefaultStyles uses the basic ANSI palette so the client renders sensibly
// on any terminal.
func DefaultStyles() Styles {
	return Styles{
		UserMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		BotMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
		CmdOK:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		CmdFail: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	}
}
