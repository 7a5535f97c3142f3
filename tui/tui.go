// Package tui provides a Bubble Tea terminal client for the map chat
// session manager.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. The context is used for graceful shutdown; when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// SendDoneMsg signals that a send has completed. Text carries the original
// input so a failed send can restore it to the composer.
type SendDoneMsg struct {
	Text string
	Err  error
}
