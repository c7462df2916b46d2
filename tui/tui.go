// Package tui implements the now-playing terminal interface.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moos-cli/moos/playback"
)

// Options configure the player view.
type Options struct {
	// Controller is driven by the view. It is not closed by Run.
	Controller *playback.Controller
	// File is loaded as soon as the controller is ready.
	File string
	// Volume is applied before loading, 0-100.
	Volume int
}

// Run shows the player until the user quits.
func Run(options *Options) error {
	bubble := newBubble(options)
	program := tea.NewProgram(bubble, tea.WithAltScreen())

	subs := bridge(options.Controller, program.Send)
	defer func() {
		for _, sub := range subs {
			options.Controller.Off(sub)
		}
	}()

	_, err := program.Run()
	return err
}
