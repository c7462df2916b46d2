// Package style holds the lipgloss renderers shared by the CLI and the player.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/moos-cli/moos/color"
)

// New returns a blank style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer that paints its input with the foreground c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders a padded header block.
func Title(s string) string {
	return New().
		Foreground(color.New("230")).
		Background(color.Accent).
		Padding(0, 1).
		Render(s)
}

// ErrorTitle is Title in the error color.
func ErrorTitle(s string) string {
	return New().
		Foreground(color.New("230")).
		Background(color.Error).
		Padding(0, 1).
		Render(s)
}

// Status colors a playback status word: green while playing, red on failure.
func Status(status string, playing bool) string {
	switch {
	case playing:
		return Fg(color.Success)(status)
	case status == "Error":
		return Fg(color.Error)(status)
	default:
		return Fg(color.Warning)(status)
	}
}
