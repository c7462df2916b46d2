// Package color is the moos palette: ANSI colors for CLI output and the
// true-color accents of the player view.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors, used by commands so output follows the terminal theme.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	HiRed    = New("9")
	HiPurple = New("13")
	Orange   = New("#ffb703")
)

// Player accents.
var (
	Text    = New("#cdd6f4")
	Accent  = New("#cba6f7")
	Success = New("#a6e3a1")
	Warning = New("#f9e2af")
	Error   = New("#f38ba8")
)
