package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/moos-cli/moos/color"
	"github.com/moos-cli/moos/icon"
	"github.com/moos-cli/moos/key"
	"github.com/moos-cli/moos/playback"
	"github.com/moos-cli/moos/style"
	"github.com/moos-cli/moos/util"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.status,
		},
	)
}

func (b *statefulBubble) statusIcon() string {
	switch {
	case b.playing:
		return icon.Get(icon.Play)
	case b.status == "Stopped" || b.finished:
		return icon.Get(icon.Stop)
	default:
		return icon.Get(icon.Pause)
	}
}

func (b *statefulBubble) viewPlayer() string {
	lines := []string{
		style.Title("Now Playing"),
		"",
		truncateLine(fmt.Sprintf("%s %s", icon.Get(icon.Music), style.Fg(color.Purple)(title(b.metadata, util.FileStem(b.file)))), b.width),
		"",
		b.progressC.ViewAs(b.percent()),
		fmt.Sprintf(
			"%s %s %s / %s",
			b.statusIcon(),
			style.Status(util.Capitalize(b.status), b.playing),
			playback.FormatTime(b.position),
			playback.FormatTime(b.duration),
		),
		style.Faint(fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), b.volume)),
	}

	if b.total > 0 && b.loaded < b.total {
		lines = append(lines, style.Faint(fmt.Sprintf(
			"%s %s / %s",
			icon.Get(icon.Download),
			util.HumanBytes(b.loaded),
			util.HumanBytes(b.total),
		)))
	}

	if viper.GetBool(key.TUIShowMetadata) {
		if tags := renderTags(b.metadata, b.width); len(tags) > 0 {
			lines = append(lines, "")
			lines = append(lines, tags...)
		}
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(color.Error).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Playback failed:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	h := lipgloss.Height(l)
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
