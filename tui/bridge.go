package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moos-cli/moos/events"
	"github.com/moos-cli/moos/playback"
)

type (
	readyMsg      struct{}
	playMsg       struct{}
	pauseMsg      struct{}
	stopMsg       struct{}
	completeMsg   struct{}
	soundErrorMsg string
	metadataMsg   map[string]any

	tickMsg struct {
		position, duration int
	}

	downloadMsg struct {
		loaded, total int
	}
)

// bridge forwards controller events to send as tea messages.
func bridge(c *playback.Controller, send func(tea.Msg)) []events.Subscription {
	return []events.Subscription{
		c.OnReady(func(*playback.Controller) { send(readyMsg{}) }),
		c.OnPlay(func(*playback.Controller) { send(playMsg{}) }),
		c.OnPause(func(*playback.Controller) { send(pauseMsg{}) }),
		c.OnStop(func(*playback.Controller) { send(stopMsg{}) }),
		c.OnSongComplete(func(*playback.Controller) { send(completeMsg{}) }),
		c.OnSoundError(func(text string, _ *playback.Controller) { send(soundErrorMsg(text)) }),
		c.OnID3(func(data map[string]any, _ *playback.Controller) { send(metadataMsg(data)) }),
		c.OnPlayback(func(position, duration int, _ *playback.Controller) {
			send(tickMsg{position: position, duration: duration})
		}),
		c.OnSoundProgress(func(loaded, total int, _ *playback.Controller) {
			send(downloadMsg{loaded: loaded, total: total})
		}),
	}
}
