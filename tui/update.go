package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moos-cli/moos/util"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		cmds = append(cmds, cmd)
	case readyMsg:
		// the engine re-signals readiness after a load error
		if b.state == loadingState {
			cmds = append(cmds, b.start())
		}
	case playMsg:
		b.playing, b.finished = true, false
		b.status = "Playing"
	case pauseMsg:
		b.playing = false
		b.status = "Paused"
	case stopMsg:
		b.playing = false
		b.position = 0
		b.status = "Stopped"
	case completeMsg:
		b.playing, b.finished = false, true
		b.position = b.duration
		b.status = "Finished"
	case soundErrorMsg:
		b.raiseError(errors.New(string(msg)))
	case metadataMsg:
		b.metadata = msg
	case tickMsg:
		b.position, b.duration = msg.position, msg.duration
	case downloadMsg:
		b.loaded, b.total = msg.loaded, msg.total
	case tea.KeyMsg:
		return b, tea.Batch(append(cmds, b.handleKey(msg))...)
	}

	return b, tea.Batch(cmds...)
}

func (b *statefulBubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keymap.forceQuit):
		return tea.Quit
	case key.Matches(msg, b.keymap.quit):
		if b.state != loadingState {
			return tea.Quit
		}
		return nil
	}

	if b.state != playerState {
		return nil
	}

	var err error
	switch {
	case key.Matches(msg, b.keymap.playPause):
		if b.playing {
			err = b.controller.Pause()
		} else {
			err = b.controller.Play()
		}
	case key.Matches(msg, b.keymap.stop):
		err = b.controller.Stop()
	case key.Matches(msg, b.keymap.replay):
		if err = b.controller.LoadFile(b.file); err == nil {
			err = b.controller.Play()
		}
	case key.Matches(msg, b.keymap.seekForward):
		err = b.seek(b.position + seekStep)
	case key.Matches(msg, b.keymap.seekBackward):
		err = b.seek(b.position - seekStep)
	case key.Matches(msg, b.keymap.volumeUp):
		return b.changeVolume(volumeStep)
	case key.Matches(msg, b.keymap.volumeDown):
		return b.changeVolume(-volumeStep)
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	if err != nil {
		b.raiseError(err)
	}
	return nil
}

func (b *statefulBubble) seek(positionMS int) error {
	positionMS = max(positionMS, 0)
	if b.duration > 0 {
		positionMS = min(positionMS, b.duration)
	}

	if err := b.controller.Seek(positionMS); err != nil {
		return err
	}
	b.position = positionMS
	return nil
}

func (b *statefulBubble) changeVolume(delta int) tea.Cmd {
	volume := util.Clamp(b.volume+delta, 0, 100)
	if err := b.controller.SetVolume(volume); err != nil {
		b.raiseError(err)
		return nil
	}

	b.volume = volume
	return notify(fmt.Sprintf("Volume %d%%", volume))
}
