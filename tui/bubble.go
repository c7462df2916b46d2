package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/moos-cli/moos/color"
	"github.com/moos-cli/moos/library"
	"github.com/moos-cli/moos/log"
	"github.com/moos-cli/moos/playback"
	"github.com/moos-cli/moos/util"
)

const (
	seekStep   = 5000
	volumeStep = 5
)

// statefulBubble is the player model.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	notifier  *notifier

	controller *playback.Controller
	file       string

	status             string
	playing, finished  bool
	position, duration int
	loaded, total      int
	volume             int
	metadata           map[string]any
	lastError          error

	width, height int
}

func newBubble(options *Options) *statefulBubble {
	bubble := &statefulBubble{
		keymap:     newStatefulKeymap(),
		notifier:   &notifier{},
		controller: options.Controller,
		file:       options.File,
		volume:     util.Clamp(options.Volume, 0, 100),
		status:     "Starting engine",
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(color.Accent)

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.setState(loadingState)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return bubble
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) raiseError(err error) {
	log.Error(err)
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.progressC.Width = b.width
	b.helpC.Width = b.width
}

func (b *statefulBubble) Init() tea.Cmd {
	// readiness may have been signalled before the bridge subscribed
	if b.controller.Ready() {
		return tea.Batch(b.spinnerC.Tick, func() tea.Msg { return readyMsg{} })
	}
	return b.spinnerC.Tick
}

// start applies the volume and loads the file once the engine is ready.
func (b *statefulBubble) start() tea.Cmd {
	if err := b.controller.SetVolume(b.volume); err != nil {
		b.raiseError(err)
		return nil
	}

	if err := b.controller.LoadFile(b.file); err != nil {
		b.raiseError(err)
		return nil
	}

	if err := library.Remember(b.file); err != nil {
		log.Warnf("remember %s: %v", b.file, err)
	}

	b.status = "Loaded"
	b.setState(playerState)
	return nil
}

// percent is the playhead position as a fraction of the duration.
func (b *statefulBubble) percent() float64 {
	if b.duration <= 0 {
		return 0
	}
	return float64(util.Clamp(b.position, 0, b.duration)) / float64(b.duration)
}
