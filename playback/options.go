package playback

import (
	"fmt"
	"sync"

	"dario.cat/mergo"
	"github.com/moos-cli/moos/constant"
	"github.com/moos-cli/moos/engine"
	"github.com/moos-cli/moos/engine/mpv"
	"github.com/moos-cli/moos/log"
	"github.com/moos-cli/moos/where"
	"github.com/sirupsen/logrus"
)

// EngineOptions describe the engine instance rendered by a controller.
type EngineOptions struct {
	// ID uniquely identifies the engine instance inside its container.
	ID string
	// Container is the location the engine is attached to.
	// For the mpv engine this is the directory holding its IPC socket.
	Container string
	// URL locates the engine resource.
	URL string
	// Renderer creates the engine. Defaults to the mpv engine.
	Renderer engine.Renderer
}

// Options configure a Controller. Zero fields take their default value.
type Options struct {
	Engine EngineOptions
	// Instance is the name the engine uses to address the controller.
	Instance string
	AutoPlay bool
	Debug    bool
	// Logger is the diagnostic sink used by Log when Debug is set.
	Logger logrus.FieldLogger
}

// DefaultOptions returns the options used for every field left unset.
func DefaultOptions() Options {
	return Options{
		Engine: EngineOptions{
			ID:        constant.EngineID,
			Container: where.Temp(),
			URL:       constant.EngineURL,
			Renderer:  mpv.Render,
		},
		Instance: constant.EngineInstance,
		Logger:   log.Sink("playback"),
	}
}

// Configurable is implemented by types holding merged options.
type Configurable interface {
	SetOptions(Options) error
	Options() Options
}

// OptionsHolder merges supplied options over the defaults and keeps the result.
type OptionsHolder struct {
	mu      sync.RWMutex
	options Options
}

var _ Configurable = (*OptionsHolder)(nil)

// SetOptions merges o over DefaultOptions. Supplied non-zero values win and the
// nested engine options are merged field by field.
func (h *OptionsHolder) SetOptions(o Options) error {
	merged, err := mergeOptions(o, DefaultOptions())
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.options = merged
	return nil
}

// Options returns the merged options.
func (h *OptionsHolder) Options() Options {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.options
}

func mergeOptions(supplied, defaults Options) (Options, error) {
	// the renderer and the logger are references, not data: mergo must not descend into them
	renderer, logger := supplied.Engine.Renderer, supplied.Logger
	if renderer == nil {
		renderer = defaults.Engine.Renderer
	}
	if logger == nil {
		logger = defaults.Logger
	}
	supplied.Engine.Renderer, supplied.Logger = nil, nil
	defaults.Engine.Renderer, defaults.Logger = nil, nil

	if err := mergo.Merge(&supplied, defaults); err != nil {
		return Options{}, fmt.Errorf("merge options: %w", err)
	}

	supplied.Engine.Renderer, supplied.Logger = renderer, logger
	return supplied, nil
}
