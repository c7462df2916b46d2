// Package enginetest provides an in-memory engine that records every call
// and lets tests emit engine signals by hand.
package enginetest

import (
	"sync"

	"github.com/moos-cli/moos/engine"
)

// Call is a recorded engine invocation.
type Call struct {
	Method string
	Args   []any
}

// Engine is a scriptable engine.Engine.
type Engine struct {
	mu     sync.Mutex
	calls  []Call
	closed bool

	Params engine.Params
	Owner  engine.Callbacks

	// Values returned by the query methods.
	VolumeValue, ProgressValue, LoadedValue, TotalValue, PositionValue, DurationValue int

	// Err, when set, is returned by every method.
	Err error
}

var _ engine.Engine = (*Engine)(nil)

// New returns an engine with the default volume.
func New() *Engine {
	return &Engine{VolumeValue: 100}
}

// Renderer returns an engine.Renderer that attaches e.
func (e *Engine) Renderer() engine.Renderer {
	return func(params engine.Params, owner engine.Callbacks) (engine.Engine, error) {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.Params = params
		e.Owner = owner
		return e, nil
	}
}

// Calls returns a copy of the recorded invocations.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Methods returns the names of the recorded invocations.
func (e *Engine) Methods() []string {
	calls := e.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Method
	}
	return names
}

// Reset forgets the recorded invocations.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = nil
}

// Closed reports whether Close was called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Engine) record(method string, args ...any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, Call{Method: method, Args: args})
	return e.Err
}

func (e *Engine) query(method string, value int) (int, error) {
	if err := e.record(method); err != nil {
		return 0, err
	}
	return value, nil
}

func (e *Engine) Load(url string) error          { return e.record("Load", url) }
func (e *Engine) Play() error                    { return e.record("Play") }
func (e *Engine) Pause() error                   { return e.record("Pause") }
func (e *Engine) Stop() error                    { return e.record("Stop") }
func (e *Engine) Seek(positionMS int) error      { return e.record("Seek", positionMS) }
func (e *Engine) SetVolume(volume int) error     { return e.record("SetVolume", volume) }
func (e *Engine) Volume() (int, error)           { return e.query("Volume", e.VolumeValue) }
func (e *Engine) DownloadProgress() (int, error) { return e.query("DownloadProgress", e.ProgressValue) }
func (e *Engine) BytesLoaded() (int, error)      { return e.query("BytesLoaded", e.LoadedValue) }
func (e *Engine) BytesTotal() (int, error)       { return e.query("BytesTotal", e.TotalValue) }
func (e *Engine) Position() (int, error)         { return e.query("Position", e.PositionValue) }
func (e *Engine) Duration() (int, error)         { return e.query("Duration", e.DurationValue) }

func (e *Engine) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	return e.record("Close")
}
