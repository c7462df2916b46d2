// Package playback implements the playback controller: a facade over a single
// engine instance that forwards commands only once the engine is ready and
// re-publishes engine callbacks as named events.
package playback

import (
	"fmt"
	"maps"
	"sync"

	"github.com/moos-cli/moos/engine"
	"github.com/moos-cli/moos/events"
	"github.com/samber/mo"
)

// Controller owns one engine and tracks its readiness and the last metadata it reported.
//
// Commands issued while the engine is not ready are dropped without error.
// Engine callbacks are translated into the events listed in EventNames.
type Controller struct {
	OptionsHolder
	events.Emitter

	mu       sync.RWMutex
	engine   engine.Engine
	ready    bool
	closed   bool
	metadata map[string]any
}

var _ engine.Callbacks = (*Controller)(nil)

// New merges opts over the defaults and renders the engine.
// The engine is usually not ready when New returns; listen for EventReady.
func New(opts Options) (*Controller, error) {
	c := &Controller{metadata: make(map[string]any)}
	if err := c.SetOptions(opts); err != nil {
		return nil, err
	}

	if err := c.render(); err != nil {
		return nil, err
	}

	return c, nil
}

// engineParams describes the engine for options o.
// The engine is invisible, so it gets the smallest possible viewport.
func engineParams(o Options) engine.Params {
	return engine.Params{
		ID:                o.Engine.ID,
		Container:         o.Engine.Container,
		URL:               o.Engine.URL,
		Width:             1,
		Height:            1,
		AllowScriptAccess: "always",
		Vars: engine.Vars{
			Instance: o.Instance,
			AutoPlay: o.AutoPlay,
		},
	}
}

func (c *Controller) render() error {
	o := c.Options()
	e, err := o.Engine.Renderer(engineParams(o), c)
	if err != nil {
		return fmt.Errorf("render engine %s: %w", o.Engine.ID, err)
	}

	c.mu.Lock()
	c.engine = e
	c.mu.Unlock()
	return nil
}

// Ready reports whether the engine accepts commands.
func (c *Controller) Ready() bool {
	_, ok := c.attached()
	return ok
}

// Metadata returns a copy of the tags last reported by the engine.
func (c *Controller) Metadata() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.metadata)
}

// attached returns the engine when it is ready to take commands.
func (c *Controller) attached() (engine.Engine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ready || c.engine == nil {
		return nil, false
	}
	return c.engine, true
}

// Close detaches and releases the engine. Every later call is a no-op.
func (c *Controller) Close() error {
	c.mu.Lock()
	e := c.engine
	c.engine = nil
	c.ready = false
	c.closed = true
	c.mu.Unlock()

	if e == nil {
		return nil
	}

	if err := e.Close(); err != nil {
		return fmt.Errorf("close engine: %w", err)
	}
	return nil
}

func (c *Controller) forward(op string, fn func(engine.Engine) error) error {
	e, ok := c.attached()
	if !ok {
		return nil
	}

	if err := fn(e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LoadFile loads a new file for playback.
func (c *Controller) LoadFile(url string) error {
	return c.forward("load file", func(e engine.Engine) error { return e.Load(url) })
}

// Play plays or resumes playback.
func (c *Controller) Play() error {
	return c.forward("play", engine.Engine.Play)
}

func (c *Controller) Pause() error {
	return c.forward("pause", engine.Engine.Pause)
}

// Stop stops playback, rewinds and unloads the file.
func (c *Controller) Stop() error {
	return c.forward("stop", engine.Engine.Stop)
}

// Seek moves the playhead to positionMS.
func (c *Controller) Seek(positionMS int) error {
	return c.forward("seek", func(e engine.Engine) error { return e.Seek(positionMS) })
}

// SetVolume sets the volume. The level is passed through unchecked; engines expect 0-100.
func (c *Controller) SetVolume(level int) error {
	return c.forward("set volume", func(e engine.Engine) error { return e.SetVolume(level) })
}

func (c *Controller) query(op string, fn func(engine.Engine) (int, error)) mo.Option[int] {
	e, ok := c.attached()
	if !ok {
		return mo.None[int]()
	}

	v, err := fn(e)
	if err != nil {
		c.Log(fmt.Sprintf("%s: %v", op, err))
		return mo.None[int]()
	}
	return mo.Some(v)
}

// Volume returns the current volume, 0-100.
func (c *Controller) Volume() mo.Option[int] {
	return c.query("volume", engine.Engine.Volume)
}

// DownloadProgress returns the download progress in percent.
func (c *Controller) DownloadProgress() mo.Option[int] {
	return c.query("download progress", engine.Engine.DownloadProgress)
}

func (c *Controller) BytesLoaded() mo.Option[int] {
	return c.query("bytes loaded", engine.Engine.BytesLoaded)
}

func (c *Controller) BytesTotal() mo.Option[int] {
	return c.query("bytes total", engine.Engine.BytesTotal)
}

// Position returns the playhead position in milliseconds.
func (c *Controller) Position() mo.Option[int] {
	return c.query("position", engine.Engine.Position)
}

// Duration returns the total duration of the loaded file in milliseconds.
func (c *Controller) Duration() mo.Option[int] {
	return c.query("duration", engine.Engine.Duration)
}

// FormattedDuration returns Duration as hh:mm:ss.
func (c *Controller) FormattedDuration() mo.Option[string] {
	return formatted(c.Duration())
}

// FormattedPosition returns Position as hh:mm:ss.
func (c *Controller) FormattedPosition() mo.Option[string] {
	return formatted(c.Position())
}

func formatted(ms mo.Option[int]) mo.Option[string] {
	v, ok := ms.Get()
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(FormatTime(v))
}

// Log writes msg to the diagnostic sink when debugging is enabled.
func (c *Controller) Log(msg string) {
	o := c.Options()
	if !o.Debug || o.Logger == nil {
		return
	}
	o.Logger.Info(msg)
}

// setReady updates the readiness flag. It reports false once the controller is closed.
func (c *Controller) setReady(ready bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.ready = ready
	return true
}

func (c *Controller) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Controller) publish(name string, args ...any) {
	if c.isClosed() {
		return
	}
	c.Fire(name, append(args, c)...)
}

// LoadComplete implements engine.Callbacks.
func (c *Controller) LoadComplete() {
	if !c.setReady(true) {
		return
	}
	c.Log("engine ready")
	c.Fire(EventReady, c)
}

// LoadError implements engine.Callbacks.
func (c *Controller) LoadError(text string) {
	if !c.setReady(false) {
		return
	}
	c.Log("sound error: " + text)
	c.Fire(EventSoundError, text, c)
}

// MetadataAvailable implements engine.Callbacks.
func (c *Controller) MetadataAvailable(data map[string]any) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.metadata = maps.Clone(data)
	if c.metadata == nil {
		c.metadata = make(map[string]any)
	}
	c.mu.Unlock()

	c.Fire(EventID3, data, c)
}

func (c *Controller) PlayStarted()      { c.publish(EventPlay) }
func (c *Controller) Paused()           { c.publish(EventPause) }
func (c *Controller) Stopped()          { c.publish(EventStop) }
func (c *Controller) PlaybackComplete() { c.publish(EventSongComplete) }

func (c *Controller) PlaybackTick(positionMS, durationMS int) {
	c.publish(EventPlayback, positionMS, durationMS)
}

func (c *Controller) DownloadTick(bytesLoaded, bytesTotal int) {
	c.publish(EventSoundProgress, bytesLoaded, bytesTotal)
}
