// Package engine defines the capability contract between the playback controller
// and the external engine that decodes and plays audio.
package engine

// Engine is the opaque playback capability held by a controller.
// Positions and durations are in milliseconds, volume is 0-100.
type Engine interface {
	Load(url string) error
	Play() error
	Pause() error
	Stop() error
	Seek(positionMS int) error
	SetVolume(volume int) error

	Volume() (int, error)
	DownloadProgress() (int, error)
	BytesLoaded() (int, error)
	BytesTotal() (int, error)
	Position() (int, error)
	Duration() (int, error)

	// Close detaches the engine from its container and releases it.
	Close() error
}

// Callbacks is implemented by the owner of an engine.
// Engines deliver callbacks one at a time, in the order they happen.
type Callbacks interface {
	LoadComplete()
	PlayStarted()
	Paused()
	Stopped()
	PlaybackTick(positionMS, durationMS int)
	DownloadTick(bytesLoaded, bytesTotal int)
	LoadError(text string)
	PlaybackComplete()
	MetadataAvailable(data map[string]any)
}

// Vars are passed through to the engine at render time.
type Vars struct {
	// Instance is the name the engine uses when addressing its owner.
	Instance string
	AutoPlay bool
}

// Params describe how an engine is rendered into its container.
type Params struct {
	ID        string
	Container string
	URL       string

	Width, Height     int
	AllowScriptAccess string

	Vars Vars
}

// Renderer attaches a new engine to the container described by params.
// The returned engine may not be ready yet: readiness is signalled through
// owner.LoadComplete.
type Renderer func(params Params, owner Callbacks) (Engine, error)
