// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback Engine - these keys describe the engine instance rendered by the controller.
const (
	EngineID        = "engine.id"
	EngineContainer = "engine.container"
	EngineURL       = "engine.url"
	EngineInstance  = "engine.instance"
)

// Playback Behaviour - these keys are forwarded to the controller and the engine at render time.
const (
	PlaybackAutoPlay = "playback.autoplay"
	PlaybackDebug    = "playback.debug"
	PlaybackVolume   = "playback.volume"
)

// Local Library - these keys control how audio files are discovered for playback.
const (
	LibraryExtensions = "library.extensions"
)

// Terminal User Interface (TUI)
const (
	TUIShowMetadata = "tui.show_metadata"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
