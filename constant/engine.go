package constant

// Engine defaults applied when the caller leaves a field unset.
const (
	EngineID       = "moosSwf"
	EngineURL      = "swf/Player.swf"
	EngineInstance = "moos"
)

// EngineExecutable is the engine locator used by the CLI, which always drives mpv.
const EngineExecutable = "mpv"
