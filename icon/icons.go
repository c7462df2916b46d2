package icon

// Icon identifies a status symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Play
	Pause
	Stop
	Music
	Volume
	Download
)

var icons = map[Icon]iconDef{
	Success:  {emoji: "🎉", nerd: "", plain: "✓"},
	Fail:     {emoji: "💀", nerd: "", plain: "✗"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!"},
	Progress: {emoji: "⏳", nerd: "", plain: "~"},
	Play:     {emoji: "▶️", nerd: "", plain: ">"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||"},
	Stop:     {emoji: "⏹️", nerd: "", plain: "[]"},
	Music:    {emoji: "🎵", nerd: "", plain: "#"},
	Volume:   {emoji: "🔊", nerd: "", plain: "vol"},
	Download: {emoji: "📥", nerd: "", plain: "dl"},
}
