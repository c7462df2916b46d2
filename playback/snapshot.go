package playback

// Snapshot is a point-in-time view of a controller, as printed by "moos probe".
// Absent values are nil: the controller was not ready or the engine could not answer.
type Snapshot struct {
	Ready             bool           `json:"ready" jsonschema:"description=Whether the engine accepted commands when the snapshot was taken."`
	Volume            *int           `json:"volume,omitempty" jsonschema:"description=Volume between 0 and 100."`
	Position          *int           `json:"position,omitempty" jsonschema:"description=Playhead position in milliseconds."`
	Duration          *int           `json:"duration,omitempty" jsonschema:"description=Total duration in milliseconds."`
	FormattedPosition string         `json:"formattedPosition,omitempty" jsonschema:"description=Playhead position as hh:mm:ss."`
	FormattedDuration string         `json:"formattedDuration,omitempty" jsonschema:"description=Total duration as hh:mm:ss."`
	DownloadProgress  *int           `json:"downloadProgress,omitempty" jsonschema:"description=Download progress in percent."`
	BytesLoaded       *int           `json:"bytesLoaded,omitempty"`
	BytesTotal        *int           `json:"bytesTotal,omitempty"`
	Metadata          map[string]any `json:"metadata" jsonschema:"description=Tags reported by the engine such as ID3 frames."`
}

// Snapshot queries the engine once for every value.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Ready:             c.Ready(),
		Volume:            c.Volume().ToPointer(),
		Position:          c.Position().ToPointer(),
		Duration:          c.Duration().ToPointer(),
		FormattedPosition: c.FormattedPosition().OrEmpty(),
		FormattedDuration: c.FormattedDuration().OrEmpty(),
		DownloadProgress:  c.DownloadProgress().ToPointer(),
		BytesLoaded:       c.BytesLoaded().ToPointer(),
		BytesTotal:        c.BytesTotal().ToPointer(),
		Metadata:          c.Metadata(),
	}
}
