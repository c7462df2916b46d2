package playback

import "github.com/moos-cli/moos/events"

// Names of the events published by a Controller.
const (
	EventReady         = "ready"
	EventPlay          = "onPlay"
	EventPause         = "onPause"
	EventStop          = "onStop"
	EventPlayback      = "onPlayback"
	EventSoundProgress = "onSoundProgress"
	EventSoundError    = "onSoundError"
	EventSongComplete  = "onSongComplete"
	EventID3           = "onID3"
)

// EventNames lists every event a Controller publishes.
var EventNames = []string{
	EventReady,
	EventPlay,
	EventPause,
	EventStop,
	EventPlayback,
	EventSoundProgress,
	EventSoundError,
	EventSongComplete,
	EventID3,
}

// The typed helpers below register listeners through the embedded emitter.
// Listeners registered with On receive the same arguments untyped.

func (c *Controller) OnReady(fn func(self *Controller)) events.Subscription {
	return c.On(EventReady, func(args ...any) { fn(args[0].(*Controller)) })
}

func (c *Controller) OnPlay(fn func(self *Controller)) events.Subscription {
	return c.On(EventPlay, func(args ...any) { fn(args[0].(*Controller)) })
}

func (c *Controller) OnPause(fn func(self *Controller)) events.Subscription {
	return c.On(EventPause, func(args ...any) { fn(args[0].(*Controller)) })
}

func (c *Controller) OnStop(fn func(self *Controller)) events.Subscription {
	return c.On(EventStop, func(args ...any) { fn(args[0].(*Controller)) })
}

// OnPlayback fires periodically while playing with the position and duration in milliseconds.
func (c *Controller) OnPlayback(fn func(positionMS, durationMS int, self *Controller)) events.Subscription {
	return c.On(EventPlayback, func(args ...any) {
		fn(args[0].(int), args[1].(int), args[2].(*Controller))
	})
}

// OnSoundProgress fires periodically while the file is being downloaded.
func (c *Controller) OnSoundProgress(fn func(bytesLoaded, bytesTotal int, self *Controller)) events.Subscription {
	return c.On(EventSoundProgress, func(args ...any) {
		fn(args[0].(int), args[1].(int), args[2].(*Controller))
	})
}

// OnSoundError receives the engine's error text verbatim.
func (c *Controller) OnSoundError(fn func(text string, self *Controller)) events.Subscription {
	return c.On(EventSoundError, func(args ...any) {
		fn(args[0].(string), args[1].(*Controller))
	})
}

func (c *Controller) OnSongComplete(fn func(self *Controller)) events.Subscription {
	return c.On(EventSongComplete, func(args ...any) { fn(args[0].(*Controller)) })
}

// OnID3 fires when the tags of the loaded file become available.
func (c *Controller) OnID3(fn func(data map[string]any, self *Controller)) events.Subscription {
	return c.On(EventID3, func(args ...any) {
		fn(args[0].(map[string]any), args[1].(*Controller))
	})
}
