package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moos-cli/moos/engine/enginetest"
	"github.com/moos-cli/moos/filesystem"
	"github.com/moos-cli/moos/key"
	"github.com/moos-cli/moos/playback"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestBubble() (*statefulBubble, *enginetest.Engine) {
	fake := enginetest.New()
	c, err := playback.New(playback.Options{Engine: playback.EngineOptions{Renderer: fake.Renderer()}})
	if err != nil {
		panic(err)
	}

	b := newBubble(&Options{Controller: c, File: "/music/Daft Punk - Digital Love.mp3", Volume: 50})
	b.resize(80, 24)
	return b, fake
}

func TestBridge(t *testing.T) {
	Convey("Given a bridged controller", t, func() {
		fake := enginetest.New()
		c, err := playback.New(playback.Options{Engine: playback.EngineOptions{Renderer: fake.Renderer()}})
		So(err, ShouldBeNil)

		var msgs []tea.Msg
		subs := bridge(c, func(msg tea.Msg) { msgs = append(msgs, msg) })
		So(subs, ShouldHaveLength, len(playback.EventNames))

		Convey("Engine callbacks become messages", func() {
			fake.Owner.LoadComplete()
			fake.Owner.PlayStarted()
			fake.Owner.PlaybackTick(1000, 2000)
			fake.Owner.DownloadTick(5, 10)
			fake.Owner.LoadError("boom")

			So(msgs, ShouldResemble, []tea.Msg{
				readyMsg{},
				playMsg{},
				tickMsg{position: 1000, duration: 2000},
				downloadMsg{loaded: 5, total: 10},
				soundErrorMsg("boom"),
			})
		})
	})
}

func TestPlayer(t *testing.T) {
	Convey("Given a player waiting for the engine", t, func() {
		b, fake := newTestBubble()
		So(b.state, ShouldEqual, loadingState)
		So(b.View(), ShouldContainSubstring, "Loading")

		Convey("Keys other than quit are ignored while loading", func() {
			b.Update(runes(" "))
			So(fake.Calls(), ShouldBeEmpty)
		})

		Convey("When the engine becomes ready", func() {
			fake.Owner.LoadComplete()
			b.Update(readyMsg{})

			Convey("Then the volume is applied and the file loaded", func() {
				So(b.state, ShouldEqual, playerState)
				So(fake.Methods(), ShouldResemble, []string{"SetVolume", "Load"})
				So(fake.Calls()[1].Args, ShouldResemble, []any{"/music/Daft Punk - Digital Love.mp3"})
			})

			Convey("Then the file name is shown until tags arrive", func() {
				So(b.View(), ShouldContainSubstring, "Daft Punk - Digital Love")

				viper.Set(key.TUIShowMetadata, true)
				b.Update(metadataMsg{"title": "Digital Love", "artist": "Daft Punk", "album": "Discovery"})
				view := b.View()
				So(view, ShouldContainSubstring, "Digital Love")
				So(view, ShouldContainSubstring, "Discovery")
			})

			Convey("Then space toggles playback", func() {
				fake.Reset()
				b.Update(runes(" "))
				b.Update(playMsg{})
				b.Update(runes(" "))
				So(fake.Methods(), ShouldResemble, []string{"Play", "Pause"})
			})

			Convey("Then seeking is bounded by the duration", func() {
				b.Update(tickMsg{position: 8000, duration: 10000})
				fake.Reset()

				b.Update(tea.KeyMsg{Type: tea.KeyRight})
				b.Update(tea.KeyMsg{Type: tea.KeyLeft})
				So(fake.Calls(), ShouldResemble, []enginetest.Call{
					{Method: "Seek", Args: []any{10000}},
					{Method: "Seek", Args: []any{5000}},
				})
			})

			Convey("Then the volume changes in steps", func() {
				fake.Reset()
				b.Update(tea.KeyMsg{Type: tea.KeyUp})
				So(fake.Calls(), ShouldResemble, []enginetest.Call{{Method: "SetVolume", Args: []any{55}}})
				So(b.volume, ShouldEqual, 55)
			})

			Convey("Then ticks move the progress and times", func() {
				b.Update(tickMsg{position: 65000, duration: 130000})
				So(b.percent(), ShouldEqual, 0.5)
				So(b.View(), ShouldContainSubstring, "00:01:05 / 00:02:10")
			})

			Convey("Then a sound error is shown", func() {
				b.Update(soundErrorMsg("File not found"))
				So(b.state, ShouldEqual, errorState)
				So(b.View(), ShouldContainSubstring, "File not found")
			})

			Convey("Then a finished song can be replayed", func() {
				b.Update(completeMsg{})
				So(b.finished, ShouldBeTrue)

				fake.Reset()
				b.Update(runes("r"))
				So(fake.Methods(), ShouldResemble, []string{"Load", "Play"})
			})
		})
	})
}

func TestTags(t *testing.T) {
	Convey("Tags are looked up by any alias ignoring case", t, func() {
		metadata := map[string]any{"ARTIST": "Moby", "TIT2": "Porcelain", "empty": ""}

		So(title(metadata, "fallback"), ShouldEqual, "Porcelain")
		So(title(map[string]any{}, "fallback"), ShouldEqual, "fallback")
		So(tag(metadata, "artist").MustGet(), ShouldEqual, "Moby")
		So(tag(metadata, "empty").IsAbsent(), ShouldBeTrue)
		So(renderTags(metadata, 80), ShouldHaveLength, 1)
	})
}
