package mpv

import (
	"testing"
	"time"

	"github.com/moos-cli/moos/engine"
	. "github.com/smartystreets/goconvey/convey"
)

func testParams(autoPlay bool) engine.Params {
	return engine.Params{
		ID:        "moosSwf",
		Container: "/tmp",
		Vars:      engine.Vars{Instance: "moos", AutoPlay: autoPlay},
	}
}

func TestSocketPath(t *testing.T) {
	Convey("The socket is named after the instance and the engine id", t, func() {
		So(SocketPath(testParams(false)), ShouldEqual, "/tmp/moos-moosSwf.sock")
	})
}

func TestCommands(t *testing.T) {
	Convey("Given an engine connected to mpv", t, func() {
		fake := newFakeMPV()
		defer fake.Close()
		e := newEngine(testParams(false), newRecorder(), fake.path)

		Convey("When a file is loaded without autoplay", func() {
			So(e.Load("song.mp3"), ShouldBeNil)

			Convey("Then mpv is paused before the file is replaced", func() {
				So(fake.Commands(), ShouldResemble, [][]any{
					{"set_property", "pause", true},
					{"loadfile", "song.mp3", "replace"},
				})
			})

			Convey("And the load stays pending until mpv settles it", func() {
				So(e.loading.Load(), ShouldEqual, 1)
			})
		})

		Convey("When mpv rejects the load", func() {
			fake.fail("loadfile", "invalid parameter")
			So(e.Load("song.mp3"), ShouldNotBeNil)

			Convey("Then nothing is left pending", func() {
				So(e.loading.Load(), ShouldEqual, 0)
			})
		})

		Convey("When playback is controlled", func() {
			So(e.Play(), ShouldBeNil)
			So(e.Pause(), ShouldBeNil)
			So(e.Stop(), ShouldBeNil)
			So(e.Seek(1500), ShouldBeNil)
			So(e.SetVolume(80), ShouldBeNil)

			Convey("Then each maps to one mpv command", func() {
				So(fake.Commands(), ShouldResemble, [][]any{
					{"set_property", "pause", false},
					{"set_property", "pause", true},
					{"stop"},
					{"seek", 1.5, "absolute"},
					{"set_property", "volume", float64(80)},
				})
			})
		})

		Convey("When properties are queried", func() {
			fake.set("volume", 55.0)
			fake.set("time-pos", 65.0)
			fake.set("duration", 3661.0)
			fake.set("stream-pos", 512.0)
			fake.set("file-size", 1024.0)

			Convey("Then times are reported in milliseconds", func() {
				pos, err := e.Position()
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, 65000)

				dur, err := e.Duration()
				So(err, ShouldBeNil)
				So(dur, ShouldEqual, 3661000)
			})

			Convey("Then volume and bytes are reported as they are", func() {
				v, _ := e.Volume()
				So(v, ShouldEqual, 55)
				loaded, _ := e.BytesLoaded()
				So(loaded, ShouldEqual, 512)
				total, _ := e.BytesTotal()
				So(total, ShouldEqual, 1024)
			})

			Convey("Then download progress is a percentage", func() {
				p, err := e.DownloadProgress()
				So(err, ShouldBeNil)
				So(p, ShouldEqual, 50)
			})
		})

		Convey("When the file size is unknown", func() {
			fake.set("stream-pos", 512.0)

			Convey("Then download progress is zero", func() {
				p, err := e.DownloadProgress()
				So(err, ShouldBeNil)
				So(p, ShouldEqual, 0)
			})
		})
	})
}

func TestHandle(t *testing.T) {
	Convey("Given an engine owned by a recorder", t, func() {
		rec := newRecorder()
		e := newEngine(testParams(true), rec, "")

		Convey("When a file is loaded and played to the end", func() {
			e.handle(event{Event: "file-loaded"})
			e.handle(event{Event: "end-file", Reason: "eof"})

			Convey("Then play started and completion are reported", func() {
				So(rec.drain(), ShouldResemble, []string{"PlayStarted", "PlaybackComplete"})
			})
		})

		Convey("When pause changes with nothing loaded", func() {
			e.handle(event{Event: "property-change", Name: "pause", Data: true})

			Convey("Then nothing is reported, and loading stays silent", func() {
				So(rec.drain(), ShouldBeEmpty)
				e.handle(event{Event: "file-loaded"})
				So(rec.drain(), ShouldBeEmpty)
			})
		})

		Convey("When pause changes while a file is loaded", func() {
			e.handle(event{Event: "file-loaded"})
			e.handle(event{Event: "property-change", Name: "pause", Data: true})
			e.handle(event{Event: "property-change", Name: "pause", Data: true})
			e.handle(event{Event: "property-change", Name: "pause", Data: false})

			Convey("Then only actual changes are reported", func() {
				So(rec.drain(), ShouldResemble, []string{"PlayStarted", "Paused", "PlayStarted"})
			})
		})

		Convey("When playback is stopped", func() {
			e.handle(event{Event: "file-loaded"})
			e.handle(event{Event: "end-file", Reason: "stop"})

			Convey("Then stop is reported", func() {
				So(rec.drain(), ShouldResemble, []string{"PlayStarted", "Stopped"})
			})
		})

		Convey("When a file fails to load", func() {
			e.handle(event{Event: "end-file", Reason: "error", FileError: "unrecognized file format"})
			e.handle(event{Event: "property-change", Name: "idle-active", Data: true})
			e.handle(event{Event: "property-change", Name: "idle-active", Data: true})

			Convey("Then the error text is reported and the engine becomes ready again once", func() {
				So(rec.drain(), ShouldResemble, []string{"LoadError", "LoadComplete"})
				So(rec.errText, ShouldEqual, "unrecognized file format")
			})
		})

		Convey("When mpv goes idle without a failed load", func() {
			e.handle(event{Event: "property-change", Name: "idle-active", Data: true})

			Convey("Then readiness is not signalled again", func() {
				So(rec.drain(), ShouldBeEmpty)
			})
		})

		Convey("When a loaded file is replaced by another", func() {
			e.handle(event{Event: "file-loaded"})
			e.loading.Add(1)
			e.handle(event{Event: "end-file", Reason: "stop"})
			e.handle(event{Event: "file-loaded"})

			Convey("Then the replaced file does not report a stop", func() {
				So(rec.drain(), ShouldResemble, []string{"PlayStarted", "PlayStarted"})
				So(e.loading.Load(), ShouldEqual, 0)
			})

			Convey("And a later stop is reported", func() {
				rec.drain()
				e.handle(event{Event: "end-file", Reason: "stop"})
				So(rec.drain(), ShouldResemble, []string{"Stopped"})
			})
		})

		Convey("When a replacing file fails to load", func() {
			e.handle(event{Event: "file-loaded"})
			e.loading.Add(1)
			e.handle(event{Event: "end-file", Reason: "stop"})
			e.handle(event{Event: "end-file", Reason: "error", FileError: "loading failed"})

			Convey("Then only the error is reported", func() {
				So(rec.drain(), ShouldResemble, []string{"PlayStarted", "LoadError"})
			})
		})

		Convey("When a file is stopped before it loads", func() {
			e.loading.Add(1)
			e.handle(event{Event: "end-file", Reason: "stop"})

			Convey("Then stop is reported and the load is settled", func() {
				So(rec.drain(), ShouldResemble, []string{"Stopped"})
				So(e.loading.Load(), ShouldEqual, 0)
			})
		})

		Convey("When metadata changes", func() {
			e.handle(event{Event: "property-change", Name: "metadata", Data: map[string]any{"title": "Song"}})
			e.handle(event{Event: "property-change", Name: "metadata", Data: nil})

			Convey("Then tags are forwarded", func() {
				So(rec.drain(), ShouldResemble, []string{"MetadataAvailable"})
				So(rec.metadata, ShouldResemble, map[string]any{"title": "Song"})
			})
		})
	})
}

func TestListen(t *testing.T) {
	Convey("Given mpv sending events before the observer replies", t, func() {
		fake := newFakeMPV()
		defer fake.Close()
		fake.noise = `{"event":"file-loaded"}`

		l, err := listen(fake.path)
		So(err, ShouldBeNil)
		defer l.Close()

		Convey("Then those events are still delivered", func() {
			select {
			case ev := <-l.Events():
				So(ev.Event, ShouldEqual, "file-loaded")
			case <-time.After(time.Second):
				So("no event", ShouldBeEmpty)
			}
		})
	})

	Convey("Given mpv rejecting an observer", t, func() {
		fake := newFakeMPV()
		defer fake.Close()
		fake.fail("observe_property", "invalid parameter")

		_, err := listen(fake.path)

		Convey("Then listening fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid parameter")
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given an engine waiting for mpv", t, func() {
		fake := newFakeMPV()
		defer fake.Close()
		rec := newRecorder()
		e := newEngine(testParams(true), rec, fake.path)
		go e.run()
		defer e.Close()

		Convey("It becomes ready once the socket accepts connections", func() {
			So(rec.waitFor("LoadComplete", 2*time.Second), ShouldBeTrue)

			Convey("And events are delivered as callbacks", func() {
				fake.set("time-pos", 1.0)
				fake.set("duration", 2.0)
				fake.emit(`{"event":"file-loaded"}`)
				So(rec.waitFor("PlayStarted", 2*time.Second), ShouldBeTrue)
				So(rec.waitFor("PlaybackTick", 2*time.Second), ShouldBeTrue)

				rec.mu.Lock()
				tick := rec.tick
				rec.mu.Unlock()
				So(tick, ShouldEqual, [2]int{1000, 2000})

				fake.emit(`{"event":"end-file","reason":"eof"}`)
				So(rec.waitFor("PlaybackComplete", 2*time.Second), ShouldBeTrue)
			})

			Convey("And every observer was acknowledged first", func() {
				var observedNames []any
				for _, cmd := range fake.Commands() {
					if cmd[0] == "observe_property" {
						observedNames = append(observedNames, cmd[2])
					}
				}
				So(observedNames, ShouldResemble, []any{"pause", "metadata", "idle-active"})
			})
		})
	})

	Convey("Given an engine whose socket never appears", t, func() {
		rec := newRecorder()
		e := newEngine(testParams(false), rec, "/nonexistent/moos.sock")
		close(e.exited)
		e.run()

		Convey("Then a load error is reported", func() {
			So(rec.drain(), ShouldResemble, []string{"LoadError"})
			So(rec.errText, ShouldContainSubstring, "exited")
		})
	})
}
