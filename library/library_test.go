package library

import (
	"testing"

	"github.com/moos-cli/moos/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func init() {
	filesystem.SetMemMapFs()
}

func writeFiles(paths ...string) {
	for _, p := range paths {
		if err := afero.WriteFile(filesystem.API(), p, []byte("ID3"), 0o644); err != nil {
			panic(err)
		}
	}
}

func TestScan(t *testing.T) {
	Convey("Given a music directory", t, func() {
		writeFiles(
			"/music/b-side.mp3",
			"/music/album/Intro.MP3",
			"/music/album/cover.jpg",
			"/music/.trash/deleted.mp3",
			"/music/notes.txt",
		)

		Convey("Only files with a wanted extension are found", func() {
			files, err := Scan("/music", []string{".mp3"})
			So(err, ShouldBeNil)
			So(files, ShouldResemble, []string{"/music/album/Intro.MP3", "/music/b-side.mp3"})
		})

		Convey("Several extensions can be wanted", func() {
			files, err := Scan("/music", []string{".mp3", ".txt"})
			So(err, ShouldBeNil)
			So(files, ShouldHaveLength, 3)
		})

		Convey("A missing directory is an error", func() {
			_, err := Scan("/nowhere", []string{".mp3"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMatch(t *testing.T) {
	Convey("Given some files", t, func() {
		files := []string{
			"/music/Daft Punk - One More Time.mp3",
			"/music/Daft Punk - Digital Love.mp3",
			"/music/Moby - Porcelain.mp3",
		}

		Convey("The closest name wins", func() {
			So(Match("digital", files).MustGet(), ShouldEqual, files[1])
			So(Match("porcelain", files).MustGet(), ShouldEqual, files[2])
		})

		Convey("Case is ignored", func() {
			So(Match("MOBY", files).MustGet(), ShouldEqual, files[2])
		})

		Convey("No match is absent", func() {
			So(Match("zzz", files).IsAbsent(), ShouldBeTrue)
		})

		Convey("Filter keeps every match", func() {
			So(Filter("daft", files), ShouldResemble, files[:2])
		})
	})
}

func TestRecent(t *testing.T) {
	Convey("Given some played files", t, func() {
		So(Remember("/music/a.mp3"), ShouldBeNil)
		So(Remember("/music/b.mp3"), ShouldBeNil)
		So(Remember("/music/b.mp3"), ShouldBeNil)

		Convey("The most played comes first", func() {
			recent := Recent("")
			So(len(recent), ShouldBeGreaterThanOrEqualTo, 2)
			So(recent[0], ShouldEqual, "/music/b.mp3")
		})

		Convey("They can be filtered", func() {
			So(Recent("a.mp3"), ShouldContain, "/music/a.mp3")
			So(Recent("a.mp3"), ShouldNotContain, "/music/b.mp3")
		})
	})
}
