package config

import (
	"testing"

	"github.com/moos-cli/moos/constant"
	"github.com/moos-cli/moos/filesystem"
	"github.com/moos-cli/moos/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
			So(viper.GetString(key.EngineURL), ShouldEqual, constant.EngineExecutable)
			So(viper.GetInt(key.PlaybackVolume), ShouldEqual, 100)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("playback.autoplay"), ShouldEqual, "playback_autoplay")
		})

		Convey("Environment variables override defaults", func() {
			t.Setenv("MOOS_PLAYBACK_AUTOPLAY", "true")
			So(Setup(), ShouldBeNil)
			So(viper.GetBool(key.PlaybackAutoPlay), ShouldBeTrue)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		So(Setup(), ShouldBeNil)
		field := Default[key.PlaybackVolume]

		Convey("Its environment variable is prefixed", func() {
			So(field.Env(), ShouldEqual, "MOOS_PLAYBACK_VOLUME")
		})

		Convey("Its type is named", func() {
			So(field.TypeName(), ShouldEqual, "int")
			extensions := Default[key.LibraryExtensions]
			So(extensions.TypeName(), ShouldEqual, "[]string")
		})

		Convey("It is marshalled with its current and default value", func() {
			data, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"key":"playback.volume"`)
			So(string(data), ShouldContainSubstring, `"default":100`)
		})

		Convey("It is pretty printed with its key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.PlaybackVolume)
		})
	})
}

func TestPlaybackOptions(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Controller options follow it", func() {
			o := PlaybackOptions()
			So(o.Engine.ID, ShouldEqual, constant.EngineID)
			So(o.Engine.URL, ShouldEqual, constant.EngineExecutable)
			So(o.Engine.Container, ShouldBeEmpty)
			So(o.Instance, ShouldEqual, constant.EngineInstance)
			So(o.AutoPlay, ShouldBeFalse)
		})

		Convey("Overrides are picked up", func() {
			viper.Set(key.PlaybackDebug, true)
			defer viper.Set(key.PlaybackDebug, false)
			So(PlaybackOptions().Debug, ShouldBeTrue)
		})
	})
}
