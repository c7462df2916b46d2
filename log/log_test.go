package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moos-cli/moos/filesystem"
	"github.com/moos-cli/moos/key"
	"github.com/moos-cli/moos/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logs are disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		viper.Set(key.PlaybackDebug, false)
		So(Setup(), ShouldBeNil)

		Convey("No sink is available", func() {
			So(Enabled(), ShouldBeFalse)
			So(Sink("playback"), ShouldBeNil)
		})
	})

	Convey("Given logs are enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Today's file is created", func() {
			name := time.Now().Format("2006-01-02") + ".log"
			exists, err := filesystem.API().Exists(filepath.Join(where.Logs(), name))
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("A tagged sink is returned", func() {
			So(Sink("playback"), ShouldNotBeNil)
		})
	})

	Convey("Given only playback debugging is enabled", t, func() {
		viper.Set(key.LogsWrite, false)
		viper.Set(key.PlaybackDebug, true)
		defer viper.Set(key.PlaybackDebug, false)
		So(Setup(), ShouldBeNil)

		Convey("The playback sink is available", func() {
			So(Enabled(), ShouldBeTrue)
			So(Sink("playback"), ShouldNotBeNil)
		})
	})
}
