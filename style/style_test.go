package style

import (
	"testing"

	"github.com/moos-cli/moos/color"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	Convey("Given the style renderers", t, func() {
		Convey("They share one signature", func() {
			renderers := []func(string) string{
				Fg(color.Purple), Faint, Bold, Title, ErrorTitle,
			}
			for _, render := range renderers {
				So(render("moos"), ShouldContainSubstring, "moos")
			}
		})

		Convey("Status keeps the word", func() {
			So(Status("Playing", true), ShouldContainSubstring, "Playing")
			So(Status("Error", false), ShouldContainSubstring, "Error")
			So(Status("Paused", false), ShouldContainSubstring, "Paused")
		})
	})
}
