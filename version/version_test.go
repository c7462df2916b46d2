package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Versions are compared component by component", t, func() {
		cases := []struct {
			a, b string
			want int
		}{
			{"0.3.1", "0.3.1", 0},
			{"v0.4.0", "0.3.9", 1},
			{"0.3.1", "1.0.0", -1},
			{"0.10.0", "0.9.0", 1},
			{"0.4.0-rc.1", "0.4.0", -1},
			{"0.4.0", "v0.4.0-rc.2", 1},
			{"0.4.0-rc.2", "0.4.0-rc.1", 1},
		}

		for _, c := range cases {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}
	})

	Convey("Malformed versions are rejected", t, func() {
		_, err := Compare("latest", "0.3.1")
		So(err, ShouldNotBeNil)

		_, err = Compare("0.3", "0.3.1")
		So(err, ShouldNotBeNil)
	})
}

func TestFetch(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		Convey("The tag is returned without its prefix", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"tag_name":"v0.4.2"}`))
			}))
			defer srv.Close()

			v, err := fetch(srv.URL)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "0.4.2")
		})

		Convey("An empty tag is an error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			_, err := fetch(srv.URL)
			So(err, ShouldNotBeNil)
		})

		Convey("A failing endpoint is an error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
			defer srv.Close()

			_, err := fetch(srv.URL)
			So(err, ShouldNotBeNil)
		})
	})
}
