package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackendSwitching(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Convey("Switches to the in-memory implementation", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")

			Convey("And writes stay isolated from the host", func() {
				So(API().WriteFile("/probe", []byte("x"), 0644), ShouldBeNil)
				exists, err := API().Exists("/probe")
				So(err, ShouldBeNil)
				So(exists, ShouldBeTrue)
			})
		})

		Convey("Switches back to the OS implementation", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")

			// leave tests on the in-memory backend
			SetMemMapFs()
		})
	})
}
