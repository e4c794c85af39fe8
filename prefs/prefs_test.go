package prefs

import (
	"testing"

	"github.com/hydra-cli/hydra/config"
	"github.com/hydra-cli/hydra/filesystem"
	"github.com/hydra-cli/hydra/playback"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	_ = config.Setup()
}

func TestProvider(t *testing.T) {
	Convey("Given no persisted preference", t, func() {
		Convey("The configured default is used", func() {
			So(Provider(), ShouldEqual, playback.ProviderVidsrc)
		})
	})

	Convey("Given a persisted preference", t, func() {
		So(SetProvider(playback.ProviderVidfast), ShouldBeNil)

		Convey("It is restored", func() {
			So(Provider(), ShouldEqual, playback.ProviderVidfast)
		})

		Convey("An invalid saved value falls back to the default", func() {
			So(cacher.Set(&data{Provider: "megastream"}), ShouldBeNil)
			So(Provider(), ShouldEqual, playback.ProviderVidsrc)
		})
	})
}
