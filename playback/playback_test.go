package playback

import (
	"testing"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEmbedURL(t *testing.T) {
	movie := catalog.Title{ID: "tt0111161", Kind: catalog.KindMovie}
	series := catalog.Title{ID: "tt0903747", Kind: catalog.KindSeries}
	coordinate := mo.Some(catalog.Coordinate{Season: 1, Episode: 2})
	none := mo.None[catalog.Coordinate]()

	Convey("Given a movie title", t, func() {
		Convey("Every provider yields a movie-shaped URL with no episode segment", func() {
			So(EmbedURL(movie, none, ProviderVidsrc), ShouldEqual,
				"https://vidsrc.to/embed/movie/tt0111161")
			So(EmbedURL(movie, none, ProviderVidfast), ShouldEqual,
				"https://vidfast.pro/movie/tt0111161?autoPlay=true&title=false&poster=false")
		})

		Convey("A stray coordinate on a movie is ignored", func() {
			So(EmbedURL(movie, coordinate, ProviderVidsrc), ShouldEqual,
				"https://vidsrc.to/embed/movie/tt0111161")
		})
	})

	Convey("Given a series title with a coordinate", t, func() {
		Convey("Providers yield their series-shaped URLs", func() {
			So(EmbedURL(series, coordinate, ProviderVidsrc), ShouldEqual,
				"https://vidsrc.to/embed/tv/tt0903747/1/2")
			So(EmbedURL(series, coordinate, ProviderVidfast), ShouldEqual,
				"https://vidfast.pro/tv/tt0903747/1/2?autoPlay=true&title=false&poster=false&nextButton=true&autoNext=true")
		})
	})

	Convey("Given a series title without a coordinate", t, func() {
		Convey("Resolution falls back to the movie-shaped URL", func() {
			So(EmbedURL(series, none, ProviderVidsrc), ShouldEqual,
				"https://vidsrc.to/embed/movie/tt0903747")
		})
	})
}

func TestEmbedKey(t *testing.T) {
	Convey("Given player instances", t, func() {
		coordinate := mo.Some(catalog.Coordinate{Season: 1, Episode: 2})

		Convey("The key changes with provider, title, and coordinate", func() {
			base := EmbedKey(ProviderVidsrc, "tt1", coordinate)
			So(base, ShouldEqual, "vidsrc-tt1-1-2")
			So(EmbedKey(ProviderVidfast, "tt1", coordinate), ShouldNotEqual, base)
			So(EmbedKey(ProviderVidsrc, "tt2", coordinate), ShouldNotEqual, base)
			So(EmbedKey(ProviderVidsrc, "tt1", mo.None[catalog.Coordinate]()), ShouldNotEqual, base)
		})
	})
}

func TestParseProvider(t *testing.T) {
	Convey("Given provider names", t, func() {
		Convey("Known names parse", func() {
			provider, ok := ParseProvider("vidfast")
			So(ok, ShouldBeTrue)
			So(provider, ShouldEqual, ProviderVidfast)
		})

		Convey("Unknown names fail closed", func() {
			_, ok := ParseProvider("megastream")
			So(ok, ShouldBeFalse)
		})
	})
}
