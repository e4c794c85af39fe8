package deeplink

import (
	"net/url"
	"testing"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func mustParse(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func TestEncodeDecode(t *testing.T) {
	Convey("Given a selection with an episode coordinate", t, func() {
		selection := Selection{
			TitleID:    "tt0903747",
			Coordinate: mo.Some(catalog.Coordinate{Season: 2, Episode: 5}),
		}

		Convey("Encoding then decoding yields the same selection", func() {
			u := Encode(mustParse("https://example.org/"), selection)
			So(Decode(u), ShouldResemble, selection)
		})
	})

	Convey("Given a selection without a coordinate", t, func() {
		selection := Selection{
			TitleID:    "tt0111161",
			Coordinate: mo.None[catalog.Coordinate](),
		}

		Convey("The round-trip drops nothing and invents nothing", func() {
			u := Encode(mustParse("https://example.org/"), selection)
			So(u.Query().Has(ParamSeason), ShouldBeFalse)
			So(u.Query().Has(ParamEpisode), ShouldBeFalse)
			So(Decode(u), ShouldResemble, selection)
		})
	})

	Convey("Given a URL with parameters outside the contract", t, func() {
		base := mustParse("https://example.org/?theme=dark&title=tt1&s=1&e=1")

		Convey("Encoding preserves the foreign parameters", func() {
			u := Encode(base, Selection{TitleID: "tt2"})
			So(u.Query().Get("theme"), ShouldEqual, "dark")
			So(u.Query().Get(ParamTitle), ShouldEqual, "tt2")
		})

		Convey("Clearing the selection removes only contract parameters", func() {
			u := Encode(base, Selection{})
			So(u.Query().Get("theme"), ShouldEqual, "dark")
			So(u.Query().Has(ParamTitle), ShouldBeFalse)
			So(u.Query().Has(ParamSeason), ShouldBeFalse)
			So(u.Query().Has(ParamEpisode), ShouldBeFalse)
		})
	})

	Convey("Given malformed coordinate parameters", t, func() {
		Convey("Non-numeric values are ignored", func() {
			selection := Decode(mustParse("https://example.org/?title=tt1&s=finale&e=2"))
			So(selection.TitleID, ShouldEqual, "tt1")
			So(selection.Coordinate.IsAbsent(), ShouldBeTrue)
		})

		Convey("Non-positive values are ignored", func() {
			selection := Decode(mustParse("https://example.org/?title=tt1&s=0&e=2"))
			So(selection.Coordinate.IsAbsent(), ShouldBeTrue)
		})

		Convey("A coordinate without a title is ignored", func() {
			selection := Decode(mustParse("https://example.org/?s=1&e=2"))
			So(selection.Empty(), ShouldBeTrue)
			So(selection.Coordinate.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestSynchronizer(t *testing.T) {
	Convey("Given a synchronizer over a recorder", t, func() {
		recorder := &Recorder{}
		s := NewSynchronizer(mustParse("https://example.org/"), recorder)

		Convey("A title pick pushes a history entry", func() {
			s.Write(Selection{TitleID: "tt1"}, Push)
			So(recorder.Pushed, ShouldHaveLength, 1)
			So(recorder.Pushed[0].Query().Get(ParamTitle), ShouldEqual, "tt1")
		})

		Convey("An episode change replaces instead of pushing", func() {
			s.Write(Selection{TitleID: "tt1"}, Push)
			s.Write(Selection{
				TitleID:    "tt1",
				Coordinate: mo.Some(catalog.Coordinate{Season: 1, Episode: 2}),
			}, Replace)

			So(recorder.Pushed, ShouldHaveLength, 1)
			So(recorder.Replaced, ShouldHaveLength, 1)
			So(recorder.Replaced[0].Query().Get(ParamEpisode), ShouldEqual, "2")
		})

		Convey("Writing the selection the URL already encodes is a no-op", func() {
			s.Write(Selection{TitleID: "tt1"}, Push)
			s.Write(Selection{TitleID: "tt1"}, Push)
			So(recorder.Pushed, ShouldHaveLength, 1)
		})

		Convey("Observing an external URL yields its selection", func() {
			selection := s.Observe(mustParse("https://example.org/?title=tt2&s=3&e=4"))
			So(selection.TitleID, ShouldEqual, "tt2")
			So(selection.Coordinate.MustGet(), ShouldResemble, catalog.Coordinate{Season: 3, Episode: 4})
			So(s.Current().Query().Get(ParamTitle), ShouldEqual, "tt2")
		})
	})
}
