package catalog

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseKind(t *testing.T) {
	Convey("Given kind strings in both wire forms", t, func() {
		Convey("Camel case forms parse", func() {
			kind, ok := ParseKind("movie")
			So(ok, ShouldBeTrue)
			So(kind, ShouldEqual, KindMovie)

			kind, ok = ParseKind("tvSeries")
			So(ok, ShouldBeTrue)
			So(kind, ShouldEqual, KindSeries)
		})

		Convey("Screaming forms parse to the same kinds", func() {
			kind, ok := ParseKind("MOVIE")
			So(ok, ShouldBeTrue)
			So(kind, ShouldEqual, KindMovie)

			kind, ok = ParseKind("TV_SERIES")
			So(ok, ShouldBeTrue)
			So(kind, ShouldEqual, KindSeries)
		})

		Convey("Unknown forms fail closed", func() {
			_, ok := ParseKind("hologram")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestIsSeries(t *testing.T) {
	Convey("Given titles of different kinds", t, func() {
		Convey("Only tvSeries titles are series", func() {
			So(Title{Kind: KindSeries}.IsSeries(), ShouldBeTrue)
			So(Title{Kind: KindMovie}.IsSeries(), ShouldBeFalse)
			So(Title{Kind: KindMiniSeries}.IsSeries(), ShouldBeFalse)
			So(Title{Kind: KindTVMovie}.IsSeries(), ShouldBeFalse)
		})
	})
}

func TestCoordinate(t *testing.T) {
	Convey("Given an episode coordinate", t, func() {
		c := Coordinate{Season: 2, Episode: 7}

		Convey("It formats as SxEy", func() {
			So(c.String(), ShouldEqual, "S2E7")
		})
	})
}

func TestEpisodeCoordinate(t *testing.T) {
	Convey("Given an episode value", t, func() {
		episode := Episode{Season: 1, Number: 3, Title: "Pilot"}

		Convey("Its coordinate derives from season and number", func() {
			So(episode.Coordinate(), ShouldResemble, Coordinate{Season: 1, Episode: 3})

			// usable as a method expression for keying
			key := Episode.Coordinate
			So(key(episode), ShouldResemble, episode.Coordinate())
		})

		Convey("It renders the coordinate before the name", func() {
			So(episode.String(), ShouldEqual, "S1E3 Pilot")
			So(Episode{Season: 2, Number: 1}.String(), ShouldEqual, "S2E1")
		})
	})
}

func TestCreditKey(t *testing.T) {
	Convey("Given credits", t, func() {
		Convey("The key combines category and person id", func() {
			c := Credit{Category: "actor", Person: Person{ID: "nm0000151"}}
			So(c.Key(), ShouldResemble, CreditKey{Category: "actor", PersonID: "nm0000151"})
		})

		Convey("A missing category defaults to other", func() {
			c := Credit{Person: Person{ID: "nm0000151"}}
			So(c.Key().Category, ShouldEqual, "other")
		})
	})
}
