package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/discover"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty result list", func() {
			var buf bytes.Buffer
			opts := &Options{Query: "test", Json: true}
			err := writeJson(&buf, nil, opts)
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}

func TestRefineTitles(t *testing.T) {
	titles := []*catalog.Title{
		{ID: "tt1", PrimaryTitle: "Old Favourite", StartYear: 1994, Rating: mo.Some(catalog.Rating{Aggregate: 9.0})},
		{ID: "tt2", PrimaryTitle: "Recent Flop", StartYear: 2023, Rating: mo.Some(catalog.Rating{Aggregate: 4.2})},
		{ID: "tt3", PrimaryTitle: "Recent Hit", StartYear: 2021, Rating: mo.Some(catalog.Rating{Aggregate: 8.1})},
	}

	ids := func(titles []*catalog.Title) []string {
		out := make([]string, len(titles))
		for i, title := range titles {
			out[i] = title.ID
		}
		return out
	}

	Convey("refineTitles", t, func() {
		Convey("Without a refinement the results pass through untouched", func() {
			So(refineTitles(titles, mo.None[discover.Refinement]()), ShouldResemble, titles)
		})

		Convey("Thresholds and ordering apply over the pointer slice", func() {
			refinement := discover.NewRefinement()
			refinement.MinYear = 2000
			refinement.Order = discover.RefineRatingHigh

			So(ids(refineTitles(titles, mo.Some(refinement))), ShouldResemble, []string{"tt3", "tt2"})
		})

		Convey("The original slice is left intact", func() {
			refinement := discover.NewRefinement()
			refinement.MinRating = 8.5

			_ = refineTitles(titles, mo.Some(refinement))
			So(ids(titles), ShouldResemble, []string{"tt1", "tt2", "tt3"})
		})
	})
}

func TestParseTitlePicker(t *testing.T) {
	titles := []*catalog.Title{
		{ID: "tt1", PrimaryTitle: "Heat"},
		{ID: "tt2", PrimaryTitle: "Heat 2"},
		{ID: "tt3", PrimaryTitle: "The Heat"},
	}

	Convey("ParseTitlePicker", t, func() {
		Convey("first and last pick the boundary entries", func() {
			first, err := ParseTitlePicker("first", "")
			So(err, ShouldBeNil)
			So(first(titles).ID, ShouldEqual, "tt1")

			last, err := ParseTitlePicker("last", "")
			So(err, ShouldBeNil)
			So(last(titles).ID, ShouldEqual, "tt3")
		})

		Convey("exact matches by name or id", func() {
			exact, err := ParseTitlePicker("exact", "Heat 2")
			So(err, ShouldBeNil)
			So(exact(titles).ID, ShouldEqual, "tt2")

			byID, err := ParseTitlePicker("exact", "tt3")
			So(err, ShouldBeNil)
			So(byID(titles).ID, ShouldEqual, "tt3")
		})

		Convey("closest picks by edit distance", func() {
			closest, err := ParseTitlePicker("closest", "heat 2")
			So(err, ShouldBeNil)
			So(closest(titles).ID, ShouldEqual, "tt2")
		})

		Convey("index clamps to the available range", func() {
			picker, err := ParseTitlePicker("index", "99")
			So(err, ShouldBeNil)
			So(picker(titles).ID, ShouldEqual, "tt3")
		})

		Convey("unknown kinds fail", func() {
			_, err := ParseTitlePicker("psychic", "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseEpisodesFilter(t *testing.T) {
	episodes := []catalog.Episode{
		{Season: 1, Number: 1, Title: "Pilot"},
		{Season: 1, Number: 2, Title: "The Second One"},
		{Season: 2, Number: 1, Title: "Season Premiere"},
	}

	Convey("ParseEpisodesFilter", t, func() {
		Convey("first, last, and all behave as named", func() {
			first, _ := ParseEpisodesFilter("first")
			got, err := first(episodes)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].Title, ShouldEqual, "Pilot")

			all, _ := ParseEpisodesFilter("all")
			got, err = all(episodes)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 3)
		})

		Convey("ranges slice by position", func() {
			filter, err := ParseEpisodesFilter("0-1")
			So(err, ShouldBeNil)
			got, err := filter(episodes)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 2)
		})

		Convey("substrings match case-insensitively", func() {
			filter, err := ParseEpisodesFilter("@premiere@")
			So(err, ShouldBeNil)
			got, err := filter(episodes)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].Season, ShouldEqual, 2)
		})

		Convey("garbage fails", func() {
			_, err := ParseEpisodesFilter("every other one")
			So(err, ShouldNotBeNil)
		})
	})
}
