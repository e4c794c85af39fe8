package discover

import (
	"testing"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func refinable() []catalog.Title {
	rated := func(id string, year int, rating float64) catalog.Title {
		return catalog.Title{
			ID:        id,
			StartYear: year,
			Rating:    mo.Some(catalog.Rating{Aggregate: rating, Votes: 5000}),
		}
	}

	return []catalog.Title{
		rated("tt1", 1999, 8.7),
		rated("tt2", 2020, 6.1),
		{ID: "tt3", StartYear: 2010},
		{ID: "tt4", Rating: mo.Some(catalog.Rating{Aggregate: 7.4, Votes: 5000})},
	}
}

func refinedIDs(r Refinement, titles []catalog.Title) []string {
	ids := make([]string, 0)
	for _, title := range r.Apply(titles) {
		ids = append(ids, title.ID)
	}
	return ids
}

func TestRefinement(t *testing.T) {
	Convey("Given a fetched result set", t, func() {
		titles := refinable()

		Convey("The neutral refinement only reorders, newest first", func() {
			So(refinedIDs(NewRefinement(), titles), ShouldResemble, []string{"tt2", "tt3", "tt1", "tt4"})
		})

		Convey("A year threshold drops older records but keeps yearless ones", func() {
			r := NewRefinement()
			r.MinYear = 2005
			So(refinedIDs(r, titles), ShouldResemble, []string{"tt2", "tt3", "tt4"})
		})

		Convey("A rating threshold drops low records but keeps unrated ones", func() {
			r := NewRefinement()
			r.MinRating = 7.0
			So(refinedIDs(r, titles), ShouldResemble, []string{"tt3", "tt1", "tt4"})
		})

		Convey("Ordering by rating treats unrated records as zero", func() {
			r := NewRefinement()
			r.Order = RefineRatingHigh
			So(refinedIDs(r, titles), ShouldResemble, []string{"tt1", "tt4", "tt2", "tt3"})

			r.Order = RefineRatingLow
			So(refinedIDs(r, titles), ShouldResemble, []string{"tt3", "tt2", "tt4", "tt1"})
		})

		Convey("The input order is never mutated", func() {
			_ = NewRefinement().Apply(titles)
			So(titles[0].ID, ShouldEqual, "tt1")
		})
	})
}

func TestRefineOrder(t *testing.T) {
	Convey("Given ordering names", t, func() {
		Convey("Known names parse", func() {
			order, ok := ParseRefineOrder("rating-high")
			So(ok, ShouldBeTrue)
			So(order, ShouldEqual, RefineRatingHigh)
		})

		Convey("Unknown names fail closed", func() {
			_, ok := ParseRefineOrder("chronological")
			So(ok, ShouldBeFalse)
		})

		Convey("Cycling wraps through every ordering", func() {
			order := RefineNewest
			seen := []RefineOrder{order}
			for i := 0; i < 3; i++ {
				order = order.Next()
				seen = append(seen, order)
			}
			So(seen, ShouldResemble, []RefineOrder{RefineNewest, RefineOldest, RefineRatingHigh, RefineRatingLow})
			So(order.Next(), ShouldEqual, RefineNewest)
		})
	})
}
