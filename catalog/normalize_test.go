package catalog

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecodeEpisodePage(t *testing.T) {
	Convey("Given episode payloads with inconsistent season fields", t, func() {
		Convey("A numeric season field is used", func() {
			page, err := decodeEpisodePage([]byte(`{
				"episodes": [{"id": "tt1", "season": 3, "episodeNumber": 4}],
				"nextPageToken": "abc"
			}`))
			So(err, ShouldBeNil)
			So(page.Episodes, ShouldHaveLength, 1)
			So(page.Episodes[0].Season, ShouldEqual, 3)
			So(page.Episodes[0].Number, ShouldEqual, 4)
			So(page.NextToken, ShouldEqual, "abc")
		})

		Convey("A string season field is coerced", func() {
			page, err := decodeEpisodePage([]byte(`{
				"episodes": [{"id": "tt1", "seasonNumber": "5", "episodeNumber": 1}]
			}`))
			So(err, ShouldBeNil)
			So(page.Episodes[0].Season, ShouldEqual, 5)
		})

		Convey("The capitalized field is a last resort", func() {
			page, err := decodeEpisodePage([]byte(`{
				"episodes": [{"id": "tt1", "SeasonNumber": 2, "episodeNumber": 1}]
			}`))
			So(err, ShouldBeNil)
			So(page.Episodes[0].Season, ShouldEqual, 2)
		})

		Convey("A missing season defaults to one", func() {
			page, err := decodeEpisodePage([]byte(`{
				"episodes": [{"id": "tt1", "episodeNumber": 1}]
			}`))
			So(err, ShouldBeNil)
			So(page.Episodes[0].Season, ShouldEqual, 1)
		})

		Convey("An unparseable season defaults to one", func() {
			page, err := decodeEpisodePage([]byte(`{
				"episodes": [{"id": "tt1", "season": "finale", "episodeNumber": 1}]
			}`))
			So(err, ShouldBeNil)
			So(page.Episodes[0].Season, ShouldEqual, 1)
		})
	})
}

func TestDecodeCreditPage(t *testing.T) {
	Convey("Given credit payloads in their historical shapes", t, func() {
		Convey("The credits key is preferred", func() {
			page, err := decodeCreditPage([]byte(`{
				"credits": [{"category": "actor", "name": {"id": "nm1", "displayName": "Tim Robbins"}}],
				"nextPageToken": "t2",
				"totalCredits": 120
			}`))
			So(err, ShouldBeNil)
			So(page.Credits, ShouldHaveLength, 1)
			So(page.Credits[0].Person.DisplayName, ShouldEqual, "Tim Robbins")
			So(page.NextToken, ShouldEqual, "t2")
			So(page.Total.MustGet(), ShouldEqual, 120)
		})

		Convey("The cast key is accepted as a fallback", func() {
			page, err := decodeCreditPage([]byte(`{
				"cast": [{"category": "actor", "name": {"id": "nm2", "displayName": "Morgan Freeman"}}]
			}`))
			So(err, ShouldBeNil)
			So(page.Credits, ShouldHaveLength, 1)
			So(page.Credits[0].Person.ID, ShouldEqual, "nm2")
		})

		Convey("A bare array is accepted", func() {
			page, err := decodeCreditPage([]byte(`[
				{"category": "director", "name": {"id": "nm3", "displayName": "Frank Darabont"}}
			]`))
			So(err, ShouldBeNil)
			So(page.Credits, ShouldHaveLength, 1)
			So(page.Total.IsAbsent(), ShouldBeTrue)
		})

		Convey("The total is read in precedence order", func() {
			page, err := decodeCreditPage([]byte(`{
				"credits": [],
				"count": 7,
				"pagination": {"total": 99}
			}`))
			So(err, ShouldBeNil)
			So(page.Total.MustGet(), ShouldEqual, 7)

			page, err = decodeCreditPage([]byte(`{
				"credits": [],
				"meta": {"total": 33}
			}`))
			So(err, ShouldBeNil)
			So(page.Total.MustGet(), ShouldEqual, 33)
		})

		Convey("A payload without a total yields none", func() {
			page, err := decodeCreditPage([]byte(`{"credits": []}`))
			So(err, ShouldBeNil)
			So(page.Total.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestDecodeTitlePage(t *testing.T) {
	Convey("Given a title page payload", t, func() {
		page, err := decodeTitlePage([]byte(`{
			"titles": [{
				"id": "tt0111161",
				"type": "MOVIE",
				"primaryTitle": "The Shawshank Redemption",
				"startYear": 1994,
				"primaryImage": {"url": "https://img/poster.jpg", "width": 500, "height": 750},
				"rating": {"aggregateRating": 9.3, "voteCount": 2900000}
			}],
			"nextPageToken": "next"
		}`))

		Convey("It normalizes titles and carries the cursor", func() {
			So(err, ShouldBeNil)
			So(page.Titles, ShouldHaveLength, 1)
			So(page.NextToken, ShouldEqual, "next")

			title := page.Titles[0]
			So(title.Kind, ShouldEqual, KindMovie)
			So(title.Poster.MustGet().URL, ShouldEqual, "https://img/poster.jpg")
			So(title.Rating.MustGet().Votes, ShouldEqual, 2900000)
		})
	})

	Convey("Given a title with no poster or rating", t, func() {
		page, err := decodeTitlePage([]byte(`{
			"titles": [{"id": "tt1", "type": "movie", "primaryTitle": "Obscure"}]
		}`))

		Convey("The optional fields are absent", func() {
			So(err, ShouldBeNil)
			So(page.Titles[0].Poster.IsAbsent(), ShouldBeTrue)
			So(page.Titles[0].Rating.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestDecodeInterests(t *testing.T) {
	Convey("Given interest payloads in both shapes", t, func() {
		Convey("A wrapped object of strings decodes", func() {
			interests, err := decodeInterests([]byte(`{"interests": ["Drama", "Crime"]}`))
			So(err, ShouldBeNil)
			So(interests, ShouldResemble, []string{"Crime", "Drama"})
		})

		Convey("A bare array of objects decodes", func() {
			interests, err := decodeInterests([]byte(`[
				{"name": "Drama"},
				{"title": "Crime"},
				{"id": "thriller"}
			]`))
			So(err, ShouldBeNil)
			So(interests, ShouldResemble, []string{"Crime", "Drama", "thriller"})
		})

		Convey("Duplicates and blanks are dropped", func() {
			interests, err := decodeInterests([]byte(`{"interests": ["Drama", "Drama", "  ", "Crime"]}`))
			So(err, ShouldBeNil)
			So(interests, ShouldResemble, []string{"Crime", "Drama"})
		})
	})
}

func TestDecodeSingleTitle(t *testing.T) {
	Convey("Given single-title lookup payloads", t, func() {
		Convey("A wrapped title object decodes", func() {
			title, ok := decodeSingleTitle([]byte(`{"title": {"id": "tt1", "type": "movie"}}`), "tt1")
			So(ok, ShouldBeTrue)
			So(title.ID, ShouldEqual, "tt1")
		})

		Convey("A wrapped titles array yields the requested element", func() {
			title, ok := decodeSingleTitle([]byte(`{"titles": [{"id": "tt2"}, {"id": "tt3"}]}`), "tt3")
			So(ok, ShouldBeTrue)
			So(title.ID, ShouldEqual, "tt3")
		})

		Convey("A bare title object decodes", func() {
			title, ok := decodeSingleTitle([]byte(`{"id": "tt4", "type": "tvSeries"}`), "tt4")
			So(ok, ShouldBeTrue)
			So(title.ID, ShouldEqual, "tt4")
			So(title.Kind, ShouldEqual, KindSeries)
		})

		Convey("A payload for a different title is rejected", func() {
			_, ok := decodeSingleTitle([]byte(`{"title": {"id": "tt1", "type": "movie"}}`), "tt9")
			So(ok, ShouldBeFalse)

			_, ok = decodeSingleTitle([]byte(`{"titles": [{"id": "tt2"}, {"id": "tt3"}]}`), "tt9")
			So(ok, ShouldBeFalse)
		})

		Convey("An empty payload is rejected", func() {
			_, ok := decodeSingleTitle([]byte(`{}`), "tt1")
			So(ok, ShouldBeFalse)
		})
	})
}
