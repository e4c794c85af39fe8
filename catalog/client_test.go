package catalog

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/hydra-cli/hydra/config"
	"github.com/hydra-cli/hydra/filesystem"
	"github.com/hydra-cli/hydra/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	_ = config.Setup()
}

// pointAt redirects the client at a test server for the duration of a test.
func pointAt(server *httptest.Server) func() {
	previous := viper.GetString(key.CatalogBaseURL)
	viper.Set(key.CatalogBaseURL, server.URL)
	return func() {
		viper.Set(key.CatalogBaseURL, previous)
		server.Close()
	}
}

func TestListTitles(t *testing.T) {
	Convey("Given a catalog serving a page of titles", t, func() {
		var gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.URL.Query().Get("pageToken")
			_, _ = w.Write([]byte(`{
				"titles": [{"id": "tt0111161", "type": "movie", "primaryTitle": "The Shawshank Redemption"}],
				"nextPageToken": "page2"
			}`))
		}))
		defer pointAt(server)()

		Convey("The first page is requested without a token", func() {
			page, err := ListTitles(url.Values{"types": {"MOVIE"}}, "")
			So(err, ShouldBeNil)
			So(gotToken, ShouldBeEmpty)
			So(page.Titles, ShouldHaveLength, 1)
			So(page.NextToken, ShouldEqual, "page2")
		})

		Convey("A follow-up page carries its token", func() {
			_, err := ListTitles(url.Values{}, "page2")
			So(err, ShouldBeNil)
			So(gotToken, ShouldEqual, "page2")
		})
	})

	Convey("Given a catalog returning an error", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer pointAt(server)()

		Convey("The error is surfaced", func() {
			_, err := ListTitles(url.Values{}, "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestGetByID(t *testing.T) {
	Convey("Given a catalog where only the query-parameter route works", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/titles" || r.URL.Query().Get("id") == "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{"titles": [{"id": "tt0903747", "type": "tvSeries", "primaryTitle": "Breaking Bad"}]}`))
		}))
		defer pointAt(server)()

		Convey("The lookup falls through to the working route", func() {
			title, err := GetByID("tt0903747")
			So(err, ShouldBeNil)
			So(title.ID, ShouldEqual, "tt0903747")
			So(title.IsSeries(), ShouldBeTrue)

			Convey("And a repeated lookup is served from cache", func() {
				server.Close()
				cached, err := GetByID("tt0903747")
				So(err, ShouldBeNil)
				So(cached.ID, ShouldEqual, "tt0903747")
			})
		})
	})

	Convey("Given a catalog with no record of the title", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer pointAt(server)()

		Convey("The lookup reports not found", func() {
			_, err := GetByID("tt0000000")
			So(err, ShouldEqual, ErrNotFound)
		})
	})

	Convey("Given a list route that ignores unknown query params", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/titles" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			// a browse page unrelated to the requested id
			_, _ = w.Write([]byte(`{"titles": [{"id": "tt0111161", "type": "movie", "primaryTitle": "The Shawshank Redemption"}]}`))
		}))
		defer pointAt(server)()

		Convey("An unrelated page is not mistaken for the title", func() {
			_, err := GetByID("tt9999999")
			So(err, ShouldEqual, ErrNotFound)
		})
	})
}

func TestEpisodesAndCredits(t *testing.T) {
	Convey("Given a catalog serving episodes and credits", t, func() {
		var gotPageSize string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPageSize = r.URL.Query().Get("pageSize")
			switch r.URL.Path {
			case "/titles/tt0903747/episodes":
				_, _ = w.Write([]byte(`{"episodes": [{"id": "tt0959621", "season": 1, "episodeNumber": 1, "title": "Pilot"}]}`))
			case "/titles/tt0903747/credits":
				_, _ = w.Write([]byte(`{"credits": [{"category": "actor", "name": {"id": "nm0186505", "displayName": "Bryan Cranston"}}], "totalCredits": 1}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer pointAt(server)()

		Convey("Episode pages decode", func() {
			page, err := Episodes("tt0903747", "")
			So(err, ShouldBeNil)
			So(gotPageSize, ShouldEqual, "50")
			So(page.Episodes, ShouldHaveLength, 1)
			So(page.Episodes[0].Coordinate(), ShouldResemble, Coordinate{Season: 1, Episode: 1})
		})

		Convey("Credit pages decode", func() {
			page, err := Credits("tt0903747", "")
			So(err, ShouldBeNil)
			So(gotPageSize, ShouldEqual, "50")
			So(page.Credits, ShouldHaveLength, 1)
			So(page.Total.MustGet(), ShouldEqual, 1)
		})
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a catalog serving current-year titles", t, func() {
		var gotYear string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotYear = r.URL.Query().Get("startYear")
			_, _ = w.Write([]byte(`{"titles": [
				{"id": "tt1", "type": "tvSeries", "primaryTitle": "A Series"},
				{"id": "tt2", "type": "movie", "primaryTitle": "A Movie"},
				{"id": "tt3", "type": "movie", "primaryTitle": "Another Movie"}
			]}`))
		}))
		defer pointAt(server)()

		Convey("Movies are moved to the front", func() {
			latest, err := Latest()
			So(err, ShouldBeNil)
			So(gotYear, ShouldEqual, "2025")
			So(latest, ShouldHaveLength, 3)
			So(latest[0].Kind, ShouldEqual, KindMovie)
			So(latest[1].Kind, ShouldEqual, KindMovie)
			So(latest[2].Kind, ShouldEqual, KindSeries)
		})
	})
}

func TestSearchTitles(t *testing.T) {
	Convey("Given a catalog serving search results", t, func() {
		calls := 0
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			gotQuery = r.URL.Query().Get("query")
			_, _ = w.Write([]byte(`{"titles": [{"id": "tt0903747", "type": "tvSeries", "primaryTitle": "Breaking Bad"}]}`))
		}))
		defer pointAt(server)()

		Convey("A search normalizes its query and returns results", func() {
			titles, err := SearchTitles("  Breaking Bad  ")
			So(err, ShouldBeNil)
			So(gotQuery, ShouldEqual, "breaking bad")
			So(titles, ShouldHaveLength, 1)
			So(titles[0].PrimaryTitle, ShouldEqual, "Breaking Bad")

			Convey("And a repeated search is served from cache", func() {
				before := calls
				titles, err := SearchTitles("breaking bad")
				So(err, ShouldBeNil)
				So(titles, ShouldHaveLength, 1)
				So(calls, ShouldEqual, before)
			})
		})
	})

	Convey("Given a catalog with no match for the query", t, func() {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			_, _ = w.Write([]byte(`{"titles": []}`))
		}))
		defer pointAt(server)()

		Convey("A zero-result search succeeds with no titles", func() {
			titles, err := SearchTitles("zxqj")
			So(err, ShouldBeNil)
			So(titles, ShouldBeEmpty)

			Convey("And the empty result is served from cache", func() {
				before := calls
				titles, err := SearchTitles("zxqj")
				So(err, ShouldBeNil)
				So(titles, ShouldBeEmpty)
				So(calls, ShouldEqual, before)
			})
		})
	})
}
