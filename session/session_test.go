package session

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/config"
	"github.com/hydra-cli/hydra/deeplink"
	"github.com/hydra-cli/hydra/discover"
	"github.com/hydra-cli/hydra/filesystem"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/playback"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	_ = config.Setup()
	viper.Set(key.SearchDebounceMs, 20)
}

// pointAt redirects the catalog client at a test server for the duration of a test.
func pointAt(server *httptest.Server) func() {
	previous := viper.GetString(key.CatalogBaseURL)
	viper.Set(key.CatalogBaseURL, server.URL)
	return func() {
		viper.Set(key.CatalogBaseURL, previous)
		server.Close()
	}
}

// catalogStub serves a movie, a series with episodes and credits, and
// browse/search pages.
func catalogStub() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/titles/tt0111161":
			fmt.Fprint(w, `{"title": {"id": "tt0111161", "type": "movie", "primaryTitle": "The Shawshank Redemption", "startYear": 1994, "primaryImage": {"url": "https://img/1.jpg"}}}`)
		case "/titles/tt0903747":
			fmt.Fprint(w, `{"title": {"id": "tt0903747", "type": "tvSeries", "primaryTitle": "Breaking Bad", "startYear": 2008, "primaryImage": {"url": "https://img/2.jpg"}}}`)
		case "/titles/tt0903747/episodes":
			fmt.Fprint(w, `{"episodes": [{"id": "tt0959621", "season": 1, "episodeNumber": 1, "title": "Pilot"}, {"id": "tt0959622", "season": 1, "episodeNumber": 2, "title": "Cat's in the Bag..."}]}`)
		case "/titles/tt0903747/credits", "/titles/tt0111161/credits":
			fmt.Fprint(w, `{"credits": [{"category": "actor", "name": {"id": "nm1", "displayName": "Somebody"}}]}`)
		case "/titles":
			fmt.Fprint(w, `{"titles": [{"id": "tt0903747", "type": "tvSeries", "primaryTitle": "Breaking Bad", "startYear": 2008, "primaryImage": {"url": "https://img/2.jpg"}}], "nextPageToken": "p2"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newEngine() (*Engine, *deeplink.Recorder) {
	recorder := &deeplink.Recorder{}
	start, _ := url.Parse("https://example.org/")
	return New(start, recorder), recorder
}

func TestSelection(t *testing.T) {
	Convey("Given an engine over a stubbed catalog", t, func() {
		server := httptest.NewServer(catalogStub())
		defer pointAt(server)()

		e, recorder := newEngine()
		series := catalog.Title{ID: "tt0903747", Kind: catalog.KindSeries, PrimaryTitle: "Breaking Bad"}
		movie := catalog.Title{ID: "tt0111161", Kind: catalog.KindMovie, PrimaryTitle: "The Shawshank Redemption"}

		Convey("Selecting a series aggregates its episodes and credits", func() {
			e.SelectTitle(series)

			So(e.Selected().MustGet().ID, ShouldEqual, series.ID)
			So(e.Coordinate().IsAbsent(), ShouldBeTrue)
			So(e.Episodes(), ShouldHaveLength, 2)
			So(e.Credits(), ShouldHaveLength, 1)

			Convey("And the URL write is a push carrying the title", func() {
				So(recorder.Pushed, ShouldHaveLength, 1)
				So(recorder.Pushed[0].Query().Get("title"), ShouldEqual, series.ID)
				So(recorder.Pushed[0].Query().Has("s"), ShouldBeFalse)
			})

			Convey("And selecting an episode replaces the URL in place", func() {
				e.SelectEpisode(catalog.Coordinate{Season: 1, Episode: 2})

				So(e.Coordinate().MustGet(), ShouldResemble, catalog.Coordinate{Season: 1, Episode: 2})
				So(recorder.Pushed, ShouldHaveLength, 1)
				So(recorder.Replaced, ShouldHaveLength, 1)
				So(recorder.Replaced[0].Query().Get("e"), ShouldEqual, "2")
			})
		})

		Convey("Selecting an episode while a movie is selected is ignored", func() {
			e.SelectTitle(movie)
			e.SelectEpisode(catalog.Coordinate{Season: 1, Episode: 2})

			So(e.Coordinate().IsAbsent(), ShouldBeTrue)
		})

		Convey("Going home clears every axis and writes a bare URL", func() {
			e.SelectTitle(series)
			e.SelectEpisode(catalog.Coordinate{Season: 1, Episode: 1})
			e.GoHome()

			So(e.Selected().IsAbsent(), ShouldBeTrue)
			So(e.Coordinate().IsAbsent(), ShouldBeTrue)
			So(e.Episodes(), ShouldBeEmpty)

			last := recorder.Pushed[len(recorder.Pushed)-1]
			So(last.Query().Has("title"), ShouldBeFalse)
		})
	})
}

func TestHydration(t *testing.T) {
	Convey("Given an engine over a stubbed catalog", t, func() {
		server := httptest.NewServer(catalogStub())
		defer pointAt(server)()

		e, _ := newEngine()

		Convey("A series deep link adopts title and coordinate", func() {
			u, _ := url.Parse("https://example.org/?title=tt0903747&s=1&e=2")
			e.Hydrate(u)

			So(e.Selected().MustGet().IsSeries(), ShouldBeTrue)
			So(e.Coordinate().MustGet(), ShouldResemble, catalog.Coordinate{Season: 1, Episode: 2})

			Convey("And re-processing the same URL is a no-op", func() {
				before := e.Selected()
				e.Hydrate(u)
				So(e.Selected(), ShouldResemble, before)
			})
		})

		Convey("A movie deep link with a coordinate drops the coordinate", func() {
			u, _ := url.Parse("https://example.org/?title=tt0111161&s=1&e=2")
			e.Hydrate(u)

			So(e.Selected().MustGet().ID, ShouldEqual, "tt0111161")
			So(e.Coordinate().IsAbsent(), ShouldBeTrue)
		})

		Convey("A failed lookup leaves the selection empty and flags the error", func() {
			u, _ := url.Parse("https://example.org/?title=tt9999999")
			e.Hydrate(u)

			So(e.Selected().IsAbsent(), ShouldBeTrue)
			So(e.Errors().Lookup, ShouldNotBeNil)
		})

		Convey("A URL without a title clears the selection", func() {
			u, _ := url.Parse("https://example.org/?title=tt0111161")
			e.Hydrate(u)
			So(e.Selected().IsPresent(), ShouldBeTrue)

			bare, _ := url.Parse("https://example.org/")
			e.Hydrate(bare)
			So(e.Selected().IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestSearchDebounce(t *testing.T) {
	Convey("Given an engine with a short quiet period", t, func() {
		var (
			mu      sync.Mutex
			queries []string
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if q := r.URL.Query().Get("query"); q != "" {
				mu.Lock()
				queries = append(queries, q)
				mu.Unlock()
				fmt.Fprintf(w, `{"titles": [{"id": "tt0113277", "type": "movie", "primaryTitle": "Heat", "startYear": 1995, "primaryImage": {"url": "https://img/3.jpg"}}]}`)
				return
			}
			fmt.Fprint(w, `{"titles": []}`)
		}))
		defer pointAt(server)()

		e, _ := newEngine()

		Convey("Only input that survives the quiet period reaches the network", func() {
			e.Search("h")
			e.Search("he")
			e.Search("heat")

			time.Sleep(200 * time.Millisecond)

			mu.Lock()
			defer mu.Unlock()
			So(queries, ShouldResemble, []string{"heat"})
			So(e.Filters().Query, ShouldEqual, "heat")
			So(e.Titles(), ShouldHaveLength, 1)
		})
	})
}

func TestSearchRefinement(t *testing.T) {
	Convey("Given an engine with a fetched search result set", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("query") != "" {
				fmt.Fprint(w, `{"titles": [
					{"id": "tt1", "type": "movie", "primaryTitle": "Old Gem", "startYear": 1998, "primaryImage": {"url": "https://img/1.jpg"}, "rating": {"aggregateRating": 8.2, "voteCount": 9000}},
					{"id": "tt2", "type": "movie", "primaryTitle": "Fresh Flop", "startYear": 2024, "primaryImage": {"url": "https://img/2.jpg"}, "rating": {"aggregateRating": 5.4, "voteCount": 9000}},
					{"id": "tt3", "type": "movie", "primaryTitle": "Recent Hit", "startYear": 2021, "primaryImage": {"url": "https://img/3.jpg"}, "rating": {"aggregateRating": 7.8, "voteCount": 9000}}
				]}`)
				return
			}
			fmt.Fprint(w, `{"titles": [{"id": "tt4", "type": "movie", "primaryTitle": "Browse Pick", "startYear": 2019, "primaryImage": {"url": "https://img/4.jpg"}}]}`)
		}))
		defer pointAt(server)()

		e, _ := newEngine()
		f := e.Filters()
		f.Query = "flopgemhit"
		e.ApplyFilters(f)

		ids := func() []string {
			out := make([]string, 0)
			for _, title := range e.Titles() {
				out = append(out, title.ID)
			}
			return out
		}

		Convey("The default refinement orders newest first", func() {
			So(ids(), ShouldResemble, []string{"tt2", "tt3", "tt1"})
		})

		Convey("Thresholds narrow the set without refetching", func() {
			r := e.Refinement()
			r.MinYear = 2000
			r.MinRating = 7.0
			e.Refine(r)

			So(ids(), ShouldResemble, []string{"tt3"})

			Convey("And relaxing them restores the full set", func() {
				e.Refine(discover.NewRefinement())
				So(ids(), ShouldHaveLength, 3)
			})
		})

		Convey("Reordering by rating changes only the view", func() {
			r := e.Refinement()
			r.Order = discover.RefineRatingHigh
			e.Refine(r)

			So(ids(), ShouldResemble, []string{"tt1", "tt3", "tt2"})
		})

		Convey("Browse mode ignores the refinement", func() {
			r := e.Refinement()
			r.MinYear = 2100
			e.Refine(r)

			g := discover.NewFilters()
			g.Genre = mo.Some("Drama")
			e.ApplyFilters(g)

			So(e.Titles(), ShouldNotBeEmpty)
		})
	})
}

func TestBrowse(t *testing.T) {
	Convey("Given an engine over a stubbed catalog", t, func() {
		server := httptest.NewServer(catalogStub())
		defer pointAt(server)()

		e, _ := newEngine()

		Convey("Applying filters loads page zero", func() {
			f := discover.NewFilters()
			f.Genre = mo.Some("Drama")
			titles := e.ApplyFilters(f)

			So(titles, ShouldHaveLength, 1)
			So(e.HasMore(), ShouldBeTrue)
			So(e.Errors().Browse, ShouldBeNil)

			Convey("And the selection survives a filter change", func() {
				e.SelectTitle(titles[0])

				g := discover.NewFilters()
				g.Genre = mo.Some("Crime")
				e.ApplyFilters(g)

				So(e.Selected().IsPresent(), ShouldBeTrue)
			})

			Convey("But a full reset clears it", func() {
				e.SelectTitle(titles[0])
				e.ResetFilters()

				So(e.Selected().IsAbsent(), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unavailable catalog", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer pointAt(server)()

		e, _ := newEngine()

		Convey("Browsing degrades to an empty list with an error flag", func() {
			f := discover.NewFilters()
			f.Genre = mo.Some("Horror")
			titles := e.ApplyFilters(f)

			So(titles, ShouldBeEmpty)
			So(e.Errors().Browse, ShouldNotBeNil)
		})
	})
}

func TestPlaybackIntegration(t *testing.T) {
	Convey("Given a selected series", t, func() {
		server := httptest.NewServer(catalogStub())
		defer pointAt(server)()

		e, _ := newEngine()
		e.SelectTitle(catalog.Title{ID: "tt0903747", Kind: catalog.KindSeries, PrimaryTitle: "Breaking Bad"})

		Convey("The embed key changes when the provider changes", func() {
			before := e.EmbedKey().MustGet()
			So(e.SetProvider(playback.ProviderVidfast), ShouldBeNil)
			So(e.EmbedKey().MustGet(), ShouldNotEqual, before)
		})

		Convey("The embed URL follows the episode coordinate", func() {
			e.SelectEpisode(catalog.Coordinate{Season: 1, Episode: 2})
			So(e.Provider(), ShouldNotBeEmpty)
			So(e.EmbedURL().MustGet(), ShouldContainSubstring, "/tt0903747/1/2")
		})
	})

	Convey("Given no selection", t, func() {
		e, _ := newEngine()

		Convey("No embed target resolves", func() {
			So(e.EmbedURL().IsAbsent(), ShouldBeTrue)
			So(e.EmbedKey().IsAbsent(), ShouldBeTrue)
		})
	})
}
