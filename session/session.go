// Package session holds the single source of truth for the user's current
// selection and coordinates every component that observes or mutates it.
package session

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hydra-cli/hydra/aggregate"
	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/deeplink"
	"github.com/hydra-cli/hydra/discover"
	"github.com/hydra-cli/hydra/history"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/log"
	"github.com/hydra-cli/hydra/playback"
	"github.com/hydra-cli/hydra/prefs"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Errors carries the per-area error flags exposed to the view layer.
// A failure degrades its area to an empty result, never a crash.
type Errors struct {
	Browse   error
	Lookup   error
	Episodes error
	Credits  error
}

// Engine is the session state store. All mutation goes through its named
// transitions; the view layer only ever reads.
type Engine struct {
	mu sync.Mutex

	paginator *discover.Paginator
	sync      *deeplink.Synchronizer

	selected   mo.Option[catalog.Title]
	coordinate mo.Option[catalog.Coordinate]
	refinement discover.Refinement

	episodes *aggregate.Episodes
	credits  *aggregate.Credits

	provider playback.Provider
	errs     Errors

	searchGeneration uint64

	events *Notifier
}

// New returns an engine hydrated from the given URL, with the playback
// provider restored from the persisted preference.
func New(start *url.URL, hist deeplink.History) *Engine {
	e := &Engine{
		paginator:  discover.NewPaginator(),
		sync:       deeplink.NewSynchronizer(start, hist),
		provider:   prefs.Provider(),
		refinement: discover.NewRefinement(),
		events:     NewNotifier(),
	}

	e.Hydrate(start)
	return e
}

// Events returns the engine's notification stream.
func (e *Engine) Events() <-chan Event {
	return e.events.C()
}

// Selected returns the currently selected title, if any.
func (e *Engine) Selected() mo.Option[catalog.Title] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Coordinate returns the selected episode coordinate. It is present only
// when the selected title is a series.
func (e *Engine) Coordinate() mo.Option[catalog.Coordinate] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.coordinate
}

// Titles returns the admitted titles of every loaded page. In search
// mode the active refinement is applied over the fetched set.
func (e *Engine) Titles() []catalog.Title {
	titles := e.paginator.Titles()
	if !e.paginator.Filters().Searching() {
		return titles
	}

	e.mu.Lock()
	refinement := e.refinement
	e.mu.Unlock()
	return refinement.Apply(titles)
}

// Refinement returns the client-side refinement applied to search results.
func (e *Engine) Refinement() discover.Refinement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refinement
}

// Refine replaces the search-result refinement. The fetched set is
// untouched; only the view over it changes.
func (e *Engine) Refine(r discover.Refinement) {
	e.mu.Lock()
	e.refinement = r
	e.mu.Unlock()
	e.events.Notify(Event{Kind: EventTitles})
}

// HasMore reports whether another page of titles can be loaded.
func (e *Engine) HasMore() bool {
	return e.paginator.HasMore()
}

// Filters returns the active filter set.
func (e *Engine) Filters() discover.Filters {
	return e.paginator.Filters()
}

// Errors returns the current per-area error flags.
func (e *Engine) Errors() Errors {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errs
}

// Episodes returns the aggregated episodes of the selected series.
func (e *Engine) Episodes() []catalog.Episode {
	e.mu.Lock()
	episodes := e.episodes
	e.mu.Unlock()

	if episodes == nil {
		return nil
	}
	return episodes.Records()
}

// Credits returns the aggregated credits of the selected title.
func (e *Engine) Credits() []catalog.Credit {
	e.mu.Lock()
	credits := e.credits
	e.mu.Unlock()

	if credits == nil {
		return nil
	}
	return credits.Records()
}

// ApplyFilters replaces the filter set and loads page zero of the new
// query. The selection survives a filter change; only a full reset clears
// it.
func (e *Engine) ApplyFilters(f discover.Filters) []catalog.Title {
	e.paginator.Apply(f)
	return e.loadFirst()
}

// ResetFilters restores the default filter set and clears the selection.
func (e *Engine) ResetFilters() []catalog.Title {
	e.mu.Lock()
	e.selected = mo.None[catalog.Title]()
	e.coordinate = mo.None[catalog.Coordinate]()
	e.episodes = nil
	e.credits = nil
	e.mu.Unlock()

	e.sync.Write(deeplink.Selection{}, deeplink.Replace)
	e.paginator.Apply(discover.NewFilters())
	return e.loadFirst()
}

// LoadMore appends the next page of titles. When no page exists or one is
// already being fetched, nothing happens.
func (e *Engine) LoadMore() {
	_, err := e.paginator.LoadNext()
	switch err {
	case nil, discover.ErrInFlight, discover.ErrStale:
		e.setBrowseErr(nil)
	default:
		e.setBrowseErr(err)
	}
	e.events.Notify(Event{Kind: EventTitles})
}

// Search debounces free-text input: only input that stays stable for the
// configured quiet period triggers a fetch, and results for superseded
// input are dropped on arrival.
func (e *Engine) Search(input string) {
	e.mu.Lock()
	e.searchGeneration++
	generation := e.searchGeneration
	e.mu.Unlock()

	input = strings.TrimSpace(input)
	quiet := time.Duration(viper.GetInt(key.SearchDebounceMs)) * time.Millisecond

	time.AfterFunc(quiet, func() {
		e.mu.Lock()
		superseded := generation != e.searchGeneration
		e.mu.Unlock()
		if superseded {
			return
		}

		f := e.paginator.Filters()
		f.Query = input
		e.paginator.Apply(f)
		e.loadFirst()
	})
}

// loadFirst fetches page zero and converts failures into the browse error
// flag with an empty result.
func (e *Engine) loadFirst() []catalog.Title {
	titles, err := e.paginator.LoadFirst()
	switch err {
	case nil:
		e.setBrowseErr(nil)
	case discover.ErrInFlight, discover.ErrStale:
		// Another fetch owns the outcome.
	default:
		log.Error(err)
		e.setBrowseErr(err)
		titles = nil
	}

	e.events.Notify(Event{Kind: EventTitles})
	return titles
}

func (e *Engine) setBrowseErr(err error) {
	e.mu.Lock()
	e.errs.Browse = err
	e.mu.Unlock()
}

// SelectTitle makes the title the current selection, clears any episode
// coordinate, writes the URL as a user navigation, and aggregates the
// title's episodes (for series) and credits concurrently.
func (e *Engine) SelectTitle(title catalog.Title) {
	e.mu.Lock()
	e.selected = mo.Some(title)
	e.coordinate = mo.None[catalog.Coordinate]()
	e.errs.Lookup = nil

	if title.IsSeries() {
		e.episodes = aggregate.NewEpisodes(title.ID)
	} else {
		e.episodes = nil
	}
	e.credits = aggregate.NewCredits(title.ID)
	episodes, credits := e.episodes, e.credits
	e.mu.Unlock()

	e.sync.Write(deeplink.Selection{TitleID: title.ID}, deeplink.Push)
	e.aggregateFor(episodes, credits)
}

// aggregateFor runs the episode and credit aggregates concurrently and
// waits for both to settle.
func (e *Engine) aggregateFor(episodes *aggregate.Episodes, credits *aggregate.Credits) {
	var wg sync.WaitGroup

	if episodes != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := episodes.Run()
			e.mu.Lock()
			if e.episodes == episodes {
				e.errs.Episodes = err
			}
			e.mu.Unlock()
			e.events.Notify(Event{Kind: EventEpisodes, Err: err})
		}()
	}

	if credits != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := credits.Run()
			e.mu.Lock()
			if e.credits == credits {
				e.errs.Credits = err
			}
			e.mu.Unlock()
			e.events.Notify(Event{Kind: EventCredits, Err: err})
		}()
	}

	wg.Wait()
	e.events.Notify(Event{Kind: EventSelection})
}

// SelectEpisode sets the episode coordinate. It is valid only while a
// series is selected; otherwise the call is ignored. The URL's season and
// episode fields are rewritten in place without a new history entry.
func (e *Engine) SelectEpisode(coordinate catalog.Coordinate) {
	e.mu.Lock()
	title, ok := e.selected.Get()
	if !ok || !title.IsSeries() {
		e.mu.Unlock()
		return
	}
	e.coordinate = mo.Some(coordinate)
	e.mu.Unlock()

	e.sync.Write(deeplink.Selection{
		TitleID:    title.ID,
		Coordinate: mo.Some(coordinate),
	}, deeplink.Replace)
	e.events.Notify(Event{Kind: EventSelection})
}

// Hydrate adopts a selection from an externally navigated URL. A title id
// that does not match the current selection is looked up; the episode
// coordinate is adopted only once the looked-up title is confirmed to be a
// series. Re-processing a URL the state already matches is a no-op.
func (e *Engine) Hydrate(u *url.URL) {
	selection := e.sync.Observe(u)

	e.mu.Lock()
	current, hasCurrent := e.selected.Get()
	matches := hasCurrent && current.ID == selection.TitleID &&
		e.coordinate == selection.Coordinate
	e.mu.Unlock()

	if matches {
		return
	}

	if selection.Empty() {
		e.mu.Lock()
		e.selected = mo.None[catalog.Title]()
		e.coordinate = mo.None[catalog.Coordinate]()
		e.episodes = nil
		e.credits = nil
		e.mu.Unlock()
		e.events.Notify(Event{Kind: EventSelection})
		return
	}

	title, err := catalog.GetByID(selection.TitleID)
	if err != nil {
		log.Error(err)
		e.mu.Lock()
		e.errs.Lookup = err
		e.mu.Unlock()
		e.events.Notify(Event{Kind: EventSelection, Err: err})
		return
	}

	e.mu.Lock()
	e.selected = mo.Some(*title)
	e.errs.Lookup = nil
	if title.IsSeries() {
		e.coordinate = selection.Coordinate
		e.episodes = aggregate.NewEpisodes(title.ID)
	} else {
		e.coordinate = mo.None[catalog.Coordinate]()
		e.episodes = nil
	}
	e.credits = aggregate.NewCredits(title.ID)
	episodes, credits := e.episodes, e.credits
	e.mu.Unlock()

	e.aggregateFor(episodes, credits)
}

// GoHome clears the selection and filters and writes a URL with no
// selection parameters.
func (e *Engine) GoHome() {
	e.mu.Lock()
	e.selected = mo.None[catalog.Title]()
	e.coordinate = mo.None[catalog.Coordinate]()
	e.episodes = nil
	e.credits = nil
	e.errs = Errors{}
	e.mu.Unlock()

	e.paginator.Apply(discover.NewFilters())
	e.sync.Write(deeplink.Selection{}, deeplink.Push)
	e.events.Notify(Event{Kind: EventSelection})
}

// Provider returns the active playback provider.
func (e *Engine) Provider() playback.Provider {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.provider
}

// SetProvider switches the playback provider and persists the choice.
// The embed key changes with the provider, so the player surface remounts.
func (e *Engine) SetProvider(provider playback.Provider) error {
	e.mu.Lock()
	e.provider = provider
	e.mu.Unlock()

	e.events.Notify(Event{Kind: EventSelection})
	return prefs.SetProvider(provider)
}

// EmbedURL resolves the player URL for the current selection.
func (e *Engine) EmbedURL() mo.Option[string] {
	e.mu.Lock()
	defer e.mu.Unlock()

	title, ok := e.selected.Get()
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(playback.EmbedURL(title, e.coordinate, e.provider))
}

// EmbedKey identifies the current player instance.
func (e *Engine) EmbedKey() mo.Option[string] {
	e.mu.Lock()
	defer e.mu.Unlock()

	title, ok := e.selected.Get()
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(playback.EmbedKey(e.provider, title.ID, e.coordinate))
}

// Watch resolves the player URL for the current selection and records the
// view in the watch history.
func (e *Engine) Watch() mo.Option[string] {
	embed := e.EmbedURL()
	if embed.IsAbsent() {
		return embed
	}

	e.mu.Lock()
	title := e.selected.MustGet()
	coordinate := e.coordinate
	provider := e.provider
	e.mu.Unlock()

	if err := history.Save(&title, coordinate, provider); err != nil {
		log.Error(err)
	}

	return embed
}
