package discover

import (
	"errors"
	"sync"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/log"
	"github.com/samber/lo"
)

var (
	// ErrInFlight reports that a page fetch for the current query is
	// already running. The caller should simply wait for it.
	ErrInFlight = errors.New("page fetch already in flight")

	// ErrStale reports that a response arrived after the filter set had
	// already changed and was discarded.
	ErrStale = errors.New("stale response discarded")
)

// Paginator issues paginated catalog fetches for one filter set at a time
// and owns the resulting page cache. Changing the filter set discards every
// loaded page and restarts at page zero.
//
// Responses carry the query generation they were dispatched under; a
// response whose generation no longer matches is discarded on arrival
// rather than merged into the now-stale page list.
type Paginator struct {
	mu         sync.Mutex
	filters    Filters
	generation uint64
	pages      [][]catalog.Title
	seen       map[string]struct{}
	nextToken  string
	hasMore    bool
	inFlight   bool
}

// NewPaginator returns a paginator over the default filter set.
func NewPaginator() *Paginator {
	p := &Paginator{filters: NewFilters()}
	p.resetLocked()
	return p
}

// Apply replaces the filter set. A filter set with the same identity as the
// current one is a no-op; otherwise the page cache is invalidated wholesale.
func (p *Paginator) Apply(f Filters) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if f.Identity() == p.filters.Identity() {
		return
	}

	log.Info("Filters changed, discarding loaded pages")
	p.filters = f
	p.generation++
	p.resetLocked()
}

func (p *Paginator) resetLocked() {
	p.pages = nil
	p.seen = make(map[string]struct{})
	p.nextToken = ""
	p.hasMore = false
	p.inFlight = false
}

// Filters returns the current filter set.
func (p *Paginator) Filters() Filters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// HasMore reports whether the most recently loaded page carried a
// continuation token.
func (p *Paginator) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Titles returns every admitted title across all loaded pages, in order.
func (p *Paginator) Titles() []catalog.Title {
	p.mu.Lock()
	defer p.mu.Unlock()
	return lo.Flatten(p.pages)
}

// PageCount returns the number of loaded pages.
func (p *Paginator) PageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pages)
}

// admit is the local admission filter. The upstream service's own filters
// are advisory; records without a poster or past the year ceiling are
// rejected here regardless of what the service returned.
func admit(t catalog.Title) bool {
	return t.Poster.IsPresent() && t.StartYear <= catalog.MaxYear
}

// LoadFirst fetches page zero for the current filter set, replacing any
// loaded pages. In search mode the result is a single non-paginated set.
func (p *Paginator) LoadFirst() ([]catalog.Title, error) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return nil, ErrInFlight
	}
	p.inFlight = true
	generation := p.generation
	filters := p.filters
	p.mu.Unlock()

	var (
		titles []catalog.Title
		token  string
		err    error
	)

	if filters.Searching() {
		var results []*catalog.Title
		results, err = catalog.SearchTitles(filters.Query)
		titles = lo.Map(results, func(t *catalog.Title, _ int) catalog.Title { return *t })
	} else {
		var page catalog.TitlePage
		page, err = catalog.ListTitles(Compose(filters), "")
		titles = page.Titles
		token = page.NextToken
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// A stale completion must not release the guard: the filter change
	// already reset it, and a replacement fetch may hold it right now.
	if generation != p.generation {
		log.Info("Discarding response dispatched under stale filters")
		return nil, ErrStale
	}
	p.inFlight = false

	if err != nil {
		return nil, err
	}

	p.pages = nil
	p.seen = make(map[string]struct{})
	admitted := p.acceptLocked(titles)
	p.nextToken = token
	p.hasMore = token != "" && !filters.Searching()

	return admitted, nil
}

// LoadNext fetches the page after the most recently loaded one. When no
// further pages exist this is a no-op, not an error. A call while another
// fetch is in flight is rejected so the same page is never appended twice.
func (p *Paginator) LoadNext() ([]catalog.Title, error) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return nil, ErrInFlight
	}
	if !p.hasMore {
		p.mu.Unlock()
		return nil, nil
	}
	p.inFlight = true
	generation := p.generation
	filters := p.filters
	token := p.nextToken
	p.mu.Unlock()

	page, err := catalog.ListTitles(Compose(filters), token)

	p.mu.Lock()
	defer p.mu.Unlock()

	if generation != p.generation {
		log.Info("Discarding response dispatched under stale filters")
		return nil, ErrStale
	}
	p.inFlight = false

	if err != nil {
		return nil, err
	}

	admitted := p.acceptLocked(page.Titles)
	p.nextToken = page.NextToken
	p.hasMore = page.NextToken != ""

	return admitted, nil
}

// acceptLocked applies the admission filter and de-duplicates against every
// title already in the page cache, then appends the survivors as a new page.
func (p *Paginator) acceptLocked(titles []catalog.Title) []catalog.Title {
	admitted := make([]catalog.Title, 0, len(titles))
	for _, title := range titles {
		if !admit(title) {
			continue
		}
		if _, dup := p.seen[title.ID]; dup {
			continue
		}
		p.seen[title.ID] = struct{}{}
		admitted = append(admitted, title)
	}

	p.pages = append(p.pages, admitted)
	return admitted
}
