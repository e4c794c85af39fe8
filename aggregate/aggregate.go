// Package aggregate drives bounded fetch-all loops over paginated catalog
// sub-resources, merging every page into one de-duplicated sequence.
package aggregate

import (
	"errors"
	"sync"

	"github.com/hydra-cli/hydra/log"
)

// ErrInFlight reports that a run over the same aggregate is already in
// progress. The caller should simply wait for it.
var ErrInFlight = errors.New("aggregate run already in flight")

const (
	// EpisodePageCeiling caps how many episode pages one run may fetch.
	EpisodePageCeiling = 20

	// CreditPageCeiling caps how many credit pages one run may fetch.
	CreditPageCeiling = 50
)

// FetchPage fetches one page of records for the given continuation token.
// An empty token requests the first page; an empty returned token means no
// further pages exist.
type FetchPage[T any] func(token string) (records []T, next string, err error)

// Aggregate accumulates records across pages, de-duplicated by key. A run
// resumes from the last known continuation token, so incremental "load
// more" never refetches page zero.
//
// The page ceiling exists because upstream pagination has shipped tokens
// that never resolve to empty; hitting the ceiling ends the run with
// partial data as a success, never an error.
type Aggregate[T any, K comparable] struct {
	fetch   FetchPage[T]
	key     func(T) K
	ceiling int

	mu       sync.Mutex
	records  []T
	seen     map[K]struct{}
	next     string
	started  bool
	done     bool
	partial  bool
	inFlight bool
}

// New returns an aggregate over the given fetch function, keyed for
// de-duplication and bounded by the page ceiling.
func New[T any, K comparable](fetch FetchPage[T], key func(T) K, ceiling int) *Aggregate[T, K] {
	return &Aggregate[T, K]{
		fetch:   fetch,
		key:     key,
		ceiling: ceiling,
		seen:    make(map[K]struct{}),
	}
}

// Run fetches pages from the last known token until the token is empty or
// the page ceiling is reached, and returns every record gathered so far.
func (a *Aggregate[T, K]) Run() ([]T, error) {
	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return nil, ErrInFlight
	}
	if a.done {
		defer a.mu.Unlock()
		return a.snapshotLocked(), nil
	}
	a.inFlight = true
	token := a.next
	started := a.started
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.inFlight = false
		a.mu.Unlock()
	}()

	for fetched := 0; fetched < a.ceiling; fetched++ {
		if started && token == "" {
			break
		}

		records, next, err := a.fetch(token)
		if err != nil {
			a.mu.Lock()
			defer a.mu.Unlock()
			return a.snapshotLocked(), err
		}

		a.mu.Lock()
		a.merge(records)
		a.next = next
		a.started = true
		a.mu.Unlock()

		if next == "" {
			a.mu.Lock()
			a.done = true
			a.mu.Unlock()
			break
		}

		started = true
		token = next
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.done && a.next != "" {
		log.Infof("Page ceiling of %d reached, returning partial data", a.ceiling)
		a.partial = true
		a.done = true
	}

	return a.snapshotLocked(), nil
}

// LoadMore resumes the run from the last known token. It exists for
// aggregates that stopped at the ceiling; a completed aggregate returns
// its records unchanged.
func (a *Aggregate[T, K]) LoadMore() ([]T, error) {
	a.mu.Lock()
	if a.partial && a.next != "" {
		// Re-arm so Run continues from where the ceiling cut it off.
		a.done = false
		a.partial = false
	}
	a.mu.Unlock()

	return a.Run()
}

// merge folds a page into the aggregate, dropping records whose key was
// already seen. Merging an already-merged page changes nothing.
func (a *Aggregate[T, K]) merge(records []T) {
	for _, record := range records {
		k := a.key(record)
		if _, dup := a.seen[k]; dup {
			continue
		}
		a.seen[k] = struct{}{}
		a.records = append(a.records, record)
	}
}

func (a *Aggregate[T, K]) snapshotLocked() []T {
	out := make([]T, len(a.records))
	copy(out, a.records)
	return out
}

// Records returns every record gathered so far.
func (a *Aggregate[T, K]) Records() []T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Partial reports whether the run stopped at the page ceiling with pages
// still unread.
func (a *Aggregate[T, K]) Partial() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.partial
}

// Done reports whether the run has terminated, completely or at the ceiling.
func (a *Aggregate[T, K]) Done() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}
