package deeplink

import (
	"net/url"
	"sync"
)

// Mode selects how a URL write enters navigation history.
type Mode int

const (
	// Push records a new history entry. Used for explicit user-initiated
	// navigations such as picking a title from results.
	Push Mode = iota

	// Replace rewrites the current entry. Used for passive updates such
	// as episode changes, so back/forward history stays usable.
	Replace
)

// History receives URL writes. The caller decides what a history entry
// means; tests and the terminal UI record them, a web shell would forward
// them to the browser.
type History interface {
	Push(u *url.URL)
	Replace(u *url.URL)
}

// Synchronizer keeps one URL in sync with the session's selection.
// Writes are fire-and-forget; reads are idempotent.
type Synchronizer struct {
	mu      sync.Mutex
	history History
	current *url.URL
}

// NewSynchronizer returns a synchronizer starting from the given URL.
func NewSynchronizer(start *url.URL, history History) *Synchronizer {
	copied := *start
	return &Synchronizer{history: history, current: &copied}
}

// Current returns the URL as last written or observed.
func (s *Synchronizer) Current() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *s.current
	return &copied
}

// Write encodes the selection into the current URL and forwards it to
// history with the given mode. Writing a selection the URL already encodes
// is a no-op, so re-processing the same state never spams history.
func (s *Synchronizer) Write(selection Selection, mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Encode(s.current, selection)
	if next.String() == s.current.String() {
		return
	}

	s.current = next
	switch mode {
	case Push:
		s.history.Push(next)
	case Replace:
		s.history.Replace(next)
	}
}

// Observe adopts an externally navigated URL and returns the selection it
// encodes.
func (s *Synchronizer) Observe(u *url.URL) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *u
	s.current = &copied
	return Decode(&copied)
}

// Recorder is a History that remembers every write. Useful in tests and
// as the terminal UI's stand-in for a browser.
type Recorder struct {
	mu       sync.Mutex
	Pushed   []*url.URL
	Replaced []*url.URL
}

func (r *Recorder) Push(u *url.URL) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pushed = append(r.Pushed, u)
}

func (r *Recorder) Replace(u *url.URL) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Replaced = append(r.Replaced, u)
}
