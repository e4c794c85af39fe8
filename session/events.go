package session

// EventKind tags what part of the session changed.
type EventKind int

const (
	// EventTitles reports a change to the loaded title pages.
	EventTitles EventKind = iota

	// EventSelection reports a change to the selected title, episode
	// coordinate, or provider.
	EventSelection

	// EventEpisodes reports that the episode aggregate settled.
	EventEpisodes

	// EventCredits reports that the credit aggregate settled.
	EventCredits
)

// Event is one session change notification.
type Event struct {
	Kind EventKind
	Err  error
}

// Notifier fans session events out to one consumer. Sends never block; a
// consumer that falls behind misses intermediate events, not final state,
// because every event only signals "re-read the engine".
type Notifier struct {
	ch chan Event
}

// NewNotifier returns a notifier with a small buffer.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan Event, 16)}
}

// C returns the receive side of the stream.
func (n *Notifier) C() <-chan Event {
	return n.ch
}

// Notify delivers the event if the consumer has room for it.
func (n *Notifier) Notify(event Event) {
	select {
	case n.ch <- event:
	default:
	}
}
