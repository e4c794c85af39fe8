package history

import (
	"fmt"
	"time"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/playback"
	"github.com/samber/mo"
)

// SavedWatch represents a single playback entry preserved in the user's history.
type SavedWatch struct {
	TitleID   string    `json:"title_id"`
	TitleName string    `json:"title_name"`
	Kind      string    `json:"kind"`
	Season    int       `json:"season,omitempty"`
	Episode   int       `json:"episode,omitempty"`
	Provider  string    `json:"provider"`
	WatchedAt time.Time `json:"watched_at"`
}

// Coordinate returns the watched episode coordinate, when the record has one.
func (s *SavedWatch) Coordinate() mo.Option[catalog.Coordinate] {
	if s.Season > 0 && s.Episode > 0 {
		return mo.Some(catalog.Coordinate{Season: s.Season, Episode: s.Episode})
	}
	return mo.None[catalog.Coordinate]()
}

func (s *SavedWatch) String() string {
	if coordinate, ok := s.Coordinate().Get(); ok {
		return fmt.Sprintf("%s %s", s.TitleName, coordinate)
	}
	return s.TitleName
}

func newSavedWatch(title *catalog.Title, coordinate mo.Option[catalog.Coordinate], provider playback.Provider) *SavedWatch {
	watch := &SavedWatch{
		TitleID:   title.ID,
		TitleName: title.String(),
		Kind:      string(title.Kind),
		Provider:  string(provider),
		WatchedAt: now(),
	}

	if c, ok := coordinate.Get(); ok && title.IsSeries() {
		watch.Season = c.Season
		watch.Episode = c.Episode
	}

	return watch
}
