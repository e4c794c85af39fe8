package aggregate

import (
	"github.com/hydra-cli/hydra/catalog"
)

// Episodes aggregates every episode of a series, de-duplicated by
// (season, episode number).
type Episodes struct {
	*Aggregate[catalog.Episode, catalog.Coordinate]
}

// NewEpisodes returns an episode aggregate for the given series id.
func NewEpisodes(id string) *Episodes {
	fetch := func(token string) ([]catalog.Episode, string, error) {
		page, err := catalog.Episodes(id, token)
		if err != nil {
			return nil, "", err
		}
		return page.Episodes, page.NextToken, nil
	}

	return &Episodes{
		Aggregate: New(fetch, catalog.Episode.Coordinate, EpisodePageCeiling),
	}
}

// Seasons returns the distinct season numbers present in the aggregate,
// in first-seen order.
func (e *Episodes) Seasons() []int {
	seen := make(map[int]struct{})
	var seasons []int
	for _, episode := range e.Records() {
		if _, ok := seen[episode.Season]; ok {
			continue
		}
		seen[episode.Season] = struct{}{}
		seasons = append(seasons, episode.Season)
	}
	return seasons
}

// Season returns the episodes of one season, in aggregate order.
func (e *Episodes) Season(season int) []catalog.Episode {
	var episodes []catalog.Episode
	for _, episode := range e.Records() {
		if episode.Season == season {
			episodes = append(episodes, episode)
		}
	}
	return episodes
}
