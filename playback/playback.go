// Package playback resolves embeddable player URLs from a title, an
// optional episode coordinate, and a streaming provider.
package playback

import (
	"fmt"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Provider is one of the known streaming backends.
type Provider string

const (
	ProviderVidsrc  Provider = "vidsrc"
	ProviderVidfast Provider = "vidfast"
)

// DefaultProvider is used until the user picks one.
const DefaultProvider = ProviderVidsrc

// Providers returns every known provider.
func Providers() []Provider {
	return []Provider{ProviderVidsrc, ProviderVidfast}
}

// ParseProvider parses a provider name. Unknown names fail closed.
func ParseProvider(s string) (Provider, bool) {
	provider := Provider(s)
	if lo.Contains(Providers(), provider) {
		return provider, true
	}
	return "", false
}

// EmbedURL builds the provider's player URL for the given title. A series
// title with an episode coordinate yields the provider's series-shaped
// URL; a series without one falls back to the movie-shaped URL, which
// every known provider treats as the title's show index.
func EmbedURL(title catalog.Title, coordinate mo.Option[catalog.Coordinate], provider Provider) string {
	c, ok := coordinate.Get()
	if !title.IsSeries() || !ok {
		switch provider {
		case ProviderVidfast:
			return fmt.Sprintf("https://vidfast.pro/movie/%s?autoPlay=true&title=false&poster=false", title.ID)
		default:
			return fmt.Sprintf("https://vidsrc.to/embed/movie/%s", title.ID)
		}
	}

	switch provider {
	case ProviderVidfast:
		return fmt.Sprintf(
			"https://vidfast.pro/tv/%s/%d/%d?autoPlay=true&title=false&poster=false&nextButton=true&autoNext=true",
			title.ID, c.Season, c.Episode,
		)
	default:
		return fmt.Sprintf("https://vidsrc.to/embed/tv/%s/%d/%d", title.ID, c.Season, c.Episode)
	}
}

// EmbedKey identifies one (provider, title, episode) player instance.
// Any change to the key must remount the player surface so the embedded
// third-party player reinitializes instead of swapping content in place.
func EmbedKey(provider Provider, titleID string, coordinate mo.Option[catalog.Coordinate]) string {
	c := coordinate.OrElse(catalog.Coordinate{})
	return fmt.Sprintf("%s-%s-%d-%d", provider, titleID, c.Season, c.Episode)
}
