// Package prefs persists user preferences that outlive a session, such as
// the chosen playback provider.
package prefs

import (
	"github.com/hydra-cli/hydra/filesystem"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/playback"
	"github.com/hydra-cli/hydra/where"
	"github.com/metafates/gache"
	"github.com/spf13/viper"
)

type data struct {
	Provider string `json:"provider"`
}

var cacher = gache.New[*data](
	&gache.Options{
		Path:       where.Preferences(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Provider returns the persisted playback provider, falling back to the
// configured default when nothing valid was saved.
func Provider() playback.Provider {
	saved, expired, err := cacher.Get()
	if err == nil && !expired && saved != nil {
		if provider, ok := playback.ParseProvider(saved.Provider); ok {
			return provider
		}
	}

	if provider, ok := playback.ParseProvider(viper.GetString(key.PlaybackProvider)); ok {
		return provider
	}

	return playback.DefaultProvider
}

// SetProvider persists the playback provider for future sessions.
func SetProvider(provider playback.Provider) error {
	return cacher.Set(&data{Provider: string(provider)})
}
