// Package history provides the implementation for tracking and persisting user media consumption state.
package history

import (
	"time"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/filesystem"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/playback"
	"github.com/hydra-cli/hydra/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// cacher provides an abstracted, disk-backed registry for watch records.
var cacher = gache.New[map[string]*SavedWatch](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of watch records from the persistent store.
func Get() (map[string]*SavedWatch, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedWatch), nil
	}
	return cached, nil
}

// Save records that the title was watched, keeping at most one record per
// title. Re-watching updates the coordinate and timestamp in place. Saving
// is a no-op when history is disabled in the configuration.
func Save(title *catalog.Title, coordinate mo.Option[catalog.Coordinate], provider playback.Provider) error {
	if !viper.GetBool(key.HistorySaveOnWatch) {
		return nil
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	saved[title.ID] = newSavedWatch(title, coordinate, provider)
	return cacher.Set(saved)
}

// Remove permanently deletes a title's watch record from the registry.
func Remove(watch *SavedWatch) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, watch.TitleID)
	return cacher.Set(saved)
}

// now is stubbed in tests.
var now = time.Now
