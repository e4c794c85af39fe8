package session

import (
	"sync"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/history"
	"github.com/hydra-cli/hydra/log"
)

// Home is the landing surface: recent releases, the available interest
// taxonomy, and the user's watch history. Each section degrades to empty
// on failure independently of the others.
type Home struct {
	Latest    []catalog.Title
	Interests []string
	Continue  []*history.SavedWatch

	LatestErr    error
	InterestsErr error
}

// Home fetches every landing section concurrently and waits for all of
// them to settle.
func (e *Engine) Home() Home {
	var (
		home Home
		wg   sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		latest, err := catalog.Latest()
		if err != nil {
			log.Error(err)
			home.LatestErr = err
			return
		}
		home.Latest = latest
	}()

	go func() {
		defer wg.Done()
		interests, err := catalog.Interests()
		if err != nil {
			log.Error(err)
			home.InterestsErr = err
			return
		}
		home.Interests = interests
	}()

	saved, err := history.Get()
	if err != nil {
		log.Error(err)
	} else {
		for _, watch := range saved {
			home.Continue = append(home.Continue, watch)
		}
	}

	wg.Wait()
	return home
}
