package catalog

import (
	"fmt"
	"strings"

	"github.com/hydra-cli/hydra/log"
	"github.com/hydra-cli/hydra/util"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// ClosestIn returns the title whose name has the smallest Levenshtein
// distance to the given name. The slice must not be empty.
func ClosestIn(titles []*Title, name string) *Title {
	name = normalizedQuery(name)
	return lo.MinBy(titles, func(a, b *Title) bool {
		return levenshtein.Distance(
			name,
			normalizedQuery(a.String()),
		) < levenshtein.Distance(
			name,
			normalizedQuery(b.String()),
		)
	})
}

// FindClosest returns the catalog title closest to the given name.
// It will levenshtein compare the given name with the names of all search results.
func FindClosest(name string) (*Title, error) {
	name = normalizedQuery(name)
	return findClosest(name, name, 0, 3)
}

// findClosest searches for the name and retries with progressively shorter
// queries when the catalog returns nothing.
func findClosest(name, originalName string, try, limit int) (*Title, error) {
	if try >= limit {
		err := fmt.Errorf("no results found in catalog for %s", originalName)
		log.Error(err)
		return nil, err
	}

	titles, err := SearchTitles(name)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	if len(titles) == 0 {
		words := strings.Split(name, " ")
		if len(words) <= 2 {
			return nil, fmt.Errorf("no results found in catalog for %s", originalName)
		}

		// Decrementing query specificity by removing the trailing token.
		alternateName := strings.Join(words[:util.Max(len(words)-1, 1)], " ")
		log.Infof(`No results found in catalog for "%s", trying "%s"`, name, alternateName)
		return findClosest(alternateName, originalName, try+1, limit)
	}

	closest := ClosestIn(titles, name)
	log.Info("Found closest match: " + closest.String())
	return closest, nil
}
