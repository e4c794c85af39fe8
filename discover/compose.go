package discover

import (
	"net/url"
	"strconv"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/util"
	"github.com/spf13/viper"
)

// MinVoteFloor is the lowest vote count ever sent upstream. The catalog is
// full of low-signal entries that must be suppressed no matter what the
// caller asks for.
const MinVoteFloor = 1000

// Compose builds the upstream query for the given filter set. In search
// mode the result is a free-text request with no pagination or browse
// filters; in browse mode the year ceiling and vote floor are enforced
// regardless of caller input, and invalid enum values are dropped rather
// than forwarded.
func Compose(f Filters) url.Values {
	params := url.Values{}
	limit := viper.GetInt(key.CatalogPageLimit)

	if f.Searching() {
		params.Set("query", f.Query)
		params.Set("limit", strconv.Itoa(limit))
		return params
	}

	params.Set("pageSize", strconv.Itoa(limit))

	sort := f.Sort
	if _, ok := ParseSortBy(string(sort)); !ok {
		sort = SortByReleaseDate
	}
	order := f.Order
	if _, ok := ParseSortOrder(string(order)); !ok {
		order = OrderDescending
	}
	params.Set("sortBy", sort.Param())
	params.Set("sortOrder", order.Param())

	if kind, ok := f.Kind.Get(); ok {
		if parsed, valid := catalog.ParseKind(string(kind)); valid {
			params.Set("types", parsed.Param())
		}
	}

	if genre, ok := f.Genre.Get(); ok && genre != "" {
		params.Set("genres", genre)
	}

	if f.YearMin > 0 {
		params.Set("startYear", strconv.Itoa(util.Min(f.YearMin, catalog.MaxYear)))
	}

	yearMax := f.YearMax
	if yearMax <= 0 || yearMax > catalog.MaxYear {
		yearMax = catalog.MaxYear
	}
	params.Set("endYear", strconv.Itoa(yearMax))

	if f.MinRating > 0 {
		params.Set("minAggregateRating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}

	params.Set("minVoteCount", strconv.Itoa(util.Max(f.MinVotes, MinVoteFloor)))

	return params
}
