// Package discover turns user filter input into validated catalog queries
// and manages cursor-based pagination over the results.
package discover

import (
	"fmt"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/samber/mo"
)

// SortBy is a catalog result ordering key.
type SortBy string

const (
	SortByPopularity  SortBy = "popularity"
	SortByReleaseDate SortBy = "release_date"
	SortByRating      SortBy = "rating"
	SortByRatingCount SortBy = "rating_count"
	SortByYear        SortBy = "year"
)

// sortParams maps each sort key to the form the catalog service expects.
var sortParams = map[SortBy]string{
	SortByPopularity:  "SORT_BY_POPULARITY",
	SortByReleaseDate: "SORT_BY_RELEASE_DATE",
	SortByRating:      "SORT_BY_USER_RATING",
	SortByRatingCount: "SORT_BY_USER_RATING_COUNT",
	SortByYear:        "SORT_BY_YEAR",
}

// ParseSortBy parses a sort key from either its internal or wire form.
// Unknown values fail closed.
func ParseSortBy(s string) (SortBy, bool) {
	for sort, param := range sortParams {
		if s == string(sort) || s == param {
			return sort, true
		}
	}
	return "", false
}

// Param returns the wire form of the sort key.
func (s SortBy) Param() string {
	return sortParams[s]
}

// SortOrder is the direction applied to a sort key.
type SortOrder string

const (
	OrderAscending  SortOrder = "asc"
	OrderDescending SortOrder = "desc"
)

var orderParams = map[SortOrder]string{
	OrderAscending:  "ASC",
	OrderDescending: "DESC",
}

// ParseSortOrder parses a sort direction from either its internal or wire
// form. Unknown values fail closed.
func ParseSortOrder(s string) (SortOrder, bool) {
	for order, param := range orderParams {
		if s == string(order) || s == param {
			return order, true
		}
	}
	return "", false
}

// Param returns the wire form of the sort direction.
func (o SortOrder) Param() string {
	return orderParams[o]
}

// Filters is one user-editable filter set. A non-empty Query switches the
// engine from browse mode to search mode.
type Filters struct {
	Kind      mo.Option[catalog.Kind]
	Genre     mo.Option[string]
	YearMin   int
	YearMax   int
	MinRating float64
	MinVotes  int
	Sort      SortBy
	Order     SortOrder
	Query     string
}

// NewFilters returns the default filter set: newest releases first, capped
// at the current catalog year.
func NewFilters() Filters {
	return Filters{
		YearMax: catalog.MaxYear,
		Sort:    SortByReleaseDate,
		Order:   OrderDescending,
	}
}

// Searching reports whether the filter set is in search mode.
func (f Filters) Searching() bool {
	return f.Query != ""
}

// Identity returns a stable fingerprint of the filter set. Two filter sets
// with the same identity describe the same upstream query.
func (f Filters) Identity() string {
	return fmt.Sprintf(
		"%s|%s|%d|%d|%g|%d|%s|%s|%s",
		f.Kind.OrElse(""),
		f.Genre.OrElse(""),
		f.YearMin,
		f.YearMax,
		f.MinRating,
		f.MinVotes,
		f.Sort,
		f.Order,
		f.Query,
	)
}
