package discover

import (
	"cmp"

	"github.com/hydra-cli/hydra/catalog"
	"golang.org/x/exp/slices"
)

// RefineOrder is a client-side ordering over an already-fetched result set.
type RefineOrder string

const (
	RefineNewest     RefineOrder = "newest"
	RefineOldest     RefineOrder = "oldest"
	RefineRatingHigh RefineOrder = "rating-high"
	RefineRatingLow  RefineOrder = "rating-low"
)

// refineOrders lists every ordering in cycle order.
var refineOrders = []RefineOrder{RefineNewest, RefineOldest, RefineRatingHigh, RefineRatingLow}

// RefineOrders returns every known ordering in cycle order.
func RefineOrders() []RefineOrder {
	return slices.Clone(refineOrders)
}

// ParseRefineOrder parses a result ordering. Unknown values fail closed.
func ParseRefineOrder(s string) (RefineOrder, bool) {
	for _, order := range refineOrders {
		if s == string(order) {
			return order, true
		}
	}
	return "", false
}

// Next returns the ordering after this one, wrapping around.
func (o RefineOrder) Next() RefineOrder {
	for i, order := range refineOrders {
		if order == o {
			return refineOrders[(i+1)%len(refineOrders)]
		}
	}
	return RefineNewest
}

// Pretty returns the human-readable form of the ordering.
func (o RefineOrder) Pretty() string {
	switch o {
	case RefineNewest:
		return "Newest"
	case RefineOldest:
		return "Oldest"
	case RefineRatingHigh:
		return "Highest Rating"
	case RefineRatingLow:
		return "Lowest Rating"
	default:
		return string(o)
	}
}

// Refinement narrows and reorders a fetched result set without touching
// the upstream query. Records missing a year or rating pass the
// corresponding threshold and sort as zero.
type Refinement struct {
	MinYear   int
	MinRating float64
	Order     RefineOrder
}

// NewRefinement returns the neutral refinement: nothing filtered,
// newest first.
func NewRefinement() Refinement {
	return Refinement{Order: RefineNewest}
}

func (r Refinement) keep(t catalog.Title) bool {
	if t.StartYear != 0 && t.StartYear < r.MinYear {
		return false
	}
	if rating, ok := t.Rating.Get(); ok && rating.Aggregate < r.MinRating {
		return false
	}
	return true
}

func score(t catalog.Title) float64 {
	if rating, ok := t.Rating.Get(); ok {
		return rating.Aggregate
	}
	return 0
}

// Apply returns the refined copy of titles. The input is never mutated.
func (r Refinement) Apply(titles []catalog.Title) []catalog.Title {
	refined := make([]catalog.Title, 0, len(titles))
	for _, title := range titles {
		if r.keep(title) {
			refined = append(refined, title)
		}
	}

	switch r.Order {
	case RefineNewest:
		slices.SortStableFunc(refined, func(a, b catalog.Title) int {
			return cmp.Compare(b.StartYear, a.StartYear)
		})
	case RefineOldest:
		slices.SortStableFunc(refined, func(a, b catalog.Title) int {
			return cmp.Compare(a.StartYear, b.StartYear)
		})
	case RefineRatingHigh:
		slices.SortStableFunc(refined, func(a, b catalog.Title) int {
			return cmp.Compare(score(b), score(a))
		})
	case RefineRatingLow:
		slices.SortStableFunc(refined, func(a, b catalog.Title) int {
			return cmp.Compare(score(a), score(b))
		})
	}

	return refined
}
