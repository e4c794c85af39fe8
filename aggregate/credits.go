package aggregate

import (
	"sync"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/samber/mo"
)

// Credits aggregates every credit of a title, de-duplicated by
// (category, person id).
type Credits struct {
	*Aggregate[catalog.Credit, catalog.CreditKey]

	mu    sync.Mutex
	total mo.Option[int]
}

// NewCredits returns a credit aggregate for the given title id.
func NewCredits(id string) *Credits {
	c := &Credits{total: mo.None[int]()}

	fetch := func(token string) ([]catalog.Credit, string, error) {
		page, err := catalog.Credits(id, token)
		if err != nil {
			return nil, "", err
		}

		// The reported total is best-effort display data; keep the first
		// value any page happens to carry.
		if total, ok := page.Total.Get(); ok {
			c.mu.Lock()
			if c.total.IsAbsent() {
				c.total = mo.Some(total)
			}
			c.mu.Unlock()
		}

		return page.Credits, page.NextToken, nil
	}

	c.Aggregate = New(fetch, catalog.Credit.Key, CreditPageCeiling)
	return c
}

// Total returns the upstream-reported credit count, when any page carried one.
func (c *Credits) Total() mo.Option[int] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// ByCategory groups the aggregated credits by category, in first-seen order.
func (c *Credits) ByCategory() (categories []string, grouped map[string][]catalog.Credit) {
	grouped = make(map[string][]catalog.Credit)
	for _, credit := range c.Records() {
		category := credit.Key().Category
		if _, ok := grouped[category]; !ok {
			categories = append(categories, category)
		}
		grouped[category] = append(grouped[category], credit)
	}
	return categories, grouped
}
