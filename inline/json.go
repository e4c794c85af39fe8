// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/samber/mo"
)

// Result is one matched title with whatever the caller asked to attach.
type Result struct {
	Title       *catalog.Title    `json:"title"`
	Episodes    []catalog.Episode `json:"episodes,omitempty"`
	Credits     []catalog.Credit  `json:"credits,omitempty"`
	CreditTotal mo.Option[int]    `json:"-"`
	Embed       []string          `json:"embed,omitempty"`
}

type Output struct {
	Query  string    `json:"query"`
	Result []*Result `json:"result"`
}

func asJson(results []*Result, query string) ([]byte, error) {
	if results == nil {
		results = []*Result{}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: results,
	})
}
