// Package catalog defines the canonical media entities and the client for the remote catalog service.
package catalog

import "github.com/samber/mo"

// Person identifies a cast or crew member referenced by a credit.
type Person struct {
	ID          string           `json:"id"`
	DisplayName string           `json:"displayName"`
	Image       mo.Option[Image] `json:"primaryImage,omitempty"`
	Professions []string         `json:"primaryProfessions,omitempty"`
}

// Credit associates a person with a title in a given role category.
// Uniqueness is defined by the (category, person id) pair.
type Credit struct {
	Category     string   `json:"category"`
	Person       Person   `json:"name"`
	Characters   []string `json:"characters,omitempty"`
	EpisodeCount int      `json:"episodeCount,omitempty"`
}

// CreditKey is the uniqueness key of a credit within a title.
type CreditKey struct {
	Category string
	PersonID string
}

// Key returns the credit's uniqueness key. Credits without a category are
// grouped under "other" so de-duplication stays stable across payload shapes.
func (c Credit) Key() CreditKey {
	category := c.Category
	if category == "" {
		category = "other"
	}
	return CreditKey{Category: category, PersonID: c.Person.ID}
}

func (c Credit) String() string {
	return c.Person.DisplayName
}
