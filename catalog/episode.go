// Package catalog defines the canonical media entities and the client for the remote catalog service.
package catalog

import (
	"fmt"

	"github.com/samber/mo"
)

// Episode represents a discrete installment of a series title.
// Uniqueness within a series is defined by the (season, number) pair.
type Episode struct {
	ID             string            `json:"id"`
	Season         int               `json:"season"`
	Number         int               `json:"episodeNumber"`
	Title          string            `json:"title"`
	Plot           string            `json:"plot,omitempty"`
	RuntimeSeconds int               `json:"runtimeSeconds,omitempty"`
	Rating         mo.Option[Rating] `json:"rating,omitempty"`
	Image          mo.Option[Image]  `json:"primaryImage,omitempty"`
}

// String returns the canonical display form of the episode coordinate.
func (e Episode) String() string {
	if e.Title != "" {
		return fmt.Sprintf("%s %s", e.Coordinate(), e.Title)
	}
	return e.Coordinate().String()
}

// Coordinate returns the episode's position within its series.
func (e Episode) Coordinate() Coordinate {
	return Coordinate{Season: e.Season, Episode: e.Number}
}
