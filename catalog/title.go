// Package catalog defines the canonical media entities and the client for the remote catalog service.
package catalog

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// MaxYear is the current catalog year ceiling. Titles announced past this
// year are suppressed everywhere, both in composed queries and in the local
// admission filter.
const MaxYear = 2025

// Kind classifies a catalog title.
type Kind string

const (
	KindMovie      Kind = "movie"
	KindSeries     Kind = "tvSeries"
	KindMiniSeries Kind = "tvMiniSeries"
	KindSpecial    Kind = "tvSpecial"
	KindTVMovie    Kind = "tvMovie"
	KindShort      Kind = "short"
	KindVideo      Kind = "video"
	KindVideoGame  Kind = "videoGame"
)

// kindParams maps each Kind to the upstream query parameter form.
var kindParams = map[Kind]string{
	KindMovie:      "MOVIE",
	KindSeries:     "TV_SERIES",
	KindMiniSeries: "TV_MINI_SERIES",
	KindSpecial:    "TV_SPECIAL",
	KindTVMovie:    "TV_MOVIE",
	KindShort:      "SHORT",
	KindVideo:      "VIDEO",
	KindVideoGame:  "VIDEO_GAME",
}

// ParseKind resolves a kind from either the upstream entity form ("tvSeries")
// or the query parameter form ("TV_SERIES"). Unknown values fail closed and
// are reported as not ok.
func ParseKind(s string) (Kind, bool) {
	for kind, param := range kindParams {
		if s == string(kind) || strings.EqualFold(s, param) {
			return kind, true
		}
	}
	return "", false
}

// Param returns the upstream query parameter form of the kind.
func (k Kind) Param() string {
	return kindParams[k]
}

// IsSeries reports whether titles of this kind carry episodes.
func (k Kind) IsSeries() bool {
	return k == KindSeries
}

// Pretty returns a human-readable label for the kind.
func (k Kind) Pretty() string {
	switch k {
	case KindSeries:
		return "TV Show"
	case KindMiniSeries:
		return "TV Mini-Series"
	case KindSpecial:
		return "TV Special"
	case KindTVMovie:
		return "TV Movie"
	case KindVideoGame:
		return "Video Game"
	case KindMovie:
		return "Movie"
	default:
		return string(k)
	}
}

// Image references a remote poster or profile image with its dimensions.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Rating is an aggregate user score on a 0-10 scale.
type Rating struct {
	Aggregate float64 `json:"aggregateRating"`
	Votes     int     `json:"voteCount"`
}

// Title represents a single catalog entry. Instances are immutable once
// fetched; identity is the upstream-assigned ID.
type Title struct {
	ID             string            `json:"id"`
	Kind           Kind              `json:"type"`
	PrimaryTitle   string            `json:"primaryTitle"`
	OriginalTitle  string            `json:"originalTitle,omitempty"`
	StartYear      int               `json:"startYear,omitempty"`
	RuntimeSeconds int               `json:"runtimeSeconds,omitempty"`
	Genres         []string          `json:"genres,omitempty"`
	Poster         mo.Option[Image]  `json:"primaryImage,omitempty"`
	Rating         mo.Option[Rating] `json:"rating,omitempty"`
	Plot           string            `json:"plot,omitempty"`
}

func (t Title) String() string {
	return t.PrimaryTitle
}

// IsSeries reports whether the title carries episodes.
func (t Title) IsSeries() bool {
	return t.Kind.IsSeries()
}

// Coordinate locates an episode within a series by season and episode number.
type Coordinate struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("S%dE%d", c.Season, c.Episode)
}
