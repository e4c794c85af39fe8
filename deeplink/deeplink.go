// Package deeplink maps the session's selection to and from a shareable
// URL query string.
package deeplink

import (
	"net/url"
	"strconv"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/samber/mo"
)

// Query parameter names of the shareable URL contract.
const (
	ParamTitle   = "title"
	ParamSeason  = "s"
	ParamEpisode = "e"
)

// Selection is the URL-visible part of the session state: a selected title
// and, for series, an episode coordinate.
type Selection struct {
	TitleID    string
	Coordinate mo.Option[catalog.Coordinate]
}

// Empty reports whether no title is selected.
func (s Selection) Empty() bool {
	return s.TitleID == ""
}

// Encode writes the selection into the URL's query string. Parameters
// outside the deep-link contract are preserved untouched; an empty
// selection removes the contract parameters entirely.
func Encode(u *url.URL, selection Selection) *url.URL {
	out := *u
	params := out.Query()

	if selection.Empty() {
		params.Del(ParamTitle)
	} else {
		params.Set(ParamTitle, selection.TitleID)
	}

	if coordinate, ok := selection.Coordinate.Get(); ok && !selection.Empty() {
		params.Set(ParamSeason, strconv.Itoa(coordinate.Season))
		params.Set(ParamEpisode, strconv.Itoa(coordinate.Episode))
	} else {
		params.Del(ParamSeason)
		params.Del(ParamEpisode)
	}

	out.RawQuery = params.Encode()
	return &out
}

// Decode reads a selection from the URL's query string. Absence of the
// title parameter means no selection; season and episode are adopted only
// when both are present, numeric, and positive. Whether the coordinate is
// meaningful for the resolved title is decided later, once its kind is
// known.
func Decode(u *url.URL) Selection {
	params := u.Query()

	selection := Selection{
		TitleID:    params.Get(ParamTitle),
		Coordinate: mo.None[catalog.Coordinate](),
	}
	if selection.Empty() {
		return Selection{Coordinate: mo.None[catalog.Coordinate]()}
	}

	season, seasonErr := strconv.Atoi(params.Get(ParamSeason))
	episode, episodeErr := strconv.Atoi(params.Get(ParamEpisode))
	if seasonErr == nil && episodeErr == nil && season > 0 && episode > 0 {
		selection.Coordinate = mo.Some(catalog.Coordinate{Season: season, Episode: episode})
	}

	return selection
}
