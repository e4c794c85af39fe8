// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/discover"
	"github.com/hydra-cli/hydra/playback"
	"github.com/hydra-cli/hydra/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	TitlePicker    func([]*catalog.Title) *catalog.Title
	EpisodesFilter func([]catalog.Episode) ([]catalog.Episode, error)
)

type Options struct {
	Out            io.Writer
	Query          string
	Json           bool
	TitlePicker    mo.Option[TitlePicker]
	EpisodesFilter mo.Option[EpisodesFilter]
	Refinement     mo.Option[discover.Refinement]
	Credits        bool
	Embed          bool
	Provider       playback.Provider
}

func ParseTitlePicker(kind, value string) (TitlePicker, error) {
	switch kind {
	case "first":
		return func(titles []*catalog.Title) *catalog.Title {
			if len(titles) == 0 {
				return nil
			}
			return titles[0]
		}, nil
	case "last":
		return func(titles []*catalog.Title) *catalog.Title {
			if len(titles) == 0 {
				return nil
			}
			return titles[len(titles)-1]
		}, nil
	case "exact":
		return func(titles []*catalog.Title) *catalog.Title {
			for _, t := range titles {
				if t.String() == value || t.ID == value {
					return t
				}
			}
			return nil
		}, nil
	case "closest":
		return func(titles []*catalog.Title) *catalog.Title {
			if len(titles) == 0 {
				return nil
			}
			return catalog.ClosestIn(titles, value)
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(titles []*catalog.Title) *catalog.Title {
			if len(titles) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(titles)-1))
			return titles[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseEpisodesFilter parses a string description of an episode filter.
// Format: "first", "last", "all", "1-5", "@substring@", or a single index.
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	if description == "first" {
		return func(episodes []catalog.Episode) ([]catalog.Episode, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[:1], nil
		}, nil
	}
	if description == "last" {
		return func(episodes []catalog.Episode) ([]catalog.Episode, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[len(episodes)-1:], nil
		}, nil
	}
	if description == "all" {
		return func(episodes []catalog.Episode) ([]catalog.Episode, error) {
			return episodes, nil
		}, nil
	}

	// Range: "1-5"
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil {
				return func(episodes []catalog.Episode) ([]catalog.Episode, error) {
					start := util.Min(from, uint64(len(episodes)))
					end := util.Min(to+1, uint64(len(episodes)))
					if start > end {
						return []catalog.Episode{}, nil
					}
					return episodes[start:end], nil
				}, nil
			}
		}
	}

	// Substring: "@text@"
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(episodes []catalog.Episode) ([]catalog.Episode, error) {
			return lo.Filter(episodes, func(e catalog.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.Title), strings.ToLower(sub))
			}), nil
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(episodes []catalog.Episode) ([]catalog.Episode, error) {
			if uint64(len(episodes)) <= idx {
				return []catalog.Episode{}, nil
			}
			return []catalog.Episode{episodes[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid episode filter: %s", description)
}
