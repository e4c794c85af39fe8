// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"os"

	"github.com/hydra-cli/hydra/aggregate"
	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/discover"
	"github.com/hydra-cli/hydra/log"
	"github.com/hydra-cli/hydra/playback"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Step 1: Search the catalog.
	titles, err := catalog.SearchTitles(options.Query)
	if err != nil {
		return fmt.Errorf("search failed for %s: %w", options.Query, err)
	}

	// Step 2: Refine the result set, then apply title selection logic
	// if a picker is defined.
	titles = refineTitles(titles, options.Refinement)

	var selected []*catalog.Title
	if options.TitlePicker.IsPresent() {
		picker := options.TitlePicker.MustGet()
		if choice := picker(titles); choice != nil {
			selected = []*catalog.Title{choice}
		}
	} else {
		selected = titles
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, nil, options)
		}
		return nil // Nothing found
	}

	// Step 3: Aggregate episodes and credits for the selected titles.
	results := make([]*Result, 0, len(selected))
	for _, title := range selected {
		result, err := prepareTitle(title, options)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	// Step 4: Dispatch the processed results to the configured output writer.
	if options.Json {
		return writeJson(options.Out, results, options)
	}

	for _, result := range results {
		printResult(options.Out, result, options)
	}

	return nil
}

// refineTitles runs the optional refinement over the search results,
// preserving the pointer-slice shape the pickers expect.
func refineTitles(titles []*catalog.Title, refinement mo.Option[discover.Refinement]) []*catalog.Title {
	r, ok := refinement.Get()
	if !ok {
		return titles
	}

	refined := r.Apply(lo.Map(titles, func(t *catalog.Title, _ int) catalog.Title {
		return *t
	}))

	return lo.Map(refined, func(_ catalog.Title, i int) *catalog.Title {
		return &refined[i]
	})
}

func prepareTitle(title *catalog.Title, options *Options) (*Result, error) {
	result := &Result{Title: title}

	if title.IsSeries() {
		episodes, err := aggregate.NewEpisodes(title.ID).Run()
		if err != nil {
			return nil, err
		}

		if options.EpisodesFilter.IsPresent() {
			filter := options.EpisodesFilter.MustGet()
			episodes, err = filter(episodes)
			if err != nil {
				return nil, err
			}
		}
		result.Episodes = episodes
	}

	if options.Credits {
		credits := aggregate.NewCredits(title.ID)
		records, err := credits.Run()
		if err != nil {
			log.Warnf("failed to fetch credits for %s: %v", title, err)
		} else {
			result.Credits = records
			result.CreditTotal = credits.Total()
		}
	}

	if options.Embed {
		result.Embed = embedsOf(title, result.Episodes, options.Provider)
	}

	return result, nil
}

// embedsOf resolves a player URL per episode, or a single one for movies.
func embedsOf(title *catalog.Title, episodes []catalog.Episode, provider playback.Provider) []string {
	if !title.IsSeries() || len(episodes) == 0 {
		return []string{playback.EmbedURL(*title, mo.None[catalog.Coordinate](), provider)}
	}

	embeds := make([]string, len(episodes))
	for i, episode := range episodes {
		embeds[i] = playback.EmbedURL(*title, mo.Some(episode.Coordinate()), provider)
	}
	return embeds
}

func printResult(out io.Writer, result *Result, options *Options) {
	if options.Embed {
		for _, embed := range result.Embed {
			fmt.Fprintln(out, embed)
		}
		return
	}

	fmt.Fprintln(out, result.Title)
	for _, episode := range result.Episodes {
		fmt.Fprintf(out, "%s %s\n", episode.Coordinate(), episode.Title)
	}
}

func writeJson(out io.Writer, results []*Result, options *Options) error {
	data, err := asJson(results, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
