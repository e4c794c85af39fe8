// Package cmd implements the command-line interface for hydra.
package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/hydra-cli/hydra/discover"
	"github.com/hydra-cli/hydra/filesystem"
	"github.com/hydra-cli/hydra/inline"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/playback"
	"github.com/hydra-cli/hydra/query"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for title discovery")
	inlineCmd.Flags().StringP("title", "t", "", "Criteria for selecting a specific title from the search results")
	inlineCmd.Flags().StringP("episodes", "e", "", "Criteria for selecting specific episodes from the chosen title")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("credits", "c", false, "Include aggregated cast and crew credits in the output")
	inlineCmd.Flags().BoolP("embed", "E", false, "Resolve playback embed links for the selected episodes")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	inlineCmd.Flags().Int("min-year", 0, "Drop search results released before the given year")
	inlineCmd.Flags().Float64("min-rating", 0, "Drop search results rated below the given aggregate")
	inlineCmd.Flags().String("sort", "", "Order the search results (newest, oldest, rating-high, rating-low)")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	_ = inlineCmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(discover.RefineOrders(), func(order discover.RefineOrder, _ int) string {
			return string(order)
		}), cobra.ShellCompDirectiveNoFileComp
	})
}

// parseTitlePickerFlag maps the CLI selector syntax onto a picker.
// Accepted forms: first, last, a bare index, exact=<name or id>,
// closest=<name>.
func parseTitlePickerFlag(flag, fallback string) (inline.TitlePicker, error) {
	kind, value, found := strings.Cut(flag, "=")
	if !found {
		if _, err := strconv.ParseUint(kind, 10, 16); err == nil {
			return inline.ParseTitlePicker("index", kind)
		}
		if kind == "closest" {
			value = fallback
		}
	}

	return inline.ParseTitlePicker(kind, value)
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Title selectors:
  first - first title in the list
  last - last title in the list
  [number] - select title by index (starting from 0)
  exact=[name or id] - select title by exact name or identifier
  closest=[name] - select the title closest to the given name

Episode selectors:
  first - first episode in the list
  last - last episode in the list
  all - all episodes in the list
  [number] - select episode by index (starting from 0)
  [from]-[to] - select episodes by range
  @[substring]@ - select episodes by name substring

When using the json flag the title selector could be omitted. That way, it will select all titles`,
	PreRun: func(cmd *cobra.Command, args []string) {
		json, _ := cmd.Flags().GetBool("json")

		if !json {
			lo.Must0(cmd.MarkFlagRequired("title"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		searchQuery := lo.Must(cmd.Flags().GetString("query"))

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			writer = file
		} else {
			writer = os.Stdout
		}

		titleFlag := lo.Must(cmd.Flags().GetString("title"))
		titlePicker := mo.None[inline.TitlePicker]()
		if titleFlag != "" {
			fn, err := parseTitlePickerFlag(titleFlag, searchQuery)
			handleErr(err)
			titlePicker = mo.Some(fn)
		}

		episodeFlag := lo.Must(cmd.Flags().GetString("episodes"))
		episodesFilter := mo.None[inline.EpisodesFilter]()
		if episodeFlag != "" {
			fn, err := inline.ParseEpisodesFilter(episodeFlag)
			handleErr(err)
			episodesFilter = mo.Some(fn)
		}

		minYear := lo.Must(cmd.Flags().GetInt("min-year"))
		minRating := lo.Must(cmd.Flags().GetFloat64("min-rating"))
		sortFlag := lo.Must(cmd.Flags().GetString("sort"))

		refinement := mo.None[discover.Refinement]()
		if minYear != 0 || minRating != 0 || sortFlag != "" {
			refined := discover.NewRefinement()
			refined.MinYear = minYear
			refined.MinRating = minRating
			if sortFlag != "" {
				order, ok := discover.ParseRefineOrder(sortFlag)
				if !ok {
					handleErr(errors.New("unknown sort order: " + sortFlag))
				}
				refined.Order = order
			}
			refinement = mo.Some(refined)
		}

		provider, ok := playback.ParseProvider(viper.GetString(key.PlaybackProvider))
		if !ok {
			handleErr(errors.New("unknown playback provider: " + viper.GetString(key.PlaybackProvider)))
		}

		options := &inline.Options{
			Out:            writer,
			Query:          searchQuery,
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			TitlePicker:    titlePicker,
			EpisodesFilter: episodesFilter,
			Credits:        lo.Must(cmd.Flags().GetBool("credits")),
			Embed:          lo.Must(cmd.Flags().GetBool("embed")),
			Provider:       provider,
			Refinement:     refinement,
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "title", "episode", "credit", "result", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
