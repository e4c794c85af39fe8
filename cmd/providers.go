// Package cmd implements the command-line interface for hydra.
package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/hydra-cli/hydra/color"
	"github.com/hydra-cli/hydra/icon"
	"github.com/hydra-cli/hydra/playback"
	"github.com/hydra-cli/hydra/prefs"
	"github.com/hydra-cli/hydra/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(providersCmd)
}

// providersCmd displays the available playback providers.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Display the available playback providers",
	Run: func(cmd *cobra.Command, args []string) {
		active := prefs.Provider()

		for _, provider := range playback.Providers() {
			if provider == active {
				fmt.Printf("%s %s %s\n", icon.Get(icon.Mark), provider, style.Faint("(active)"))
			} else {
				fmt.Printf("  %s\n", provider)
			}
		}
	},
}

func init() {
	providersCmd.AddCommand(providersSetCmd)
	providersSetCmd.Flags().StringP("name", "n", "", "The provider to activate without prompting")
	_ = providersSetCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(playback.Providers(), func(p playback.Provider, _ int) string {
			return string(p)
		}), cobra.ShellCompDirectiveNoFileComp
	})
}

// providersSetCmd persists the active playback provider preference.
var providersSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Persist the active playback provider preference",
	Run: func(cmd *cobra.Command, args []string) {
		name := lo.Must(cmd.Flags().GetString("name"))

		if name == "" {
			prompt := survey.Select{
				Message: "Playback provider",
				Options: lo.Map(playback.Providers(), func(p playback.Provider, _ int) string {
					return string(p)
				}),
				Default: string(prefs.Provider()),
			}
			handleErr(survey.AskOne(&prompt, &name))
		}

		provider, ok := playback.ParseProvider(name)
		if !ok {
			handleErr(fmt.Errorf("unknown playback provider: %s", name))
		}

		handleErr(prefs.SetProvider(provider))
		fmt.Printf(
			"%s switched to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(string(provider)),
		)
	},
}
