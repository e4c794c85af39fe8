// Package cmd implements the command-line interface for hydra.
package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/hydra-cli/hydra/color"
	"github.com/hydra-cli/hydra/constant"
	"github.com/hydra-cli/hydra/style"
	"github.com/hydra-cli/hydra/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

var versionTemplate = `{{ accent "◆" }} {{ accent .App }} {{ bold .Version }}

  {{ faint "Commit" }}     {{ bold .Revision }}
  {{ faint "Built" }}      {{ bold .BuiltAt }}{{ if .BuiltBy }} {{ faint "by" }} {{ bold .BuiltBy }}{{ end }}
  {{ faint "Platform" }}   {{ bold .Platform }}
`

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display exhaustive version and build metadata",
	Long:  "Display the current application version, build revision, platform architecture, and related metadata.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		info := struct {
			App      string
			Version  string
			Revision string
			BuiltAt  string
			BuiltBy  string
			Platform string
		}{
			App:      constant.Hydra,
			Version:  constant.Version,
			Revision: constant.Revision,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Platform: runtime.GOOS + "/" + runtime.GOARCH,
		}

		t, err := template.New("version").Funcs(map[string]any{
			"faint":  style.Faint,
			"bold":   style.Bold,
			"accent": style.Fg(color.Purple),
		}).Parse(versionTemplate)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), info))
	},
}
