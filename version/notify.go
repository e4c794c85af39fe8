package version

import (
	"fmt"

	"github.com/hydra-cli/hydra/color"
	"github.com/hydra-cli/hydra/constant"
	"github.com/hydra-cli/hydra/icon"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/style"
	"github.com/hydra-cli/hydra/util"
	"github.com/spf13/viper"
)

// Notify prints an update notice when a newer release exists. Failures
// to reach the releases API are ignored, an update hint is never worth
// blocking startup over.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a newer version...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s Update available %s %s
%s

`,
		style.Fg(color.Green)("▲"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(current %s)", constant.Version)),
		style.Faint("https://github.com/hydra-cli/hydra/releases/tag/v"+latest),
	)
}
