// Package cmd implements the command-line interface for hydra.
package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/hydra-cli/hydra/constant"
	"github.com/hydra-cli/hydra/icon"
	"github.com/hydra-cli/hydra/style"
	"github.com/charmbracelet/lipgloss"
)

// CheckDependencies verifies that the host can hand playback links to a
// browser. Only Linux needs an explicit opener binary; the other
// platforms ship one.
func CheckDependencies() {
	if runtime.GOOS != constant.Linux {
		return
	}

	if _, err := exec.LookPath("xdg-open"); err != nil {
		printMissingDependencyWarning("xdg-open")
	}
}

func printMissingDependencyWarning(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.WarningColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.WarningColor).Render(fmt.Sprintf("%s Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("'%s' was not found in your PATH.\nPlayback links cannot be opened automatically; use the copy link action instead.", dep))

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
		),
	))
}
