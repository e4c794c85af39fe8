// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/hydra-cli/hydra/color"
	"github.com/hydra-cli/hydra/icon"
	"github.com/hydra-cli/hydra/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case homeState:
		output = b.viewHome()
	case historyState:
		output = b.viewHistory()
	case searchState:
		output = b.viewSearch()
	case resultsState:
		output = b.viewResults()
	case episodesState:
		output = b.viewEpisodes()
	case creditsState:
		output = b.viewCredits()
	case providerState:
		output = b.viewProvider()
	case watchState:
		output = b.viewWatch()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewHome() string {
	return listExtraPaddingStyle.Render(b.homeC.View())
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Titles"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("tab: %s", suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResults() string {
	return listExtraPaddingStyle.Render(b.resultsC.View())
}

func (b *statefulBubble) viewEpisodes() string {
	return listExtraPaddingStyle.Render(b.episodesC.View())
}

func (b *statefulBubble) viewCredits() string {
	return listExtraPaddingStyle.Render(b.creditsC.View())
}

func (b *statefulBubble) viewProvider() string {
	return listExtraPaddingStyle.Render(b.providerC.View())
}

func (b *statefulBubble) viewWatch() string {
	title, ok := b.engine.Selected().Get()
	if !ok {
		return b.renderLines(true, []string{style.Title("Watch"), "", "Nothing selected"})
	}

	kindIcon := icon.Get(icon.Movie)
	if title.IsSeries() {
		kindIcon = icon.Get(icon.Series)
	}

	lines := []string{
		style.Title("Watch"),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", kindIcon, style.Fg(color.Purple)(title.String()))),
	}

	if coordinate, ok := b.engine.Coordinate().Get(); ok {
		lines = append(lines, style.Faint(coordinate.String()))
	}

	lines = append(lines, "", fmt.Sprintf("Provider: %s", style.Fg(color.Cyan)(string(b.engine.Provider()))))

	if embed, ok := b.engine.EmbedURL().Get(); ok {
		lines = append(lines,
			"",
			style.Truncate(b.width)(icon.Get(icon.Link)+" "+style.Faint(embed)),
			"",
			fmt.Sprintf("%s to open in browser", style.Fg(color.Orange)("enter")),
		)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
