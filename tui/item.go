// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/history"
	"github.com/hydra-cli/hydra/icon"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/playback"
	"github.com/hydra-cli/hydra/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// listItem implements the list.Item interface, wrapping various domain models for terminal display.
type listItem struct {
	internal interface{}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case catalog.Title:
		var sb strings.Builder
		if e.IsSeries() {
			sb.WriteString(icon.Get(icon.Series))
		} else {
			sb.WriteString(icon.Get(icon.Movie))
		}
		sb.WriteString(" ")
		sb.WriteString(e.String())
		if viper.GetBool(key.TUIShowIDs) {
			sb.WriteString(" ")
			sb.WriteString(style.Faint(e.ID))
		}
		title = sb.String()
	case catalog.Episode:
		title = fmt.Sprintf("%s %s", e.Coordinate(), e.Title)
	case catalog.Credit:
		title = e.Person.DisplayName
	case *history.SavedWatch:
		title = e.TitleName
	case playback.Provider:
		title = string(e)
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case catalog.Title:
		var parts []string

		if e.StartYear > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(fmt.Sprintf("%d", e.StartYear)))
		}

		if rating, ok := e.Rating.Get(); ok && rating.Aggregate > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.AccentColor).Render(
				fmt.Sprintf("%s %.1f", icon.Get(icon.Star), rating.Aggregate),
			))
		}

		if len(e.Genres) > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(strings.Join(e.Genres, ", ")))
		}

		description = strings.Join(parts, " • ")
	case catalog.Episode:
		if rating, ok := e.Rating.Get(); ok && rating.Aggregate > 0 {
			description = fmt.Sprintf("%s %.1f", icon.Get(icon.Star), rating.Aggregate)
		}
	case catalog.Credit:
		var parts []string
		parts = append(parts, e.Key().Category)
		if len(e.Characters) > 0 {
			parts = append(parts, "as "+strings.Join(e.Characters, ", "))
		}
		description = strings.Join(parts, " • ")
	case *history.SavedWatch:
		if coordinate, ok := e.Coordinate().Get(); ok {
			description = fmt.Sprintf("Last watched %s", coordinate)
		} else {
			description = "Watched"
		}
	case playback.Provider:
		description = "Streaming provider"
	case string:
		description = ""
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case catalog.Title:
		return e.String()
	case catalog.Episode:
		return e.Title
	case catalog.Credit:
		return e.Person.DisplayName
	case *history.SavedWatch:
		return e.TitleName
	case playback.Provider:
		return string(e)
	case string:
		return e
	default:
		return ""
	}
}
