// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/color"
	"github.com/hydra-cli/hydra/history"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/log"
	"github.com/hydra-cli/hydra/open"
	"github.com/hydra-cli/hydra/playback"
	"github.com/hydra-cli/hydra/query"
	"github.com/hydra-cli/hydra/style"
	"github.com/hydra-cli/hydra/util"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) loadProviders() tea.Cmd {
	items := lo.Map(playback.Providers(), func(p playback.Provider, _ int) list.Item {
		return &listItem{internal: p}
	})
	return b.providerC.SetItems(items)
}

func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	saved, err := history.Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].WatchedAt.After(entries[j].WatchedAt)
	})

	var items []list.Item
	for _, e := range entries {
		items = append(items, &listItem{internal: e})
	}

	return tea.Batch(b.historyC.SetItems(items), b.loadProviders()), nil
}

func (b *statefulBubble) loadHome() tea.Cmd {
	return func() tea.Msg {
		b.progressStatus = "Loading latest releases"
		b.homeChannel <- b.engine.Home()
		return nil
	}
}

func (b *statefulBubble) waitForHome() tea.Cmd {
	return func() tea.Msg {
		select {
		case home := <-b.homeChannel:
			return home
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) searchTitles(query string) tea.Cmd {
	return func() tea.Msg {
		log.Info("searching for " + query)
		b.progressStatus = fmt.Sprintf("Searching for %s", style.Fg(color.Purple)(query))

		filters := b.engine.Filters()
		filters.Query = query
		titles := b.engine.ApplyFilters(filters)

		if err := b.engine.Errors().Browse; err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		log.Infof("found %s", util.Quantify(len(titles), "title", "titles"))
		b.foundTitlesChannel <- titles
		return nil
	}
}

func (b *statefulBubble) loadMoreTitles() tea.Cmd {
	return func() tea.Msg {
		b.progressStatus = "Loading more titles"
		b.engine.LoadMore()

		if err := b.engine.Errors().Browse; err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		b.foundTitlesChannel <- b.engine.Titles()
		return nil
	}
}

func (b *statefulBubble) waitForTitles() tea.Cmd {
	return func() tea.Msg {
		select {
		case found := <-b.foundTitlesChannel:
			return found
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

// selectionReadyMsg reports that the selected title's episodes and
// credits have settled.
type selectionReadyMsg struct{}

func (b *statefulBubble) selectTitle(title catalog.Title) tea.Cmd {
	return func() tea.Msg {
		log.Info("selecting " + title.ID)
		b.progressStatus = fmt.Sprintf("Loading %s", style.Fg(color.Purple)(title.String()))

		// SelectTitle blocks until both aggregates settle. Per-area
		// failures degrade to empty lists instead of aborting.
		b.engine.SelectTitle(title)
		b.selectionChannel <- struct{}{}
		return nil
	}
}

func (b *statefulBubble) resumeWatch(watch *history.SavedWatch) tea.Cmd {
	return func() tea.Msg {
		log.Info("resuming " + watch.TitleID)
		b.progressStatus = fmt.Sprintf("Loading %s", style.Fg(color.Purple)(watch.TitleName))

		title, err := catalog.GetByID(watch.TitleID)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		b.engine.SelectTitle(*title)
		if coordinate, ok := watch.Coordinate().Get(); ok {
			b.engine.SelectEpisode(coordinate)
		}

		b.selectionChannel <- struct{}{}
		return nil
	}
}

func (b *statefulBubble) waitForSelection() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.selectionChannel:
			return selectionReadyMsg{}
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

// watchDoneMsg reports that the playback target was resolved and handed
// to the system handler.
type watchDoneMsg struct {
	embed string
}

func (b *statefulBubble) watchSelected() tea.Cmd {
	return func() tea.Msg {
		embed, ok := b.engine.Watch().Get()
		if !ok {
			b.errorChannel <- fmt.Errorf("nothing selected to watch")
			return nil
		}

		log.Info("opening " + embed)
		b.progressStatus = fmt.Sprintf("Opening %s", style.Fg(color.Purple)(embed))

		if err := open.StartWith(embed, viper.GetString(key.PlaybackApp)); err != nil {
			log.Error(err)
			b.lastError = err
			return err
		}

		return watchDoneMsg{embed: embed}
	}
}

// suggestSearch refreshes the inline suggestion for the current input.
func (b *statefulBubble) suggestSearch() {
	input := strings.TrimSpace(b.inputC.Value())
	if input == "" {
		b.searchSuggestion = mo.None[string]()
		return
	}

	b.searchSuggestion = query.Suggest(input)
}
