// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/hydra-cli/hydra/catalog"
	"github.com/hydra-cli/hydra/color"
	"github.com/hydra-cli/hydra/history"
	"github.com/hydra-cli/hydra/internal/ui"
	"github.com/hydra-cli/hydra/open"
	"github.com/hydra-cli/hydra/playback"
	"github.com/hydra-cli/hydra/query"
	"github.com/hydra-cli/hydra/session"
	"github.com/hydra-cli/hydra/style"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process ephemeral UI notifications (captures `string` and `ui.ClearNotificationMsg`)
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		}

		// Ignore non-priority keys during asynchronous operations.
		if b.loading && b.state != watchState && b.state != errorState {
			return b, nil
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			onListBack := func(l *list.Model) tea.Cmd {
				l.ResetSelected()
				l.ResetFilter()
				return tea.Batch(cmd, l.NewStatusMessage(""))
			}

			switch b.state {
			case searchState:
				b.inputC.SetValue("")
				b.searchSuggestion = mo.None[string]()
			case homeState:
				if b.homeC.FilterState() != list.Unfiltered {
					b.homeC, cmd = b.homeC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.homeC)
			case historyState:
				if b.historyC.FilterState() != list.Unfiltered {
					b.historyC, cmd = b.historyC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.historyC)
			case resultsState:
				if b.resultsC.FilterState() != list.Unfiltered {
					b.resultsC, cmd = b.resultsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.resultsC)
			case episodesState:
				if b.episodesC.FilterState() != list.Unfiltered {
					b.episodesC, cmd = b.episodesC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.episodesC)
			case creditsState:
				if b.creditsC.FilterState() != list.Unfiltered {
					b.creditsC, cmd = b.creditsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.creditsC)
			case providerState:
				if b.providerC.FilterState() != list.Unfiltered {
					b.providerC, cmd = b.providerC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.providerC)
			}

			b.previousState()
			b.stopLoading()
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.provider) && b.state != searchState && b.state != providerState:
			b.newState(providerState)
			return b, b.loadProviders()
		case bubblesKey.Matches(msg, b.keymap.home) && b.state != searchState && b.state != homeState:
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadHome(), b.waitForHome(), b.spinnerC.Tick)
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case homeState:
		return b.updateHome(msg)
	case historyState:
		return b.updateHistory(msg)
	case searchState:
		return b.updateSearch(msg)
	case resultsState:
		return b.updateResults(msg)
	case episodesState:
		return b.updateEpisodes(msg)
	case creditsState:
		return b.updateCredits(msg)
	case providerState:
		return b.updateProvider(msg)
	case watchState:
		return b.updateWatch(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds = make([]tea.Cmd, 0)
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
			} else {
				return b, tea.Quit
			}
		}
	case []catalog.Title:
		items := make([]list.Item, len(msg))
		for i := range msg {
			items[i] = &listItem{internal: msg[i]}
		}

		cmds = append(cmds, b.resultsC.SetItems(items))
		b.newState(resultsState)
		b.stopLoading()
	case session.Home:
		items := make([]list.Item, 0, len(msg.Continue)+len(msg.Latest))
		for _, watch := range msg.Continue {
			items = append(items, &listItem{internal: watch})
		}
		for i := range msg.Latest {
			items = append(items, &listItem{internal: msg.Latest[i]})
		}

		cmds = append(cmds, b.homeC.SetItems(items))
		b.newState(homeState)
		b.stopLoading()

		if msg.LatestErr != nil {
			cmds = append(cmds, b.homeC.NewStatusMessage(style.Fg(color.Red)("Latest releases unavailable")))
		}
	case selectionReadyMsg:
		b.stopLoading()
		return b.showSelection()
	case watchDoneMsg:
		b.stopLoading()
		b.newState(watchState)
		cmds = append(cmds, ui.Notify("Opened in browser"))
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, tea.Batch(append(cmds, cmd)...)
}

// showSelection routes to the view matching the selected title: episodes
// for a series, the playback surface for a movie.
func (b *statefulBubble) showSelection() (tea.Model, tea.Cmd) {
	title, ok := b.engine.Selected().Get()
	if !ok {
		b.newState(searchState)
		return b, nil
	}

	if !title.IsSeries() {
		b.newState(watchState)
		return b, nil
	}

	episodes := b.engine.Episodes()
	items := make([]list.Item, len(episodes))
	for i := range episodes {
		items[i] = &listItem{internal: episodes[i]}
	}

	cmd := b.episodesC.SetItems(items)
	b.episodesC.Title = fmt.Sprintf("Episodes - %s", title.String())

	// Restore the cursor when the selection carries an episode coordinate.
	if coordinate, ok := b.engine.Coordinate().Get(); ok {
		for i := range episodes {
			if episodes[i].Coordinate() == coordinate {
				b.episodesC.Select(i)
				break
			}
		}
	}

	b.newState(episodesState)

	if err := b.engine.Errors().Episodes; err != nil {
		return b, tea.Batch(cmd, b.episodesC.NewStatusMessage(style.Fg(color.Red)("Some episodes could not be loaded")))
	}
	return b, cmd
}

func (b *statefulBubble) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.homeC.Items()); n > 0 && b.homeC.Index() == 0 {
				b.homeC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.homeC.Items()); n > 0 && b.homeC.Index() == n-1 {
				b.homeC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.homeC.SelectedItem() == nil {
				break
			}

			switch selected := b.homeC.SelectedItem().(*listItem).internal.(type) {
			case catalog.Title:
				go query.Remember(selected.String(), 2)
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.selectTitle(selected), b.waitForSelection(), b.spinnerC.Tick)
			case *history.SavedWatch:
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.resumeWatch(selected), b.waitForSelection(), b.spinnerC.Tick)
			}
		}
	}

	b.homeC, cmd = b.homeC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == 0 {
				b.historyC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == n-1 {
				b.historyC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.historyC.SelectedItem() != nil {
				entry := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedWatch)
				_ = history.Remove(entry)
				cmd, err := b.loadHistory()
				if err != nil {
					b.raiseError(err)
					return b, nil
				}
				return b, cmd
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.historyC.SelectedItem() != nil {
				entry := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedWatch)
				provider, _ := playback.ParseProvider(entry.Provider)
				embed := playback.EmbedURL(catalog.Title{ID: entry.TitleID, Kind: catalog.Kind(entry.Kind)}, entry.Coordinate(), provider)
				if err := open.Start(embed); err != nil {
					b.raiseError(err)
				}
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.historyC.SelectedItem() != nil {
				entry := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedWatch)
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.resumeWatch(entry), b.waitForSelection(), b.spinnerC.Tick)
			}
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			b.progressStatus = fmt.Sprintf("Searching for %s", b.inputC.Value())
			b.startLoading()
			b.newState(loadingState)
			go query.Remember(b.inputC.Value(), 1)
			return b, tea.Batch(b.searchTitles(b.inputC.Value()), b.waitForTitles(), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)
	b.suggestSearch()

	return b, cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case []catalog.Title:
		items := make([]list.Item, len(msg))
		for i := range msg {
			items[i] = &listItem{internal: msg[i]}
		}
		return b, b.resultsC.SetItems(items)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == 0 {
				b.resultsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == n-1 {
				b.resultsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.loadMore):
			if !b.engine.HasMore() {
				return b, b.resultsC.NewStatusMessage("No more titles")
			}
			return b, tea.Batch(b.loadMoreTitles(), b.waitForTitles(), b.resultsC.StartSpinner())
		case bubblesKey.Matches(msg, b.keymap.sortResults):
			if !b.engine.Filters().Searching() {
				break
			}

			refinement := b.engine.Refinement()
			refinement.Order = refinement.Order.Next()
			b.engine.Refine(refinement)

			titles := b.engine.Titles()
			items := make([]list.Item, len(titles))
			for i := range titles {
				items[i] = &listItem{internal: titles[i]}
			}
			return b, tea.Batch(
				b.resultsC.SetItems(items),
				b.resultsC.NewStatusMessage(fmt.Sprintf("Sorted by %s", refinement.Order.Pretty())),
			)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.resultsC.SelectedItem() == nil {
				break
			}
			title := b.resultsC.SelectedItem().(*listItem).internal.(catalog.Title)
			go query.Remember(title.String(), 2)
			b.progressStatus = fmt.Sprintf("Loading %s", style.Fg(color.Purple)(title.String()))
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.selectTitle(title), b.waitForSelection(), b.spinnerC.Tick)
		}
	}

	b.resultsC, cmd = b.resultsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateEpisodes(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.episodesC.Items()); n > 0 && b.episodesC.Index() == 0 {
				b.episodesC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.episodesC.Items()); n > 0 && b.episodesC.Index() == n-1 {
				b.episodesC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.credits):
			return b, b.showCredits()
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.episodesC.SelectedItem() == nil {
				break
			}
			episode := b.episodesC.SelectedItem().(*listItem).internal.(catalog.Episode)
			b.engine.SelectEpisode(episode.Coordinate())
			if embed, ok := b.engine.EmbedURL().Get(); ok {
				if err := open.Start(embed); err != nil {
					b.raiseError(err)
				}
			}
		case bubblesKey.Matches(msg, b.keymap.watch):
			if b.episodesC.SelectedItem() == nil {
				break
			}
			episode := b.episodesC.SelectedItem().(*listItem).internal.(catalog.Episode)
			b.engine.SelectEpisode(episode.Coordinate())
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.watchSelected(), b.spinnerC.Tick)
		}
	}

	b.episodesC, cmd = b.episodesC.Update(msg)
	return b, cmd
}

// showCredits populates the credit list from the settled aggregate and
// transitions to it.
func (b *statefulBubble) showCredits() tea.Cmd {
	credits := b.engine.Credits()
	items := make([]list.Item, len(credits))
	for i := range credits {
		items[i] = &listItem{internal: credits[i]}
	}

	cmd := b.creditsC.SetItems(items)
	if title, ok := b.engine.Selected().Get(); ok {
		b.creditsC.Title = fmt.Sprintf("Credits - %s", title.String())
	}

	b.newState(creditsState)

	if err := b.engine.Errors().Credits; err != nil {
		return tea.Batch(cmd, b.creditsC.NewStatusMessage(style.Fg(color.Red)("Some credits could not be loaded")))
	}
	return cmd
}

func (b *statefulBubble) updateCredits(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.creditsC.Items()); n > 0 && b.creditsC.Index() == 0 {
				b.creditsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.creditsC.Items()); n > 0 && b.creditsC.Index() == n-1 {
				b.creditsC.Select(0)
				return b, nil
			}
		}
	}

	b.creditsC, cmd = b.creditsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateProvider(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.providerC.SelectedItem() == nil {
				break
			}
			provider := b.providerC.SelectedItem().(*listItem).internal.(playback.Provider)
			if err := b.engine.SetProvider(provider); err != nil {
				b.raiseError(err)
				return b, nil
			}
			b.previousState()
			return b, ui.Notify(fmt.Sprintf("Switched to %s", provider))
		}
	}

	b.providerC, cmd = b.providerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case watchDoneMsg:
		b.stopLoading()
		return b, ui.Notify("Opened in browser")
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.watchSelected(), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if embed, ok := b.engine.EmbedURL().Get(); ok {
				if err := open.Start(embed); err != nil {
					b.raiseError(err)
				}
			}
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, b.stopLoading()
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}
