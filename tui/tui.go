// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Continue opens straight into the watch history instead of search.
	Continue bool
}

// Run starts the Bubble Tea application loop and blocks until it exits.
func Run(options *Options) error {
	bubble := newBubble(options)

	initial := searchState
	if options.Continue {
		if _, err := bubble.loadHistory(); err != nil {
			return err
		}
		initial = historyState
	}
	bubble.newState(initial)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
