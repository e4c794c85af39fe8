// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog Service - these keys configure the upstream media catalog endpoint and its request shaping.
const (
	CatalogBaseURL   = "catalog.base_url"
	CatalogPageLimit = "catalog.page_limit"
)

// Discovery & Search Interaction - these keys define the behavior of the discovery and search flows.
const (
	SearchDebounceMs           = "search.debounce_ms"
	SearchSuggestionLimit      = "search.suggestion_limit"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Media Playback - these keys maintain the state and configuration for embedded playback providers.
const (
	PlaybackProvider = "playback.provider"
	PlaybackApp      = "playback.app"
)

// History Tracking - these keys configure the persistence of media consumption state.
const (
	HistorySaveOnWatch = "history.save_on_watch"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowIDs            = "tui.show_ids"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
