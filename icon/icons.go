package icon

// Icon identifies a single UI symbol in the global registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Search
	Mark
	Link
	Movie
	Series
	Star
)

// icons maps each Icon identifier to its multi-variant visual definitions.
var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "[ok]",
		kaomoji: "(￣▽￣)",
		squares: "■",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "[!]",
		kaomoji: "(╯°□°）╯",
		squares: "□",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・・；)",
		squares: "▣",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "[?]",
		kaomoji: "(・_・)",
		squares: "▢",
	},
	Mark: {
		emoji:   "🟢",
		nerd:    "",
		plain:   "*",
		kaomoji: "(°°)",
		squares: "▪",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "->",
		kaomoji: "(つ￣з￣)つ",
		squares: "▫",
	},
	Movie: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "[m]",
		kaomoji: "(｡◕‿◕｡)",
		squares: "◼",
	},
	Series: {
		emoji:   "📺",
		nerd:    "",
		plain:   "[tv]",
		kaomoji: "(＾▽＾)",
		squares: "◻",
	},
	Star: {
		emoji:   "⭐",
		nerd:    "",
		plain:   "*",
		kaomoji: "(☆▽☆)",
		squares: "✦",
	},
}
