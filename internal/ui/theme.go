package ui

import "strings"

// Theme bundles palette, symbols and panel borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending string
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	// SymDone marks completed counts and OK lines, SymUnchecked active counts.
	SymDone, SymUnchecked string
	// NoColor themes never emit escape codes, even when forced.
	NoColor bool
}

const defaultTheme = "classic"

var themes = map[string]Theme{
	"classic": {
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: symCheck, SymUnchecked: "•",
	},
	"neon": {
		Title: "\033[1;95m", Muted: "\033[35m", Accent: "\033[96m",
		Success: "\033[92m", Error: "\033[91m", Pending: "\033[93m",
		BoxUnchecked: "◇", BoxChecked: "◆",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "═", V: "║",
		SymDone: "★", SymUnchecked: "☆",
	},
	"mono": {
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
		SymDone: "x", SymUnchecked: "-",
		NoColor: true,
	},
}

var current Theme

func init() { SetTheme(defaultTheme) }

// Themes lists the theme names SetTheme accepts, in display order.
func Themes() []string { return []string{"classic", "neon", "mono"} }

// SetTheme switches the palette. Unknown names fall back to classic.
func SetTheme(name string) {
	name = strings.ToLower(name)
	t, ok := themes[name]
	if !ok {
		name, t = defaultTheme, themes[defaultTheme]
	}
	t.Name = name
	current = t
	disableColor = t.NoColor
}

// Current is the active theme.
func Current() Theme { return current }
