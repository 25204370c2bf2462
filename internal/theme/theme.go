package theme

import (
	"scripture-tui/internal/highlight"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the reader
type Theme struct {
	Name string

	// Text colors
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Error         lipgloss.Color
	WordsOfChrist lipgloss.Color

	// UI element colors
	Border       lipgloss.Color
	BorderActive lipgloss.Color
	Background   lipgloss.Color
	// Foreground used on top of a highlight swatch
	OnHighlight lipgloss.Color
}

var (
	Dark = Theme{
		Name:          "dark",
		Primary:       lipgloss.Color("#cdd6f4"),
		Secondary:     lipgloss.Color("#a6adc8"),
		Accent:        lipgloss.Color("#f5c2e7"),
		Muted:         lipgloss.Color("#6c7086"),
		Error:         lipgloss.Color("#f38ba8"),
		WordsOfChrist: lipgloss.Color("#f38ba8"),
		Border:        lipgloss.Color("#45475a"),
		BorderActive:  lipgloss.Color("#89b4fa"),
		Background:    lipgloss.Color("#313244"),
		OnHighlight:   lipgloss.Color("#ffffff"),
	}

	Light = Theme{
		Name:          "light",
		Primary:       lipgloss.Color("#4c4f69"),
		Secondary:     lipgloss.Color("#5c5f77"),
		Accent:        lipgloss.Color("#ea76cb"),
		Muted:         lipgloss.Color("#9ca0b0"),
		Error:         lipgloss.Color("#d20f39"),
		WordsOfChrist: lipgloss.Color("#d20f39"),
		Border:        lipgloss.Color("#dce0e8"),
		BorderActive:  lipgloss.Color("#1e66f5"),
		Background:    lipgloss.Color("#e6e9ef"),
		OnHighlight:   lipgloss.Color("#ffffff"),
	}
)

// GetTheme returns a theme by name, defaulting to Dark if not found
func GetTheme(name string) Theme {
	if name == Light.Name {
		return Light
	}
	return Dark
}

// Toggle switches between dark and light.
func (t Theme) Toggle() Theme {
	if t.Name == Dark.Name {
		return Light
	}
	return Dark
}

// Tailwind 600 shades, keyed by palette token.
var swatches = map[highlight.Color]lipgloss.Color{
	"bg-red-600":     "#dc2626",
	"bg-blue-600":    "#2563eb",
	"bg-green-600":   "#16a34a",
	"bg-yellow-600":  "#ca8a04",
	"bg-pink-600":    "#db2777",
	"bg-indigo-600":  "#4f46e5",
	"bg-teal-600":    "#0d9488",
	"bg-cyan-600":    "#0891b2",
	"bg-lime-600":    "#65a30d",
	"bg-emerald-600": "#059669",
	"bg-orange-600":  "#ea580c",
	"bg-amber-600":   "#d97706",
	"bg-fuchsia-600": "#c026d3",
	"bg-rose-600":    "#e11d48",
	"bg-violet-600":  "#7c3aed",
	"bg-sky-600":     "#0284c7",
}

// Swatch returns the terminal color for a highlight token.
func Swatch(c highlight.Color) (lipgloss.Color, bool) {
	col, ok := swatches[c]
	return col, ok
}
