package render

import (
	"fmt"
	"strings"

	"scripture-tui/internal/api"
	"scripture-tui/internal/highlight"
	"scripture-tui/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// Palette draws the highlight buttons. The armed button is bracketed and
// the keyboard cursor is underlined.
func Palette(buttons []highlight.Button, cursor int, th theme.Theme) string {
	parts := make([]string, 0, len(buttons))
	for i, b := range buttons {
		label := " " + b.Color.Name() + " "
		if b.Armed {
			label = "[" + b.Color.Name() + "]"
		}
		s := lipgloss.NewStyle().Foreground(th.OnHighlight)
		if bg, ok := theme.Swatch(b.Color); ok {
			s = s.Background(bg)
		}
		if b.Armed {
			s = s.Bold(true)
		}
		if i == cursor {
			s = s.Underline(true)
		}
		parts = append(parts, s.Render(label))
	}
	return strings.Join(parts, " ")
}

// History lists past queries with the selected one marked.
func History(items []string, selected int, th theme.Theme) string {
	if len(items) == 0 {
		return lipgloss.NewStyle().Foreground(th.Muted).Render("No history yet.")
	}
	var sb strings.Builder
	for i, q := range items {
		prefix := "  "
		s := lipgloss.NewStyle().Foreground(th.Primary)
		if i == selected {
			prefix = "> "
			s = s.Foreground(th.BorderActive).Bold(true)
		}
		sb.WriteString(s.Render(prefix+q) + "\n")
	}
	return sb.String()
}

// SearchResults lists "reference -- content" lines for a search.
func SearchResults(results []api.SearchResult, selected int, th theme.Theme, width int) string {
	if len(results) == 0 {
		return lipgloss.NewStyle().Foreground(th.Muted).Render("No results.")
	}
	refStyle := lipgloss.NewStyle().Foreground(th.BorderActive).Underline(true)
	textStyle := lipgloss.NewStyle().Foreground(th.Primary)
	if width > 0 {
		textStyle = textStyle.Width(width)
	}

	var sb strings.Builder
	for i, res := range results {
		prefix := "  "
		if i == selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s -- %s", prefix, refStyle.Render(res.Reference), res.Content)
		sb.WriteString(textStyle.Render(line) + "\n\n")
	}
	return sb.String()
}

// Options shows the three passage toggles.
func Options(opts api.PassageOptions, th theme.Theme) string {
	box := func(on bool, label string) string {
		if on {
			return "[x] " + label
		}
		return "[ ] " + label
	}
	return lipgloss.NewStyle().Foreground(th.Secondary).Render(strings.Join([]string{
		box(opts.Headings, "headings (g)"),
		box(opts.Extras, "extras (x)"),
		box(opts.Numbers, "numbers (#)"),
	}, "  "))
}
