// Package render turns segmented passage markup and reader state into
// terminal text.
package render

import (
	"strings"

	"scripture-tui/internal/highlight"
	"scripture-tui/internal/theme"
	"scripture-tui/internal/verse"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is a rendered passage.
type Page struct {
	Content string
	// UnitLines holds, per unit, the line its block starts on.
	UnitLines []int
}

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
)

type block struct {
	kind  blockKind
	parts []string
	units []int
}

// inline formatting in effect while walking
type state struct {
	heading bool
	label   bool
	unit    int
	color   highlight.Color
	woc     bool
	wocOn   bool
}

type passageRenderer struct {
	th      theme.Theme
	focused int
	index   map[*html.Node]int
	blocks  []block
	cur     *block
}

// Passage renders root, whose verse units must already be segmented and
// bound. The focused unit (index into units, -1 for none) is underlined.
func Passage(root *html.Node, units []*verse.Unit, focused int, th theme.Theme, width int) Page {
	r := &passageRenderer{
		th:      th,
		focused: focused,
		index:   make(map[*html.Node]int, len(units)),
	}
	for i, u := range units {
		r.index[u.Node] = i
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c, state{unit: -1})
	}
	r.flush()

	page := Page{UnitLines: make([]int, len(units))}
	body := lipgloss.NewStyle()
	if width > 0 {
		body = body.Width(width)
	}

	var out []string
	line := 0
	for _, b := range r.blocks {
		text := strings.TrimSpace(strings.Join(b.parts, ""))
		if text == "" {
			continue
		}
		rendered := body.Render(text)
		for _, u := range b.units {
			page.UnitLines[u] = line
		}
		out = append(out, rendered)
		line += lipgloss.Height(rendered) + 1
	}
	page.Content = strings.Join(out, "\n\n")
	return page
}

func isBlock(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Li, atom.Blockquote, atom.Table, atom.Tr:
		return true
	}
	return false
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func (r *passageRenderer) flush() {
	if r.cur != nil {
		r.blocks = append(r.blocks, *r.cur)
		r.cur = nil
	}
}

func (r *passageRenderer) block(kind blockKind) *block {
	if r.cur == nil {
		r.cur = &block{kind: kind}
	}
	return r.cur
}

func (r *passageRenderer) walk(n *html.Node, st state) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data, st)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style:
		return
	case atom.Br:
		r.block(blockParagraph).parts = append(r.block(blockParagraph).parts, "\n")
		return
	}

	if i, ok := r.index[n]; ok {
		st.unit = i
		for _, c := range highlight.Palette {
			if verse.HasClass(n, string(c)) {
				st.color = c
				break
			}
		}
		b := r.block(blockParagraph)
		b.units = append(b.units, i)
	}
	if verse.HasClass(n, verse.Plain.Class()) {
		st.woc, st.wocOn = true, false
	}
	if verse.HasClass(n, verse.Emphasized.Class()) {
		st.woc, st.wocOn = true, true
	}
	if verse.HasClass(n, "verse-num") || verse.HasClass(n, "chapter-num") {
		st.label = true
	}

	blockLevel := isBlock(n)
	if blockLevel {
		r.flush()
		if isHeading(n) {
			st.heading = true
			r.block(blockHeading)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c, st)
	}
	if blockLevel {
		r.flush()
	}
}

func (r *passageRenderer) text(s string, st state) {
	s = collapseSpace(s)
	if s == "" || (s == " " && (r.cur == nil || len(r.cur.parts) == 0)) {
		return
	}
	kind := blockParagraph
	if st.heading {
		kind = blockHeading
	}
	b := r.block(kind)
	b.parts = append(b.parts, r.style(st).Render(s))
}

func (r *passageRenderer) style(st state) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(r.th.Primary)
	switch {
	case st.heading:
		s = s.Bold(true).Foreground(r.th.Accent)
	case st.label:
		s = s.Bold(true).Foreground(r.th.Muted)
	case st.woc && !st.wocOn:
		s = s.Foreground(r.th.WordsOfChrist)
	}
	if bg, ok := theme.Swatch(st.color); ok {
		s = s.Background(bg).Foreground(r.th.OnHighlight)
		if st.wocOn {
			s = s.Bold(true)
		}
	}
	if st.unit >= 0 && st.unit == r.focused {
		s = s.Underline(true)
	}
	return s
}

// collapseSpace folds runs of HTML whitespace into single spaces.
func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}
