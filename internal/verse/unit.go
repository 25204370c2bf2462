package verse

import (
	"scripture-tui/internal/highlight"

	"golang.org/x/net/html"
)

const (
	// ContainerClass marks the element wrapping a verse unit.
	ContainerClass = "verse"
	// DataAttr carries the verse identifier on the container.
	DataAttr = "data-verse"
)

// SpanState is the emphasis of a words-of-Christ span inside a unit.
type SpanState int

const (
	Plain SpanState = iota
	Emphasized
)

// Class returns the markup class for the state.
func (s SpanState) Class() string {
	if s == Emphasized {
		return "woc-highlighted"
	}
	return "woc"
}

func (s SpanState) String() string {
	if s == Emphasized {
		return "emphasized"
	}
	return "plain"
}

func isMarkedSpan(n *html.Node) bool {
	return hasClass(n, Plain.Class()) || hasClass(n, Emphasized.Class())
}

// Unit is the clickable run of content belonging to one verse.
type Unit struct {
	ID    ID
	Node  *html.Node
	spans []*html.Node
}

func newUnit(id ID, container *html.Node) *Unit {
	u := &Unit{ID: id, Node: container}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isMarkedSpan(c) {
				u.spans = append(u.spans, c)
			}
			walk(c)
		}
	}
	walk(container)
	u.sync()
	return u
}

// Color returns the palette color on the container, or None.
func (u *Unit) Color() highlight.Color {
	for _, c := range highlight.Palette {
		if hasClass(u.Node, string(c)) {
			return c
		}
	}
	return highlight.None
}

// HasColor reports whether the container carries c.
func (u *Unit) HasColor(c highlight.Color) bool {
	return c != highlight.None && hasClass(u.Node, string(c))
}

// PaletteClasses lists every palette class present on the container.
func (u *Unit) PaletteClasses() []highlight.Color {
	var out []highlight.Color
	for _, c := range highlight.Palette {
		if hasClass(u.Node, string(c)) {
			out = append(out, c)
		}
	}
	return out
}

// Spans returns the state of each inner marked span in document order.
func (u *Unit) Spans() []SpanState {
	out := make([]SpanState, len(u.spans))
	for i, s := range u.spans {
		if hasClass(s, Emphasized.Class()) {
			out[i] = Emphasized
		} else {
			out[i] = Plain
		}
	}
	return out
}

// Text returns the unit's plain text.
func (u *Unit) Text() string {
	return textOf(u.Node)
}

func (u *Unit) apply(c highlight.Color) {
	u.stripPalette()
	addClass(u.Node, string(c))
	u.sync()
}

func (u *Unit) clear(c highlight.Color) {
	removeClass(u.Node, string(c))
	u.stripPalette()
	u.sync()
}

func (u *Unit) stripPalette() {
	for _, c := range highlight.Palette {
		removeClass(u.Node, string(c))
	}
}

// sync rewrites every marked span from the unit's own highlight state.
func (u *Unit) sync() {
	state := Plain
	if u.Color() != highlight.None {
		state = Emphasized
	}
	for _, s := range u.spans {
		removeClass(s, Plain.Class())
		removeClass(s, Emphasized.Class())
		addClass(s, state.Class())
	}
}
