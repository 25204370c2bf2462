package verse

import (
	"iter"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	anchorClass   = "va"
	verseNumClass = "verse-num"
)

// slice is one planned unit: the anchor that opens it and the siblings it
// will own.
type slice struct {
	parent *html.Node
	anchor *html.Node
	id     ID
	nodes  []*html.Node
	order  int
}

func isAnchor(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.A && hasClass(n, anchorClass)
}

func isBoundary(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return isAnchor(n) || hasClass(n, verseNumClass) || n.DataAtom == atom.P
}

// Segment wraps the content following each verse anchor under root into a
// verse container and yields the resulting units in document order.
//
// Collection stops at the next anchor, verse-number label or paragraph.
// Content before the first anchor, or after a label or paragraph, is left
// where it is. The sequence can be ranged over once; the tree is rewritten
// as it is consumed.
func Segment(root *html.Node) iter.Seq[*Unit] {
	consumed := false
	return func(yield func(*Unit) bool) {
		if consumed {
			return
		}
		consumed = true

		for _, s := range plan(root) {
			if !yield(s.materialize()) {
				return
			}
		}
	}
}

// plan collects every slice before anything is moved.
func plan(root *html.Node) []slice {
	order := make(map[*html.Node]int)
	var slices []slice
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		order[n] = len(order)
		var cur *slice
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isBoundary(c) {
				if cur != nil {
					slices = append(slices, *cur)
					cur = nil
				}
				if isAnchor(c) {
					cur = &slice{parent: n, anchor: c, id: ParseID(attr(c, "rel"))}
				}
				continue
			}
			if cur != nil {
				cur.nodes = append(cur.nodes, c)
			}
		}
		if cur != nil {
			slices = append(slices, *cur)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for i := range slices {
		slices[i].order = order[slices[i].anchor]
	}
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].order < slices[j].order })
	return slices
}

func (s slice) materialize() *Unit {
	container := &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span}
	addClass(container, ContainerClass)
	if !s.id.Inert() {
		setAttr(container, DataAttr, string(s.id))
	}

	s.parent.InsertBefore(container, s.anchor)
	for _, n := range s.nodes {
		s.parent.RemoveChild(n)
		container.AppendChild(n)
	}
	s.parent.RemoveChild(s.anchor)
	return newUnit(s.id, container)
}
