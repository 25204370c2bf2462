package verse

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses passage markup into a detached <div> holding the
// fragment's top-level nodes.
func ParseFragment(markup string) (*html.Node, error) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), root)
	if err != nil {
		return nil, fmt.Errorf("parse passage markup: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// RenderHTML serializes the children of root.
func RenderHTML(root *html.Node) (string, error) {
	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func hasClass(n *html.Node, cls string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, c := range classes(n) {
		if c == cls {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, cls string) {
	if hasClass(n, cls) {
		return
	}
	setAttr(n, "class", strings.TrimSpace(attr(n, "class")+" "+cls))
}

func removeClass(n *html.Node, cls string) {
	if !hasClass(n, cls) {
		return
	}
	kept := classes(n)[:0]
	for _, c := range classes(n) {
		if c != cls {
			kept = append(kept, c)
		}
	}
	setAttr(n, "class", strings.Join(kept, " "))
}

// HasClass reports whether n is an element carrying cls.
func HasClass(n *html.Node, cls string) bool { return hasClass(n, cls) }

// Attr returns the value of key on n, or "".
func Attr(n *html.Node, key string) string { return attr(n, key) }

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
