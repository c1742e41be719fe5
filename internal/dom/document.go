package dom

import (
	"io"
	"slices"
	"strings"

	"github.com/asistenciav2/portal/internal/menu"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page exposed as a menu.Surface.
type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Document{root: root}, nil
}

func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Element implements menu.Surface.
func (d *Document) Element(id string) (menu.Element, bool) {
	var found *html.Node

	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}

		return true
	})

	if found == nil {
		return nil, false
	}

	return &Element{found}, true
}

// ElementsByClass implements menu.Surface.
func (d *Document) ElementsByClass(class string) []menu.Element {
	elements := make([]menu.Element, 0)

	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && slices.Contains(classes(n), class) {
			elements = append(elements, &Element{n})
		}

		return true
	})

	return elements
}

var _ menu.Surface = &Document{}

type Element struct {
	node *html.Node
}

// Clear implements menu.Element.
func (e *Element) Clear() {
	for c := e.node.FirstChild; c != nil; c = e.node.FirstChild {
		e.node.RemoveChild(c)
	}
}

// Append implements menu.Element.
func (e *Element) Append(node menu.Node) {
	var n *html.Node

	switch node.Kind {
	case menu.NodeHeader:
		n = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	default:
		n = &html.Node{Type: html.ElementNode, Data: "a", DataAtom: atom.A}
		setAttr(n, "href", node.Href)
		setAttr(n, "style", "display: block; text-decoration: none;")
	}

	if node.ID != "" {
		setAttr(n, "id", node.ID)
	}

	if node.Class != "" {
		setAttr(n, "class", node.Class)
	}

	n.AppendChild(&html.Node{Type: html.TextNode, Data: node.Text})

	e.node.AppendChild(n)
}

// SetText implements menu.Element.
func (e *Element) SetText(text string) {
	e.Clear()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// HasClass implements menu.Element.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(classes(e.node), class)
}

// ToggleClass implements menu.Element.
func (e *Element) ToggleClass(class string) bool {
	if e.HasClass(class) {
		e.RemoveClass(class)
		return false
	}

	setAttr(e.node, "class", strings.Join(append(classes(e.node), class), " "))

	return true
}

// RemoveClass implements menu.Element.
func (e *Element) RemoveClass(class string) {
	remaining := slices.DeleteFunc(classes(e.node), func(c string) bool {
		return c == class
	})

	setAttr(e.node, "class", strings.Join(remaining, " "))
}

// Text returns the concatenated text content of the element.
func (e *Element) Text() string {
	var sb strings.Builder

	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}

		return true
	})

	return sb.String()
}

var _ menu.Element = &Element{}

// walk visits the tree depth first until fn returns false.
func walk(n *html.Node, fn func(n *html.Node) bool) bool {
	if !fn(n) {
		return false
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}

	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}

	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}
