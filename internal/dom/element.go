package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is an element node with its event listeners.
type Element struct {
	doc       *Document
	node      *html.Node
	listeners []*listener
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return attr(e.node, "id")
}

// Attr returns the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether the class attribute lists name.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(attr(e.node, "class")) {
		if c == name {
			return true
		}
	}
	return false
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.element(p)
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	var nodes []*html.Node
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			nodes = append(nodes, c)
		}
	}
	return e.doc.elements(nodes)
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// Query returns the first descendant matching selector, or nil.
func (e *Element) Query(selector string) (*Element, error) {
	all, err := e.QueryAll(selector)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// QueryAll returns the descendants matching selector in document order.
func (e *Element) QueryAll(selector string) ([]*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	var nodes []*html.Node
	for _, n := range sel.MatchAll(e.node) {
		if n != e.node {
			nodes = append(nodes, n)
		}
	}
	return e.doc.elements(nodes), nil
}

// Matches reports whether the element matches selector.
func (e *Element) Matches(selector string) (bool, error) {
	sel, err := compile(selector)
	if err != nil {
		return false, err
	}
	return sel.Match(e.node), nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

func (e *Element) String() string {
	var b strings.Builder
	b.WriteString(e.node.Data)
	if id := e.ID(); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range strings.Fields(attr(e.node, "class")) {
		b.WriteString("." + c)
	}
	return b.String()
}
