package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is a parsed element tree. Elements are interned, so the same
// node always yields the same *Element.
type Document struct {
	mu     sync.Mutex
	node   *html.Node
	elems  map[*html.Node]*Element
	nextID ListenerID
}

// Parse parses an HTML document. Missing html, head and body elements are
// synthesized.
func Parse(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{
		node:  n,
		elems: make(map[*html.Node]*Element),
	}, nil
}

// ParseString parses an HTML document from s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the <html> element.
func (d *Document) Root() *Element {
	for c := d.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.element(c)
		}
	}
	return nil
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	el, _ := d.Query("body")
	return el
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) (*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	if n := sel.MatchFirst(d.node); n != nil {
		return d.element(n), nil
	}
	return nil, nil
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) ([]*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return d.elements(sel.MatchAll(d.node)), nil
}

// ByID returns the element with the given id attribute, or nil.
func (d *Document) ByID(id string) *Element {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type == html.ElementNode && attr(c, "id") == id {
				found = c
				return
			}
			walk(c)
		}
	}
	walk(d.node)
	if found == nil {
		return nil
	}
	return d.element(found)
}

func (d *Document) element(n *html.Node) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elementLocked(n)
}

func (d *Document) elementLocked(n *html.Node) *Element {
	if el, ok := d.elems[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elems[n] = el
	return el
}

func (d *Document) elements(nodes []*html.Node) []*Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*Element, len(nodes))
	for i, n := range nodes {
		out[i] = d.elementLocked(n)
	}
	return out
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	return sel, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
