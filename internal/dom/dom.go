// Package dom is a small mutable document model over golang.org/x/net/html.
//
// It offers the handful of operations the site controllers need: lookup by id,
// class and attribute, class lists, inline styles, text and inner HTML.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a parsed HTML tree.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{root: cloneNode(d.root)}
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() Element {
	return d.Find(ByTag("html"))
}

// Body returns the <body> element.
func (d *Document) Body() Element {
	return d.Find(ByTag("body"))
}

// GetElementByID returns the first element with the given id.
func (d *Document) GetElementByID(id string) Element {
	if id == "" {
		return Element{}
	}
	return d.Find(ByID(id))
}

// Find returns the first element, in document order, matching m.
func (d *Document) Find(m Matcher) Element {
	return Element{n: d.root}.Find(m)
}

// FindAll returns every element, in document order, matching m.
func (d *Document) FindAll(m Matcher) []Element {
	return Element{n: d.root}.FindAll(m)
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) Element {
	return Element{n: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}
