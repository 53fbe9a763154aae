package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle on an element node. The zero value is a missing element
// and every mutator on it is a no-op.
type Element struct {
	n *html.Node
}

// Exists reports whether the handle points at a node.
func (e Element) Exists() bool { return e.n != nil }

// Tag returns the lower-case tag name.
func (e Element) Tag() string {
	if e.n == nil {
		return ""
	}
	return e.n.Data
}

// ID returns the id attribute.
func (e Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Attr returns the named attribute and whether it is present.
func (e Element) Attr(name string) (string, bool) {
	if e.n == nil {
		return "", false
	}
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (e Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets or replaces an attribute.
func (e Element) SetAttr(name, value string) {
	if e.n == nil {
		return
	}
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func (e Element) RemoveAttr(name string) {
	if e.n == nil {
		return
	}
	attrs := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.n.Attr = attrs
}

// Classes returns the class list.
func (e Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains name.
func (e Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list if missing.
func (e Element) AddClass(name string) {
	if e.n == nil || e.HasClass(name) {
		return
	}
	e.SetAttr("class", strings.Join(append(e.Classes(), name), " "))
}

// RemoveClass drops name from the class list.
func (e Element) RemoveClass(name string) {
	if e.n == nil || !e.HasClass(name) {
		return
	}
	var kept []string
	for _, c := range e.Classes() {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// ToggleClass adds name when on is true and removes it otherwise.
func (e Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

// Style returns the value of one inline style property.
func (e Element) Style(prop string) string {
	for _, d := range e.styleDecls() {
		if d[0] == prop {
			return d[1]
		}
	}
	return ""
}

// SetStyle sets one inline style property, keeping the others in order.
func (e Element) SetStyle(prop, value string) {
	if e.n == nil {
		return
	}
	decls := e.styleDecls()
	found := false
	for i := range decls {
		if decls[i][0] == prop {
			decls[i][1] = value
			found = true
		}
	}
	if !found {
		decls = append(decls, [2]string{prop, value})
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d[0]+": "+d[1])
	}
	e.SetAttr("style", strings.Join(parts, "; "))
}

func (e Element) styleDecls() [][2]string {
	v, _ := e.Attr("style")
	var decls [][2]string
	for _, part := range strings.Split(v, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		decls = append(decls, [2]string{strings.TrimSpace(prop), strings.TrimSpace(val)})
	}
	return decls
}

// Text returns the concatenated text content.
func (e Element) Text() string {
	if e.n == nil {
		return ""
	}
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
	walk(e.n)
	return sb.String()
}

// SetText replaces all children with a single text node.
func (e Element) SetText(s string) {
	if e.n == nil {
		return
	}
	e.clearChildren()
	if s != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}

// InnerHTML renders the element's children.
func (e Element) InnerHTML() string {
	if e.n == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// SetInnerHTML parses s in the element's context and replaces its children.
func (e Element) SetInnerHTML(s string) error {
	if e.n == nil {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), e.n)
	if err != nil {
		return err
	}
	e.clearChildren()
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

func (e Element) clearChildren() {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
}

// Parent returns the nearest element ancestor.
func (e Element) Parent() Element {
	if e.n == nil {
		return Element{}
	}
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return Element{n: p}
		}
	}
	return Element{}
}

// Closest returns e or its nearest ancestor matching m.
func (e Element) Closest(m Matcher) Element {
	for cur := e; cur.Exists(); cur = cur.Parent() {
		if m(cur) {
			return cur
		}
	}
	return Element{}
}

// Contains reports whether other is e or one of its descendants.
func (e Element) Contains(other Element) bool {
	if e.n == nil || other.n == nil {
		return false
	}
	for n := other.n; n != nil; n = n.Parent {
		if n == e.n {
			return true
		}
	}
	return false
}

// AppendChild attaches a detached element as the last child.
func (e Element) AppendChild(child Element) {
	if e.n == nil || child.n == nil {
		return
	}
	if child.n.Parent != nil {
		child.n.Parent.RemoveChild(child.n)
	}
	e.n.AppendChild(child.n)
}

// Remove detaches the element from its parent.
func (e Element) Remove() {
	if e.n == nil || e.n.Parent == nil {
		return
	}
	e.n.Parent.RemoveChild(e.n)
}

// Find returns the first descendant matching m.
func (e Element) Find(m Matcher) Element {
	if e.n == nil {
		return Element{}
	}
	var found Element
	walkElements(e.n, func(n *html.Node) bool {
		if el := (Element{n: n}); n != e.n && m(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant matching m in document order.
func (e Element) FindAll(m Matcher) []Element {
	if e.n == nil {
		return nil
	}
	var out []Element
	walkElements(e.n, func(n *html.Node) bool {
		if el := (Element{n: n}); n != e.n && m(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// walkElements visits element nodes depth first until fn returns false.
func walkElements(n *html.Node, fn func(*html.Node) bool) bool {
	if n.Type == html.ElementNode {
		if !fn(n) {
			return false
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walkElements(c, fn) {
			return false
		}
	}
	return true
}
