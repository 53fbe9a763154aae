package dom

import "strings"

// Matcher selects elements.
type Matcher func(Element) bool

// ByID matches the id attribute.
func ByID(id string) Matcher {
	return func(e Element) bool { return e.ID() == id }
}

// ByTag matches the tag name.
func ByTag(tag string) Matcher {
	tag = strings.ToLower(tag)
	return func(e Element) bool { return e.Tag() == tag }
}

// ByClass matches a class list entry.
func ByClass(class string) Matcher {
	return func(e Element) bool { return e.HasClass(class) }
}

// HasAttr matches the presence of an attribute.
func HasAttr(name string) Matcher {
	return func(e Element) bool { return e.HasAttr(name) }
}

// AttrEquals matches an attribute value exactly.
func AttrEquals(name, value string) Matcher {
	return func(e Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

// AttrPrefix matches an attribute whose value starts with prefix.
func AttrPrefix(name, prefix string) Matcher {
	return func(e Element) bool {
		v, ok := e.Attr(name)
		return ok && strings.HasPrefix(v, prefix)
	}
}

// And matches when all matchers do.
func And(ms ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range ms {
			if !m(e) {
				return false
			}
		}
		return true
	}
}

// Or matches when any matcher does.
func Or(ms ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range ms {
			if m(e) {
				return true
			}
		}
		return false
	}
}
