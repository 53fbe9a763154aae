package site

import (
	"strings"

	"github.com/greenpitch/greenpitch/internal/dom"
	"github.com/greenpitch/greenpitch/internal/models"
)

// Catalog maps each translatable element to its per-language payloads.
// It is harvested from the data-<lang> attributes once per document.
type Catalog struct {
	entries []catalogEntry
	index   map[dom.Element]int
}

type catalogEntry struct {
	el    dom.Element
	texts map[models.Lang]string
}

// BuildCatalog scans every .lang element of doc.
func BuildCatalog(doc *dom.Document) *Catalog {
	c := &Catalog{index: make(map[dom.Element]int)}
	for _, el := range doc.FindAll(dom.ByClass(ClassLang)) {
		c.Set(el, harvest(el))
	}
	return c
}

func harvest(el dom.Element) map[models.Lang]string {
	texts := make(map[models.Lang]string)
	for _, lang := range models.SupportedLangs {
		if v, ok := el.Attr(payloadAttr(string(lang))); ok {
			texts[lang] = v
		}
	}
	return texts
}

// Set replaces the payloads of el, registering it if needed.
func (c *Catalog) Set(el dom.Element, texts map[models.Lang]string) {
	if i, ok := c.index[el]; ok {
		c.entries[i].texts = texts
		return
	}
	c.index[el] = len(c.entries)
	c.entries = append(c.entries, catalogEntry{el: el, texts: texts})
}

// Lookup returns the payload of el for lang.
func (c *Catalog) Lookup(el dom.Element, lang models.Lang) (string, bool) {
	i, ok := c.index[el]
	if !ok {
		return "", false
	}
	text, ok := c.entries[i].texts[lang]
	return text, ok && text != ""
}

// Len returns the number of translatable elements.
func (c *Catalog) Len() int { return len(c.entries) }

// apply renders every element for lang. Elements without a payload keep
// their current content.
func (c *Catalog) apply(lang models.Lang) error {
	for _, e := range c.entries {
		text, ok := e.texts[lang]
		if !ok || text == "" {
			continue
		}
		switch strings.ToLower(e.el.Tag()) {
		case "input", "textarea":
			e.el.SetAttr("placeholder", text)
		case "option":
			e.el.SetText(text)
		default:
			if err := e.el.SetInnerHTML(text); err != nil {
				return err
			}
		}
	}
	return nil
}
