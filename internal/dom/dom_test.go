package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<!DOCTYPE html><html lang="fr"><head><title>t</title></head><body>
<nav><ul class="nav-links"><li><a id="l1" class="nav-link active" data-page="accueil" href="#">A</a></li></ul></nav>
<div id="box" class="card big" style="display: none; color: red"><h1>Title</h1><p>Hello <b>you</b></p></div>
</body></html>`

func mustParse(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(sample)
	require.NoError(t, err)
	return doc
}

func TestLookup(t *testing.T) {
	doc := mustParse(t)

	box := doc.GetElementByID("box")
	require.True(t, box.Exists())
	assert.Equal(t, "div", box.Tag())
	assert.True(t, box.HasClass("card"))
	assert.False(t, doc.GetElementByID("missing").Exists())
	assert.Len(t, doc.FindAll(ByClass("nav-link")), 1)
	assert.Equal(t, "l1", doc.Find(AttrEquals("data-page", "accueil")).ID())
	assert.Equal(t, "html", doc.DocumentElement().Tag())
	assert.Equal(t, "body", doc.Body().Tag())
}

func TestClassesAndStyles(t *testing.T) {
	doc := mustParse(t)
	box := doc.GetElementByID("box")

	box.AddClass("active")
	box.AddClass("active")
	assert.Equal(t, []string{"card", "big", "active"}, box.Classes())

	box.ToggleClass("big", false)
	assert.Equal(t, []string{"card", "active"}, box.Classes())

	assert.Equal(t, "none", box.Style("display"))
	box.SetStyle("display", "grid")
	box.SetStyle("font-size", "16px")
	assert.Equal(t, "display: grid; color: red; font-size: 16px", mustAttr(t, box, "style"))
}

func TestInnerHTMLAndText(t *testing.T) {
	doc := mustParse(t)
	box := doc.GetElementByID("box")
	p := box.Find(ByTag("p"))

	assert.Equal(t, "Hello you", p.Text())
	require.NoError(t, p.SetInnerHTML("Salut <em>toi</em>"))
	assert.Equal(t, "Salut <em>toi</em>", p.InnerHTML())

	p.SetText("plain <b>")
	assert.Equal(t, "plain &lt;b&gt;", p.InnerHTML())
}

func TestTreeMutation(t *testing.T) {
	doc := mustParse(t)
	box := doc.GetElementByID("box")
	h1 := box.Find(ByTag("h1"))

	span := doc.CreateElement("span")
	span.SetAttr("id", "err")
	box.AppendChild(span)
	assert.True(t, box.Contains(span))
	assert.Equal(t, box, span.Parent())
	assert.Equal(t, box, h1.Closest(ByClass("card")))

	span.Remove()
	assert.False(t, doc.GetElementByID("err").Exists())
}

func TestCloneIsIndependent(t *testing.T) {
	doc := mustParse(t)
	clone := doc.Clone()

	clone.GetElementByID("box").AddClass("changed")
	assert.False(t, doc.GetElementByID("box").HasClass("changed"))
	assert.True(t, clone.GetElementByID("box").HasClass("changed"))
}

func TestMissingElementIsNoop(t *testing.T) {
	var e Element
	e.SetAttr("x", "y")
	e.AddClass("a")
	e.SetStyle("display", "none")
	assert.NoError(t, e.SetInnerHTML("<b>x</b>"))
	assert.Equal(t, "", e.Text())
	assert.False(t, e.Contains(e))
}

func mustAttr(t *testing.T, e Element, name string) string {
	t.Helper()
	v, ok := e.Attr(name)
	require.True(t, ok)
	return v
}
