package site

import (
	"context"

	"github.com/greenpitch/greenpitch/internal/dom"
)

// Global Alt shortcuts and the page each one opens.
var shortcuts = map[string]string{
	"h": "accueil",
	"s": "sports",
	"c": "contact",
}

var activatable = dom.Or(dom.ByClass(ClassCard), dom.ByClass(ClassTeamCard), dom.ByClass(ClassGameCard))

// Key is a key press as reported by the client.
type Key struct {
	Key      string `json:"key"`
	Alt      bool   `json:"alt"`
	TargetID string `json:"target,omitempty"`
}

// initKeyboardNavigation makes cards and video boxes reachable by keyboard.
func (v *View) initKeyboardNavigation() {
	for _, el := range v.doc.FindAll(dom.Or(activatable, dom.ByClass(ClassVideoBox))) {
		if !el.HasAttr(AttrTabIndex) {
			el.SetAttr(AttrTabIndex, "0")
		}
	}
}

// KeyDown handles a key press anywhere in the document.
func (v *View) KeyDown(ctx context.Context, k Key) Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.keyDown(ctx, k)
}

// Click handles a pointer click on the element with the given id.
func (v *View) Click(ctx context.Context, targetID string) Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.click(ctx, v.doc.GetElementByID(targetID))
}

func (v *View) keyDown(ctx context.Context, k Key) Outcome {
	v.idle.Touch()
	var out Outcome

	if k.Key == "Escape" && v.escapeMenu() {
		out.Handled = true
	}

	if k.Alt {
		if page, ok := shortcuts[k.Key]; ok {
			v.showPage(page)
			out.Handled = true
			out.PreventDefault = true
			return out
		}
	}

	if k.Key == "Enter" || k.Key == " " {
		if card := v.doc.GetElementByID(k.TargetID); card.Exists() && activatable(card) {
			v.click(ctx, card)
			out.Handled = true
			out.PreventDefault = true
		}
	}
	return out
}

func (v *View) click(ctx context.Context, target dom.Element) Outcome {
	var out Outcome
	if action, ok := actionOf(target); ok {
		v.runAction(ctx, action)
		out.Handled = true
	}
	if burger := v.doc.Find(dom.ByClass(ClassBurger)); burger.Exists() && burger.Contains(target) {
		v.toggleMenu()
		out.Handled = true
	}
	v.clickOutsideMenu(target)
	return out
}
