package site

import (
	"strings"

	"github.com/greenpitch/greenpitch/internal/dom"
)

// ShowPage makes page-<name> the only active page. Unknown names change nothing.
func (v *View) ShowPage(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showPage(name)
}

// ShowSportDetail shows sport-<name> in place of the overview.
func (v *View) ShowSportDetail(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showSportDetail(name)
}

// ShowSportsOverview hides every sport detail and shows the overview grid.
func (v *View) ShowSportsOverview() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showSportsOverview()
}

// ToggleMenu opens or closes the mobile menu.
func (v *View) ToggleMenu() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.toggleMenu()
}

// FollowAnchor scrolls to an in-page anchor. It reports false for the
// anchors ShowPage owns ("#" and "#page-*").
func (v *View) FollowAnchor(href string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.followAnchor(href)
}

// HasPage reports whether the document has a page called name.
func (v *View) HasPage(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc.GetElementByID(PagePrefix + name).HasClass(ClassPageContent)
}

// HasSport reports whether the document has a detail view for sport name.
func (v *View) HasSport(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc.GetElementByID(SportPrefix + name).HasClass(ClassSportDetail)
}

func (v *View) showPage(name string) {
	target := v.doc.GetElementByID(PagePrefix + name)
	if !target.Exists() || !target.HasClass(ClassPageContent) {
		v.log.Debug("page not found", "page", name)
		return
	}

	for _, page := range v.doc.FindAll(dom.ByClass(ClassPageContent)) {
		page.RemoveClass(ClassActive)
	}
	target.AddClass(ClassActive)
	v.state.ActivePage = name

	for _, link := range v.doc.FindAll(dom.ByClass(ClassNavLink)) {
		link.RemoveClass(ClassActive)
		link.RemoveAttr(AttrAriaCurrent)
	}
	if link := v.doc.Find(dom.AttrEquals(AttrPage, name)); link.Exists() {
		link.AddClass(ClassActive)
		link.SetAttr(AttrAriaCurrent, "page")
	}

	v.closeMenu()
	v.scrollTo(ScrollTop, true)
	v.focus(v.doc.GetElementByID(IDMainContent))
}

func (v *View) showSportDetail(name string) {
	target := v.doc.GetElementByID(SportPrefix + name)
	if !target.Exists() || !target.HasClass(ClassSportDetail) {
		v.log.Debug("sport not found", "sport", name)
		return
	}

	v.doc.GetElementByID(IDSportsOverview).SetStyle("display", "none")
	for _, detail := range v.doc.FindAll(dom.ByClass(ClassSportDetail)) {
		detail.SetStyle("display", "none")
	}
	target.SetStyle("display", "block")
	v.state.ActiveSport = name

	v.scrollTo(ScrollTop, true)
	v.focusTarget(target.Find(dom.ByTag("h1")))
}

func (v *View) showSportsOverview() {
	for _, detail := range v.doc.FindAll(dom.ByClass(ClassSportDetail)) {
		detail.SetStyle("display", "none")
	}
	v.doc.GetElementByID(IDSportsOverview).SetStyle("display", "grid")
	v.state.ActiveSport = ""

	v.scrollTo(ScrollTop, true)
	v.focusTarget(v.doc.GetElementByID(IDSportsTitle))
}

func (v *View) menu() (burger, links dom.Element) {
	return v.doc.Find(dom.ByClass(ClassBurger)), v.doc.Find(dom.ByClass(ClassNavLinks))
}

func (v *View) toggleMenu() {
	burger, links := v.menu()
	if !burger.Exists() || !links.Exists() {
		return
	}
	open := !links.HasClass(ClassActive)
	links.ToggleClass(ClassActive, open)
	burger.SetAttr(AttrAriaExpanded, boolAttr(open))
	v.state.MenuOpen = open
	if !open {
		return
	}

	first := links.Find(dom.ByTag("a"))
	if !first.Exists() {
		return
	}
	// The menu has to be laid out before its first link can take focus.
	v.clock.AfterFunc(v.timings.MenuFocusDelay, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.focus(first)
	})
}

func (v *View) closeMenu() {
	burger, links := v.menu()
	links.RemoveClass(ClassActive)
	burger.SetAttr(AttrAriaExpanded, "false")
	v.state.MenuOpen = false
}

// clickOutsideMenu closes the menu when target is outside burger and links.
func (v *View) clickOutsideMenu(target dom.Element) {
	burger, links := v.menu()
	if !burger.Exists() || !links.Exists() {
		return
	}
	if burger.Contains(target) || links.Contains(target) {
		return
	}
	links.RemoveClass(ClassActive)
	burger.SetAttr(AttrAriaExpanded, "false")
	v.state.MenuOpen = false
}

// escapeMenu closes an open menu and hands focus back to its toggle.
func (v *View) escapeMenu() bool {
	burger, links := v.menu()
	if !burger.Exists() || !links.HasClass(ClassActive) {
		return false
	}
	links.RemoveClass(ClassActive)
	burger.SetAttr(AttrAriaExpanded, "false")
	v.state.MenuOpen = false
	v.focus(burger)
	return true
}

func (v *View) followAnchor(href string) bool {
	if !strings.HasPrefix(href, "#") || href == "#" || strings.HasPrefix(href, "#"+PagePrefix) {
		return false
	}
	target := v.doc.GetElementByID(strings.TrimPrefix(href, "#"))
	if !target.Exists() {
		return true
	}
	v.scrollTo(target.ID(), true)
	v.focus(target)
	return true
}
