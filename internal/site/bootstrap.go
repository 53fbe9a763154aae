package site

import (
	"context"

	"github.com/greenpitch/greenpitch/internal/dom"
)

// Boot initializes every controller in order. It runs once per View; later
// calls are ignored.
func (v *View) Boot(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.booted {
		return
	}
	v.booted = true

	v.initTheme(ctx)
	v.initLanguage(ctx)
	v.initNavigation()
	v.initForm()
	v.initKeyboardNavigation()
	v.updateLanguageAttributes()

	if v.caps.IntersectionObserver {
		v.observeImages()
	}
	v.perf = v.caps.PerformanceObserver
	v.idle.Touch()

	v.log.Debug("site ready",
		"theme", v.state.Theme,
		"lang", v.state.Lang,
		"translatable", v.catalog.Len(),
		"lazy_images", len(v.lazy))
}

// initNavigation puts the menu controls in their closed state.
func (v *View) initNavigation() {
	burger, links := v.menu()
	if !burger.Exists() || !links.Exists() {
		return
	}
	if !burger.HasAttr(AttrAriaExpanded) {
		burger.SetAttr(AttrAriaExpanded, boolAttr(links.HasClass(ClassActive)))
	}
	v.state.MenuOpen = links.HasClass(ClassActive)
}

// initForm marks every control untouched.
func (v *View) initForm() {
	form := v.form()
	if !form.Exists() {
		return
	}
	for _, input := range v.controls(form) {
		if input.HasAttr("required") && !input.HasAttr("aria-required") {
			input.SetAttr("aria-required", "true")
		}
	}
	v.log.Debug("contact form bound", "controls", len(v.controls(form)),
		"required", len(form.FindAll(dom.And(dom.ByClass(ClassFormControl), dom.HasAttr("required")))))
}
