package site

import (
	"context"

	"github.com/greenpitch/greenpitch/internal/models"
)

// InitTheme applies the persisted theme, dark when none is stored.
func (v *View) InitTheme(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.initTheme(ctx)
}

// ToggleTheme flips dark and light, applies and persists the result.
func (v *View) ToggleTheme(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.toggleTheme(ctx)
}

func (v *View) initTheme(ctx context.Context) {
	saved, ok, err := v.storage.GetItem(ctx, models.PreferenceKeyTheme)
	if err != nil {
		v.log.Warn("failed to read theme preference", "error", err)
	}
	theme := models.DefaultTheme
	if ok {
		theme = models.ParseTheme(saved)
	}
	v.applyTheme(theme)
}

func (v *View) toggleTheme(ctx context.Context) {
	next := v.state.Theme.Toggle()
	v.applyTheme(next)
	if err := v.storage.SetItem(ctx, models.PreferenceKeyTheme, string(next)); err != nil {
		v.log.Warn("failed to persist theme", "theme", next, "error", err)
	}
	v.updateLanguageContent()
}

func (v *View) applyTheme(theme models.Theme) {
	v.state.Theme = theme
	v.doc.DocumentElement().SetAttr(AttrTheme, string(theme))
	v.updateThemeIcon()
}

// updateThemeIcon points the toggle at the theme it would switch to.
func (v *View) updateThemeIcon() {
	icon := v.doc.GetElementByID(IDThemeIcon)
	text := v.doc.GetElementByID(IDThemeText)
	if !icon.Exists() || !text.Exists() {
		return
	}

	icon.SetAttr("class", themeIcons[v.state.Theme])

	labels := themeLabels[v.state.Theme]
	for lang, label := range labels {
		text.SetAttr(payloadAttr(string(lang)), label)
	}
	if text.HasClass(ClassLang) {
		v.catalog.Set(text, copyLabels(labels))
	}
	if label, ok := labels[v.state.Lang]; ok {
		text.SetText(label)
	}
}

func copyLabels(labels map[models.Lang]string) map[models.Lang]string {
	out := make(map[models.Lang]string, len(labels))
	for k, l := range labels {
		out[k] = l
	}
	return out
}
