package site

import (
	"context"
	"strings"

	"github.com/greenpitch/greenpitch/internal/dom"
	"github.com/greenpitch/greenpitch/internal/models"
)

// InitLanguage applies the persisted language. The document ships in the
// default language, so only a different stored value triggers a switch.
func (v *View) InitLanguage(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.initLanguage(ctx)
}

// SwitchLang makes lang current, persists it and re-renders every
// translatable element. Unknown codes are kept but translate nothing.
func (v *View) SwitchLang(ctx context.Context, lang models.Lang) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.switchLang(ctx, lang)
}

// UpdateLanguageContent re-renders every translatable element.
func (v *View) UpdateLanguageContent() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.updateLanguageContent()
}

// UpdateLanguageAttributes refreshes language-dependent aria labels.
func (v *View) UpdateLanguageAttributes() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.updateLanguageAttributes()
}

func (v *View) initLanguage(ctx context.Context) {
	saved, ok, err := v.storage.GetItem(ctx, models.PreferenceKeyLanguage)
	if err != nil {
		v.log.Warn("failed to read language preference", "error", err)
	}
	lang := models.DefaultLang
	if ok && saved != "" {
		lang = models.Lang(saved)
	}
	if lang != models.DefaultLang {
		v.switchLang(ctx, lang)
		return
	}
	v.state.Lang = lang
}

func (v *View) switchLang(ctx context.Context, lang models.Lang) {
	v.state.Lang = lang
	if err := v.storage.SetItem(ctx, models.PreferenceKeyLanguage, string(lang)); err != nil {
		v.log.Warn("failed to persist language", "lang", lang, "error", err)
	}

	v.doc.DocumentElement().SetAttr("lang", string(lang))

	for _, btn := range v.doc.FindAll(dom.ByClass(ClassLangButton)) {
		active := strings.ToLower(strings.TrimSpace(btn.Text())) == string(lang)
		btn.ToggleClass(ClassActive, active)
		btn.SetAttr(AttrAriaPressed, boolAttr(active))
	}

	v.updateLanguageContent()
	v.updateLanguageAttributes()
}

func (v *View) updateLanguageContent() {
	if err := v.catalog.apply(v.state.Lang); err != nil {
		v.log.Warn("failed to render translation", "lang", v.state.Lang, "error", err)
	}
}

func (v *View) updateLanguageAttributes() {
	if burger := v.doc.Find(dom.ByClass(ClassBurger)); burger.Exists() {
		burger.SetAttr(AttrAriaLabel, MessagesFor(v.state.Lang).OpenMenu)
	}
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
