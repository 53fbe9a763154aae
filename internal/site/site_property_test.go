//go:build property
// +build property

package site

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/greenpitch/greenpitch/internal/models"
)

// TestValidationProperties checks the field rules against generated input.
func TestValidationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: any mix of phone characters is accepted
	properties.Property("phone alphabet accepted", prop.ForAll(
		func(phone string) bool {
			return Check(Field{Type: "tel", Value: phone}) == RuleNone
		},
		gen.RegexMatch(`^[0-9 \-\+\(\)]{1,20}$`),
	))

	// Property: a single letter anywhere rejects the number
	properties.Property("phone with letter rejected", prop.ForAll(
		func(prefix, letter, suffix string) bool {
			return Check(Field{Type: "tel", Value: "1" + prefix + letter + suffix}) == RulePhone
		},
		gen.RegexMatch(`^[0-9 ]{0,6}$`),
		gen.RegexMatch(`^[a-zA-Z]$`),
		gen.RegexMatch(`^[0-9 ]{0,6}$`),
	))

	// Property: local@domain.tld shapes are accepted
	properties.Property("email shape accepted", prop.ForAll(
		func(local, domain, tld string) bool {
			return Check(Field{Type: "email", Required: true, Value: local + "@" + domain + "." + tld}) == RuleNone
		},
		gen.RegexMatch(`^[a-z0-9._]{1,12}$`),
		gen.RegexMatch(`^[a-z0-9-]{1,12}$`),
		gen.RegexMatch(`^[a-z]{2,6}$`),
	))

	// Property: required fields of only whitespace always fail first
	properties.Property("blank required fails", prop.ForAll(
		func(blank string, typ string) bool {
			return Check(Field{Type: typ, Required: true, Value: blank}) == RuleRequired
		},
		gen.RegexMatch(`^[ \t\n]{0,8}$`),
		gen.OneConstOf("text", "email", "tel", "select"),
	))

	properties.TestingRun(t)
}

// TestViewProperties checks state invariants over generated event sequences.
func TestViewProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	pages := []string{"accueil", "sports", "contact", "missing"}
	sports := []string{"football", "basketball", "", "curling"}

	// Property: exactly one page is active after any navigation sequence
	properties.Property("one active page", prop.ForAll(
		func(picks []int) bool {
			f := newFixture(t)
			for _, p := range picks {
				f.view.ShowPage(pages[p])
			}
			return len(activePages(f)) == 1
		},
		gen.SliceOfN(6, gen.IntRange(0, len(pages)-1)),
	))

	// Property: exactly one sport view is visible after any sequence
	properties.Property("one sport view", prop.ForAll(
		func(picks []int) bool {
			f := newFixture(t)
			for _, p := range picks {
				if sports[p] == "" {
					f.view.ShowSportsOverview()
					continue
				}
				f.view.ShowSportDetail(sports[p])
			}
			return len(visibleSportViews(f)) == 1
		},
		gen.SliceOfN(6, gen.IntRange(0, len(sports)-1)),
	))

	// Property: toggling the theme twice restores it
	properties.Property("theme toggle involution", prop.ForAll(
		func(toggles int) bool {
			ctx := context.Background()
			f := newFixture(t)
			start := f.view.State().Theme
			for i := 0; i < toggles*2; i++ {
				f.view.ToggleTheme(ctx)
			}
			return f.view.State().Theme == start && f.rootAttr(AttrTheme) == string(start)
		},
		gen.IntRange(0, 4),
	))

	// Property: ending on French restores the original French markup
	properties.Property("french round trip", prop.ForAll(
		func(langs []bool) bool {
			ctx := context.Background()
			f := newFixture(t)
			want := f.el("accueil-intro").InnerHTML()
			for _, en := range langs {
				if en {
					f.view.SwitchLang(ctx, models.LangEN)
				} else {
					f.view.SwitchLang(ctx, models.LangFR)
				}
			}
			f.view.SwitchLang(ctx, models.LangFR)
			return f.el("accueil-intro").InnerHTML() == want
		},
		gen.SliceOfN(5, gen.Bool()),
	))

	properties.TestingRun(t)
}
