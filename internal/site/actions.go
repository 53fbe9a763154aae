package site

import (
	"context"
	"regexp"

	"github.com/greenpitch/greenpitch/internal/dom"
	"github.com/greenpitch/greenpitch/internal/models"
)

// Operations callable from markup as inline actions.
const (
	OpShowPage           = "showPage"
	OpShowSportDetail    = "showSportDetail"
	OpShowSportsOverview = "showSportsOverview"
	OpToggleTheme        = "toggleTheme"
	OpSwitchLang         = "switchLang"
)

// Action is an inline markup action such as showPage('sports').
type Action struct {
	Op  string
	Arg string
}

var actionPattern = regexp.MustCompile(`^\s*(\w+)\(\s*(?:'([^']*)'|"([^"]*)")?\s*\)\s*;?\s*$`)

// ParseAction reads an onclick value. Anything other than a single call to
// one of the public operations is rejected.
func ParseAction(s string) (Action, bool) {
	m := actionPattern.FindStringSubmatch(s)
	if m == nil {
		return Action{}, false
	}
	a := Action{Op: m[1], Arg: m[2]}
	if a.Arg == "" {
		a.Arg = m[3]
	}
	switch a.Op {
	case OpShowPage, OpShowSportDetail, OpSwitchLang:
		return a, a.Arg != ""
	case OpShowSportsOverview, OpToggleTheme:
		return a, true
	default:
		return Action{}, false
	}
}

func (v *View) runAction(ctx context.Context, a Action) {
	switch a.Op {
	case OpShowPage:
		v.showPage(a.Arg)
	case OpShowSportDetail:
		v.showSportDetail(a.Arg)
	case OpShowSportsOverview:
		v.showSportsOverview()
	case OpToggleTheme:
		v.toggleTheme(ctx)
	case OpSwitchLang:
		v.switchLang(ctx, models.Lang(a.Arg))
	}
}

// actionOf finds the inline action of el or its nearest ancestor carrying one.
func actionOf(el dom.Element) (Action, bool) {
	holder := el.Closest(dom.HasAttr(AttrOnClick))
	if !holder.Exists() {
		return Action{}, false
	}
	raw, _ := holder.Attr(AttrOnClick)
	return ParseAction(raw)
}
