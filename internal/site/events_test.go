package site

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpitch/greenpitch/internal/models"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Event
	}{
		{EventThemeToggled, ``, ThemeToggled{}},
		{EventMenuToggled, `null`, MenuToggled{}},
		{EventLanguageSwitched, `{"lang":"en"}`, LanguageSwitched{Lang: models.LangEN}},
		{EventPageRequested, `{"name":"sports"}`, PageRequested{Name: "sports"}},
		{EventKeyPressed, `{"key":"s","alt":true}`, KeyPressed{Key{Key: "s", Alt: true}}},
		{EventKeyPressed, `{"key":"Enter","target":"card-football"}`, KeyPressed{Key{Key: "Enter", TargetID: "card-football"}}},
		{EventFormSubmitted, `{"values":{"name":"Ana"}}`, FormSubmitted{Values: map[string]string{"name": "Ana"}}},
		{EventPerformanceObserved, `{"name":"paint","duration_ms":12.5}`, PerformanceObserved{Name: "paint", DurationMS: 12.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := DecodeEvent(tt.name, []byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
			assert.Equal(t, tt.name, ev.EventName())
		})
	}
}

func TestDecodeEventErrors(t *testing.T) {
	_, err := DecodeEvent("teleport", nil)
	assert.True(t, errors.Is(err, ErrUnknownEvent))

	_, err = DecodeEvent(EventPageRequested, []byte(`{"name":`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnknownEvent))
}

func TestEveryDecodableEventHasAHandler(t *testing.T) {
	var decodable []string
	for name := range decoders {
		decodable = append(decodable, name)
	}
	registered := DefaultRegistry.Names()
	sort.Strings(decodable)
	sort.Strings(registered)
	assert.Equal(t, decodable, registered)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.view.Dispatch(ctx, PageRequested{Name: "contact"})
	require.NoError(t, err)
	assert.Equal(t, []string{"page-contact"}, activePages(f))

	_, err = f.view.Dispatch(ctx, LanguageSwitched{Lang: models.LangEN})
	require.NoError(t, err)
	assert.Equal(t, models.LangEN, f.view.Lang())

	_, err = f.view.Dispatch(ctx, ThemeToggled{})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, f.view.State().Theme)

	out, err := f.view.Dispatch(ctx, AnchorFollowed{Href: "#values"})
	require.NoError(t, err)
	assert.True(t, out.PreventDefault)
}

func TestDispatchUnknownEvent(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Registry = NewRegistry() })

	_, err := f.view.Dispatch(context.Background(), ThemeToggled{})
	assert.True(t, errors.Is(err, ErrUnknownEvent))
}

func TestDispatchWrongEventType(t *testing.T) {
	r := NewRegistry()
	r.Register(EventPageRequested, handle(func(context.Context, *View, ThemeToggled) Outcome { return handled }))
	f := newFixture(t, func(o *Options) { o.Registry = r })

	_, err := f.view.Dispatch(context.Background(), PageRequested{Name: "sports"})
	assert.True(t, errors.Is(err, ErrEventType))
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
		ok   bool
	}{
		{"showPage('sports')", Action{Op: OpShowPage, Arg: "sports"}, true},
		{`showPage("contact");`, Action{Op: OpShowPage, Arg: "contact"}, true},
		{" showSportDetail( 'football' ) ", Action{Op: OpShowSportDetail, Arg: "football"}, true},
		{"showSportsOverview()", Action{Op: OpShowSportsOverview}, true},
		{"toggleTheme()", Action{Op: OpToggleTheme}, true},
		{"switchLang('en')", Action{Op: OpSwitchLang, Arg: "en"}, true},
		{"showPage()", Action{}, false},
		{"alert('x')", Action{}, false},
		{"showPage('a'); toggleTheme()", Action{}, false},
		{"", Action{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAction(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
