package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/greenpitch/greenpitch/internal/models"
)

var (
	// ErrUnknownEvent is returned for events without a registered handler.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrEventType is returned when a handler receives another event type.
	ErrEventType = errors.New("unexpected event type")
)

// Event names.
const (
	EventThemeToggled         = "theme_toggled"
	EventLanguageSwitched     = "language_switched"
	EventPageRequested        = "page_requested"
	EventSportRequested       = "sport_requested"
	EventOverviewRequested    = "overview_requested"
	EventMenuToggled          = "menu_toggled"
	EventClicked              = "clicked"
	EventKeyPressed           = "key_pressed"
	EventFieldFocused         = "field_focused"
	EventFieldBlurred         = "field_blurred"
	EventFieldInput           = "field_input"
	EventFormSubmitted        = "form_submitted"
	EventAnchorFollowed       = "anchor_followed"
	EventImageEnteredViewport = "image_entered_viewport"
	EventUserActive           = "user_active"
	EventPerformanceObserved  = "performance_observed"
)

// Event is a typed user or browser event.
type Event interface {
	EventName() string
}

type ThemeToggled struct{}

type LanguageSwitched struct {
	Lang models.Lang `json:"lang"`
}

type PageRequested struct {
	Name string `json:"name"`
}

type SportRequested struct {
	Name string `json:"name"`
}

type OverviewRequested struct{}

type MenuToggled struct{}

type Clicked struct {
	Target string `json:"target"`
}

type KeyPressed struct {
	Key
}

type FieldFocused struct {
	ID string `json:"id"`
}

type FieldBlurred struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type FieldInput struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type FormSubmitted struct {
	Values map[string]string `json:"values"`
}

type AnchorFollowed struct {
	Href string `json:"href"`
}

type ImageEnteredViewport struct {
	ID string `json:"id"`
}

type UserActive struct {
	Kind string `json:"kind"`
}

type PerformanceObserved struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
}

func (ThemeToggled) EventName() string         { return EventThemeToggled }
func (LanguageSwitched) EventName() string     { return EventLanguageSwitched }
func (PageRequested) EventName() string        { return EventPageRequested }
func (SportRequested) EventName() string       { return EventSportRequested }
func (OverviewRequested) EventName() string    { return EventOverviewRequested }
func (MenuToggled) EventName() string          { return EventMenuToggled }
func (Clicked) EventName() string              { return EventClicked }
func (KeyPressed) EventName() string           { return EventKeyPressed }
func (FieldFocused) EventName() string         { return EventFieldFocused }
func (FieldBlurred) EventName() string         { return EventFieldBlurred }
func (FieldInput) EventName() string           { return EventFieldInput }
func (FormSubmitted) EventName() string        { return EventFormSubmitted }
func (AnchorFollowed) EventName() string       { return EventAnchorFollowed }
func (ImageEnteredViewport) EventName() string { return EventImageEnteredViewport }
func (UserActive) EventName() string           { return EventUserActive }
func (PerformanceObserved) EventName() string  { return EventPerformanceObserved }

// Dispatch applies ev to the View through the registry.
func (v *View) Dispatch(ctx context.Context, ev Event) (Outcome, error) {
	handler, ok := v.registry.Get(ev.EventName())
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownEvent, ev.EventName())
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	v.focusMoved = false
	out, err := handler(ctx, v, ev)
	if err != nil {
		return out, err
	}
	if v.focusMoved {
		out.Focus = v.state.Focus
	} else {
		v.clearFocus()
	}
	return out, nil
}

// DecodeEvent builds the named event from its JSON payload.
func DecodeEvent(name string, payload []byte) (Event, error) {
	dec, ok := decoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	ev, err := dec(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return ev, nil
}

func decode[T Event](payload []byte) (Event, error) {
	var ev T
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, err
		}
	}
	return ev, nil
}

var decoders = map[string]func([]byte) (Event, error){
	EventThemeToggled:         decode[ThemeToggled],
	EventLanguageSwitched:     decode[LanguageSwitched],
	EventPageRequested:        decode[PageRequested],
	EventSportRequested:       decode[SportRequested],
	EventOverviewRequested:    decode[OverviewRequested],
	EventMenuToggled:          decode[MenuToggled],
	EventClicked:              decode[Clicked],
	EventKeyPressed:           decode[KeyPressed],
	EventFieldFocused:         decode[FieldFocused],
	EventFieldBlurred:         decode[FieldBlurred],
	EventFieldInput:           decode[FieldInput],
	EventFormSubmitted:        decode[FormSubmitted],
	EventAnchorFollowed:       decode[AnchorFollowed],
	EventImageEnteredViewport: decode[ImageEnteredViewport],
	EventUserActive:           decode[UserActive],
	EventPerformanceObserved:  decode[PerformanceObserved],
}

// handle adapts a typed function to an EventHandler.
func handle[T Event](fn func(ctx context.Context, v *View, ev T) Outcome) EventHandler {
	return func(ctx context.Context, v *View, ev Event) (Outcome, error) {
		typed, ok := ev.(T)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: %T", ErrEventType, ev)
		}
		return fn(ctx, v, typed), nil
	}
}

var handled = Outcome{Handled: true}

// DefineEvents registers the built-in handlers.
func DefineEvents(r *Registry) {
	r.Register(EventThemeToggled, handle(func(ctx context.Context, v *View, _ ThemeToggled) Outcome {
		v.toggleTheme(ctx)
		return handled
	}))
	r.Register(EventLanguageSwitched, handle(func(ctx context.Context, v *View, ev LanguageSwitched) Outcome {
		v.switchLang(ctx, ev.Lang)
		return handled
	}))
	r.Register(EventPageRequested, handle(func(_ context.Context, v *View, ev PageRequested) Outcome {
		v.showPage(ev.Name)
		return handled
	}))
	r.Register(EventSportRequested, handle(func(_ context.Context, v *View, ev SportRequested) Outcome {
		v.showSportDetail(ev.Name)
		return handled
	}))
	r.Register(EventOverviewRequested, handle(func(_ context.Context, v *View, _ OverviewRequested) Outcome {
		v.showSportsOverview()
		return handled
	}))
	r.Register(EventMenuToggled, handle(func(_ context.Context, v *View, _ MenuToggled) Outcome {
		v.toggleMenu()
		return handled
	}))
	r.Register(EventClicked, handle(func(ctx context.Context, v *View, ev Clicked) Outcome {
		return v.click(ctx, v.doc.GetElementByID(ev.Target))
	}))
	r.Register(EventKeyPressed, handle(func(ctx context.Context, v *View, ev KeyPressed) Outcome {
		return v.keyDown(ctx, ev.Key)
	}))
	r.Register(EventFieldFocused, handle(func(_ context.Context, v *View, ev FieldFocused) Outcome {
		v.focusField(ev.ID)
		return handled
	}))
	r.Register(EventFieldBlurred, handle(func(_ context.Context, v *View, ev FieldBlurred) Outcome {
		input := v.formControl(ev.ID)
		if !input.Exists() {
			return Outcome{}
		}
		setControlValue(input, ev.Value)
		valid := v.validateField(input)
		return Outcome{Handled: true, Valid: &valid}
	}))
	r.Register(EventFieldInput, handle(func(_ context.Context, v *View, ev FieldInput) Outcome {
		input := v.formControl(ev.ID)
		if !input.Exists() {
			return Outcome{}
		}
		setControlValue(input, ev.Value)
		// Only re-check a field already flagged, so typing is not nagged.
		if !input.HasClass(ClassInvalid) {
			return handled
		}
		valid := v.validateField(input)
		return Outcome{Handled: true, Valid: &valid}
	}))
	r.Register(EventFormSubmitted, handle(func(_ context.Context, v *View, ev FormSubmitted) Outcome {
		record, out := v.submitForm(ev.Values)
		if record != nil {
			v.log.Info("contact form acknowledged", "fields", len(record))
		}
		return out
	}))
	r.Register(EventAnchorFollowed, handle(func(_ context.Context, v *View, ev AnchorFollowed) Outcome {
		ok := v.followAnchor(ev.Href)
		return Outcome{Handled: ok, PreventDefault: ok}
	}))
	r.Register(EventImageEnteredViewport, handle(func(_ context.Context, v *View, ev ImageEnteredViewport) Outcome {
		return Outcome{Handled: v.imageVisible(v.doc.GetElementByID(ev.ID))}
	}))
	r.Register(EventUserActive, handle(func(_ context.Context, v *View, _ UserActive) Outcome {
		v.idle.Touch()
		return handled
	}))
	r.Register(EventPerformanceObserved, handle(func(_ context.Context, v *View, ev PerformanceObserved) Outcome {
		d := time.Duration(ev.DurationMS * float64(time.Millisecond))
		return Outcome{Handled: v.observePerformance(PerformanceEntry{Name: ev.Name, Duration: d})}
	}))
}
