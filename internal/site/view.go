package site

import (
	"log/slog"
	"sync"
	"time"

	"github.com/greenpitch/greenpitch/internal/dom"
	"github.com/greenpitch/greenpitch/internal/logging"
	"github.com/greenpitch/greenpitch/internal/models"
)

// Default delays.
const (
	DefaultIdleTimeout    = 30 * time.Second
	DefaultAnnounceClear  = time.Second
	DefaultMenuFocusDelay = 100 * time.Millisecond
	DefaultSlowThreshold  = time.Second
)

// Capabilities are the optional observers a client supports. A disabled
// capability skips its feature entirely.
type Capabilities struct {
	IntersectionObserver bool
	PerformanceObserver  bool
}

// Timings groups the delays a View schedules.
type Timings struct {
	IdleTimeout    time.Duration
	AnnounceClear  time.Duration
	MenuFocusDelay time.Duration
	SlowThreshold  time.Duration
}

// DefaultTimings returns the stock delays.
func DefaultTimings() Timings {
	return Timings{
		IdleTimeout:    DefaultIdleTimeout,
		AnnounceClear:  DefaultAnnounceClear,
		MenuFocusDelay: DefaultMenuFocusDelay,
		SlowThreshold:  DefaultSlowThreshold,
	}
}

// Options configures a View.
type Options struct {
	Storage      Storage
	Clock        Clock
	Logger       *slog.Logger
	Capabilities Capabilities
	Timings      Timings
	Registry     *Registry
}

// View is one visitor's document together with the state the controllers
// maintain over it. All access goes through the View lock.
type View struct {
	mu sync.Mutex

	doc     *dom.Document
	state   State
	catalog *Catalog
	storage Storage
	clock   Clock
	log     *slog.Logger
	caps    Capabilities
	timings Timings

	registry *Registry
	live     *Broadcaster
	idle     *IdleDetector
	lazy     map[dom.Element]struct{}
	perf     bool
	booted   bool

	focusMoved bool
}

// NewView wraps doc. The document is owned by the View from here on.
func NewView(doc *dom.Document, opts Options) *View {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Storage == nil {
		opts.Storage = NewMemoryStorage()
	}
	if opts.Timings == (Timings{}) {
		opts.Timings = DefaultTimings()
	}
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry
	}

	v := &View{
		doc:      doc,
		catalog:  BuildCatalog(doc),
		storage:  opts.Storage,
		clock:    opts.Clock,
		log:      logging.Component(opts.Logger, "site"),
		caps:     opts.Capabilities,
		timings:  opts.Timings,
		registry: opts.Registry,
		live:     NewBroadcaster(),
		lazy:     make(map[dom.Element]struct{}),
		state: State{
			Theme: models.DefaultTheme,
			Lang:  models.DefaultLang,
		},
	}
	v.idle = NewIdleDetector(v.clock, v.timings.IdleTimeout)
	if page := doc.Find(dom.And(dom.ByClass(ClassPageContent), dom.ByClass(ClassActive))); page.Exists() {
		v.state.ActivePage = trimPrefix(page.ID(), PagePrefix)
	}
	return v
}

// State returns a snapshot of the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Lang returns the current language.
func (v *View) Lang() models.Lang {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Lang
}

// Do runs fn with the document while holding the View lock.
func (v *View) Do(fn func(doc *dom.Document)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.doc)
}

// HTML renders the current document.
func (v *View) HTML() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc.String()
}

// Idle returns the activity detector.
func (v *View) Idle() *IdleDetector { return v.idle }

// Live returns the announcement stream of this View.
func (v *View) Live() *Broadcaster { return v.live }

// Close stops the View's timers and live subscribers.
func (v *View) Close() {
	v.idle.Stop()
	v.live.Close()
}

// focus moves the focus landing point to el, which must exist.
func (v *View) focus(el dom.Element) {
	if !el.Exists() {
		return
	}
	for _, prev := range v.doc.FindAll(dom.HasAttr(AttrFocus)) {
		prev.RemoveAttr(AttrFocus)
	}
	el.SetAttr(AttrFocus, "true")
	v.state.Focus = describe(el)
	v.focusMoved = true
}

// clearFocus drops the landing point so a re-render does not pull focus back
// to where an earlier transition left it.
func (v *View) clearFocus() {
	for _, prev := range v.doc.FindAll(dom.HasAttr(AttrFocus)) {
		prev.RemoveAttr(AttrFocus)
	}
	v.state.Focus = ""
}

// focusTarget makes el programmatically focusable first, then focuses it.
func (v *View) focusTarget(el dom.Element) {
	if !el.Exists() {
		return
	}
	el.SetAttr(AttrTabIndex, "-1")
	v.focus(el)
}

// scrollTo records a scroll request.
func (v *View) scrollTo(target string, smooth bool) {
	v.state.Scroll = Scroll{Target: target, Smooth: smooth, Seq: v.state.Scroll.Seq + 1}
}

// describe names an element for the state snapshot: its id when it has one,
// otherwise its tag.
func describe(el dom.Element) string {
	if id := el.ID(); id != "" {
		return "#" + id
	}
	return el.Tag()
}

func trimPrefix(s, prefix string) string {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return ""
}
