package site

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/greenpitch/greenpitch/internal/dom"
	"github.com/greenpitch/greenpitch/internal/logging"
	"github.com/greenpitch/greenpitch/web"
)

// fakeClock fires timers only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance moves time forward and runs the timers that came due, in order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

func loadIndex(t *testing.T) *dom.Document {
	t.Helper()
	f, err := web.Files.Open(web.IndexFile)
	require.NoError(t, err)
	defer f.Close()
	doc, err := dom.Parse(f)
	require.NoError(t, err)
	return doc
}

type viewFixture struct {
	view    *View
	clock   *fakeClock
	storage Storage
}

func newFixture(t *testing.T, configure ...func(*Options)) viewFixture {
	t.Helper()
	clock := newFakeClock()
	opts := Options{
		Storage: NewMemoryStorage(),
		Clock:   clock,
		Logger:  logging.Discard(),
		Capabilities: Capabilities{
			IntersectionObserver: true,
			PerformanceObserver:  true,
		},
	}
	for _, fn := range configure {
		fn(&opts)
	}
	v := NewView(loadIndex(t), opts)
	v.Boot(context.Background())
	return viewFixture{view: v, clock: clock, storage: opts.Storage}
}

func withStored(key, value string) func(*Options) {
	return func(o *Options) {
		_ = o.Storage.SetItem(context.Background(), key, value)
	}
}

// el looks an element up under the View lock.
func (f viewFixture) el(id string) dom.Element {
	var e dom.Element
	f.view.Do(func(doc *dom.Document) { e = doc.GetElementByID(id) })
	return e
}

func (f viewFixture) attr(id, name string) string {
	v, _ := f.el(id).Attr(name)
	return v
}

func (f viewFixture) findAll(m dom.Matcher) []dom.Element {
	var out []dom.Element
	f.view.Do(func(doc *dom.Document) { out = doc.FindAll(m) })
	return out
}

func (f viewFixture) stored(t *testing.T, key string) string {
	t.Helper()
	v, ok, err := f.storage.GetItem(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "nothing stored under %q", key)
	return v
}

func activePages(f viewFixture) []string {
	var ids []string
	for _, p := range f.findAll(dom.And(dom.ByClass(ClassPageContent), dom.ByClass(ClassActive))) {
		ids = append(ids, p.ID())
	}
	return ids
}

func visibleSportViews(f viewFixture) []string {
	var ids []string
	for _, el := range f.findAll(dom.Or(dom.ByID(IDSportsOverview), dom.ByClass(ClassSportDetail))) {
		if el.Style("display") != "none" {
			ids = append(ids, el.ID())
		}
	}
	return ids
}
