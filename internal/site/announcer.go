package site

import (
	"sync"

	"github.com/greenpitch/greenpitch/internal/dom"
)

// Live region priorities.
const (
	PriorityPolite    = "polite"
	PriorityAssertive = "assertive"
)

// Announcement is one message posted to the live region. An empty Message
// is the clear that follows every announcement.
type Announcement struct {
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// Announce posts message into the live region and clears it after the
// configured delay so an identical follow-up is announced again.
func (v *View) Announce(message, priority string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.announce(message, priority)
}

func (v *View) announce(message, priority string) {
	if priority == "" {
		priority = PriorityPolite
	}
	region := v.doc.GetElementByID(IDAnnouncer)
	if !region.Exists() {
		region = v.createAnnouncer()
	}
	region.SetAttr(AttrAriaLive, priority)
	region.SetText(message)
	v.live.Publish(Announcement{Message: message, Priority: priority})

	// Overlapping clears are harmless: they all reset to the same empty text.
	v.clock.AfterFunc(v.timings.AnnounceClear, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.doc.GetElementByID(IDAnnouncer).SetText("")
		v.live.Publish(Announcement{Priority: priority})
	})
}

func (v *View) createAnnouncer() dom.Element {
	region := v.doc.CreateElement("div")
	region.SetAttr("id", IDAnnouncer)
	region.SetAttr("role", "status")
	region.SetAttr(AttrAriaLive, PriorityPolite)
	region.SetAttr("aria-atomic", "true")
	region.SetAttr("style", "position: absolute; left: -10000px; width: 1px; height: 1px; overflow: hidden")
	v.doc.Body().AppendChild(region)
	return region
}

// Broadcaster fans announcements out to live subscribers. Slow subscribers
// miss messages rather than block the View.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan Announcement]struct{}
	closed bool
}

// NewBroadcaster returns an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Announcement]struct{})}
}

// Subscribe registers a subscriber. The returned cancel func must be called
// once the subscriber is done.
func (b *Broadcaster) Subscribe() (<-chan Announcement, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Announcement, 16)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
}

// Publish delivers a to every subscriber without blocking.
func (b *Broadcaster) Publish(a Announcement) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- a:
		default:
		}
	}
}

// Close ends every subscription.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		close(ch)
		delete(b.subs, ch)
	}
	b.closed = true
}
