package site

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/greenpitch/greenpitch/internal/dom"
	"github.com/greenpitch/greenpitch/internal/logging"
)

// DefaultSessionTTL is how long an untouched View is kept.
const DefaultSessionTTL = 30 * time.Minute

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	Store        PreferenceStore
	Clock        Clock
	Logger       *slog.Logger
	Capabilities Capabilities
	Timings      Timings
	Registry     *Registry
	TTL          time.Duration
}

// Manager keeps one booted View per visitor.
type Manager struct {
	mu     sync.Mutex
	source *dom.Document
	views  map[string]*session
	opts   ManagerOptions
	log    *slog.Logger
}

type session struct {
	view *View
	seen time.Time
}

// NewManager builds Views from clones of source.
func NewManager(source *dom.Document, opts ManagerOptions) *Manager {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultSessionTTL
	}
	return &Manager{
		source: source,
		views:  make(map[string]*session),
		opts:   opts,
		log:    logging.Component(opts.Logger, "sessions"),
	}
}

// View returns the booted View of a visitor, creating it on first use.
func (m *Manager) View(ctx context.Context, visitorID string) *View {
	m.mu.Lock()
	s, ok := m.views[visitorID]
	if !ok {
		s = &session{view: m.newView(visitorID)}
		m.views[visitorID] = s
		m.log.Debug("session created", "visitor", visitorID)
	}
	s.seen = m.opts.Clock.Now()
	m.mu.Unlock()

	s.view.Boot(ctx)
	return s.view
}

func (m *Manager) newView(visitorID string) *View {
	var storage Storage
	if m.opts.Store != nil {
		storage = BindStorage(m.opts.Store, visitorID)
	}
	return NewView(m.source.Clone(), Options{
		Storage:      storage,
		Clock:        m.opts.Clock,
		Logger:       m.opts.Logger,
		Capabilities: m.opts.Capabilities,
		Timings:      m.opts.Timings,
		Registry:     m.opts.Registry,
	})
}

// SetSource replaces the document new Views start from. Existing Views keep
// their copy until they expire.
func (m *Manager) SetSource(doc *dom.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source = doc
}

// Forget drops a visitor's View.
func (m *Manager) Forget(visitorID string) {
	m.mu.Lock()
	s, ok := m.views[visitorID]
	delete(m.views, visitorID)
	m.mu.Unlock()
	if ok {
		s.view.Close()
	}
}

// Len returns the number of live Views.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}

// Sweep closes Views untouched for longer than the TTL and returns how many
// were dropped.
func (m *Manager) Sweep() int {
	now := m.opts.Clock.Now()
	var expired []*View

	m.mu.Lock()
	for id, s := range m.views {
		if now.Sub(s.seen) > m.opts.TTL {
			expired = append(expired, s.view)
			delete(m.views, id)
		}
	}
	m.mu.Unlock()

	for _, v := range expired {
		v.Close()
	}
	return len(expired)
}

// Run sweeps on every tick until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.log.Info("expired sessions swept", "count", n, "remaining", m.Len())
			}
		case <-ctx.Done():
			return
		}
	}
}
