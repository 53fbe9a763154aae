package site

import (
	"context"
	"sync"
)

// EventHandler applies one event to a View. It runs with the View locked.
type EventHandler func(ctx context.Context, v *View, ev Event) (Outcome, error)

// Registry stores the mapping of event names to handlers
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]EventHandler
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]EventHandler)}
}

// DefaultRegistry holds the handlers of every built-in event
var DefaultRegistry = func() *Registry {
	r := NewRegistry()
	DefineEvents(r)
	return r
}()

// Register adds a handler for an event name, replacing any previous one
func (r *Registry) Register(name string, handler EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Get retrieves the handler for an event name
func (r *Registry) Get(name string) (EventHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}

// Names lists the registered event names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}
