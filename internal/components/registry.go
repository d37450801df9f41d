// Package components holds the board's building blocks: loader components
// that synchronize remote schedule data into the store, the read-side
// scheduler, and the registry they are constructed through.
package components

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Component is any board element scoped to an event. Every component
// reacts to its event-scope attribute through SetEventID.
type Component interface {
	SetEventID(ctx context.Context, eventID string)
}

// Factory constructs a fresh component instance.
type Factory func() Component

// Registry maps component names to factories. Registration is idempotent:
// defining a name that is already taken is a no-op, mirroring guarded
// element definition in the markup world.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register defines name with the given factory. It returns true when the
// definition was installed and false when the name was already defined;
// the earlier definition always wins.
func (r *Registry) Register(name string, factory Factory) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return false
	}
	r.factories[name] = factory
	return true
}

// Defined reports whether name has a registered factory.
func (r *Registry) Defined(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// New constructs a component by name.
func (r *Registry) New(name string) (Component, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("component %q is not defined", name)
	}
	return factory(), nil
}

// Names returns all defined component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
