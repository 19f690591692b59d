package collision

import (
	"maps"
	"strings"
	"sync"

	"github.com/goliatone/go-composer/internal/geometry"
)

// Target is a drop target as mounted by the host UI.
type Target struct {
	ID       string
	Shape    geometry.Shape
	Disabled bool
	// Depth is the nesting level; the page root is 0.
	Depth int
	Data  map[string]any
}

func (t Target) clone() Target {
	t.Data = maps.Clone(t.Data)
	return t
}

// Registry holds the drop targets of one editor session in registration
// order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	targets map[string]Target
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]Target)}
}

// Register adds a target. Ids are unique within the registry.
func (r *Registry) Register(target Target) error {
	id := strings.TrimSpace(target.ID)
	if id == "" {
		return ErrTargetIDRequired
	}
	target.ID = id

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.targets[id]; exists {
		return ErrTargetExists
	}
	r.targets[id] = target.clone()
	r.order = append(r.order, id)
	return nil
}

// Update replaces a registered target in place, keeping its order.
func (r *Registry) Update(target Target) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.targets[target.ID]; !exists {
		return ErrTargetNotFound
	}
	r.targets[target.ID] = target.clone()
	return nil
}

// RegisterElement adds a target whose shape is measured from el, with
// ancestor scroll and scale normalized away.
func (r *Registry) RegisterElement(id string, el geometry.Element, depth int) error {
	if el == nil {
		return ErrElementRequired
	}
	return r.Register(Target{ID: id, Shape: geometry.Measure(el), Depth: depth})
}

// UpdateElement re-measures a registered target, keeping its depth,
// disabled flag and data.
func (r *Registry) UpdateElement(id string, el geometry.Element) error {
	if el == nil {
		return ErrElementRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	target, exists := r.targets[id]
	if !exists {
		return ErrTargetNotFound
	}
	target.Shape = geometry.Measure(el)
	r.targets[id] = target
	return nil
}

// Unregister removes a target; unknown ids are ignored.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.targets[id]; !exists {
		return
	}
	delete(r.targets, id)
	for idx, candidate := range r.order {
		if candidate == id {
			r.order = append(r.order[:idx:idx], r.order[idx+1:]...)
			break
		}
	}
}

// Get returns the target registered under id.
func (r *Registry) Get(id string) (Target, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	target, ok := r.targets[id]
	if !ok {
		return Target{}, false
	}
	return target.clone(), true
}

// Targets returns a snapshot of all targets in registration order.
func (r *Registry) Targets() []Target {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Target, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.targets[id].clone())
	}
	return out
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
