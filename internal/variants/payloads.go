package variants

import (
	"sync"

	"github.com/goliatone/go-composer/blocks"
)

// Payloads keeps the variant state of every block type used by one editor
// session. It is safe for concurrent use.
type Payloads struct {
	mu       sync.RWMutex
	registry *Registry
	staging  Staging
	stores   map[string]*Store
	state    map[string]State
}

// NewPayloads creates an empty payload set. Stores are created on first use.
func NewPayloads(registry *Registry, staging Staging) *Payloads {
	return &Payloads{
		registry: registry,
		staging:  staging,
		stores:   make(map[string]*Store),
		state:    make(map[string]State),
	}
}

// Load replaces all state, keyed by block type then variant id.
func (p *Payloads) Load(snapshot map[string]map[string]blocks.Data) {
	state := make(map[string]State, len(snapshot))
	for blockType, variants := range snapshot {
		state[NormalizeType(blockType)] = State(variants).Clone()
	}
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}

// Snapshot returns a deep copy of all state.
func (p *Payloads) Snapshot() map[string]map[string]blocks.Data {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]map[string]blocks.Data, len(p.state))
	for blockType, state := range p.state {
		out[blockType] = state.Clone()
	}
	return out
}

// Store returns the store for blockType.
func (p *Payloads) Store(blockType string) (*Store, error) {
	key := NormalizeType(blockType)
	p.mu.RLock()
	store, ok := p.stores[key]
	p.mu.RUnlock()
	if ok {
		return store, nil
	}

	store, err := p.registry.Store(key, WithStaging(p.staging))
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	if existing, ok := p.stores[key]; ok {
		store = existing
	} else {
		p.stores[key] = store
	}
	p.mu.Unlock()
	return store, nil
}

// EnsureVariant seeds variantID of blockType and reports whether state
// changed.
func (p *Payloads) EnsureVariant(blockType, variantID string, initial blocks.Data) (bool, error) {
	store, err := p.Store(blockType)
	if err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	state := p.state[store.Type()]
	patch := store.EnsureVariant(state, variantID, initial)
	if patch.IsEmpty() {
		return false, nil
	}
	next, err := store.ApplyPatch(state, patch)
	if err != nil {
		return false, err
	}
	p.state[store.Type()] = next
	return true, nil
}

// GetData returns the payload of a variant, never nil.
func (p *Payloads) GetData(blockType, variantID string) (blocks.Data, error) {
	store, err := p.Store(blockType)
	if err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return store.GetData(p.state[store.Type()], variantID), nil
}

// SetData replaces the payload of a variant.
func (p *Payloads) SetData(blockType, variantID string, data blocks.Data) error {
	store, err := p.Store(blockType)
	if err != nil {
		return err
	}
	return p.mutate(store, func(state State) (State, error) {
		return store.SetData(state, variantID, data)
	})
}

// UpdateByPath writes a single field of a variant payload.
func (p *Payloads) UpdateByPath(blockType, variantID, path string, value any) error {
	store, err := p.Store(blockType)
	if err != nil {
		return err
	}
	return p.mutate(store, func(state State) (State, error) {
		return store.UpdateByPath(state, variantID, path, value)
	})
}

func (p *Payloads) mutate(store *Store, fn func(State) (State, error)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, err := fn(p.state[store.Type()])
	if err != nil {
		return err
	}
	p.state[store.Type()] = next
	return nil
}
