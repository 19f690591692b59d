package variants

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/validation"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// BlockTypeDescriptor is the contract a block type fulfils to be placed in
// the editor.
type BlockTypeDescriptor struct {
	Type string
	// Name is the default display label for new instances.
	Name string
	// DefaultPayload returns a complete payload with every editable field.
	// It must return a fresh value on each call.
	DefaultPayload func() blocks.Data
	// DefaultVariant is the variant id given to new instances.
	DefaultVariant    string
	VariantsSupported bool
	// Global variants are shared by every page of a tenant.
	Global bool
	Schema map[string]any
}

type entry struct {
	descriptor BlockTypeDescriptor
	schema     *validation.Schema
}

// Registry holds the block types known to an editor session.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]entry
	validate bool
	logger   interfaces.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSchemaValidation toggles payload validation on SetData and
// UpdateByPath.
func WithSchemaValidation(enabled bool) RegistryOption {
	return func(r *Registry) { r.validate = enabled }
}

// WithRegistryLogger sets the registry logger.
func WithRegistryLogger(logger interfaces.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries:  make(map[string]entry),
		validate: true,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewBuiltinRegistry returns a registry preloaded with the built-in block
// types.
func NewBuiltinRegistry(opts ...RegistryOption) (*Registry, error) {
	r := NewRegistry(opts...)
	for _, descriptor := range Builtins() {
		if err := r.Register(descriptor); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NormalizeType maps a block type to its registry key.
func NormalizeType(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	normalized, err := slug.Default().Normalize(trimmed)
	if err != nil || normalized == "" {
		return strings.ToLower(trimmed)
	}
	return normalized
}

// Register adds a descriptor. Types are unique after normalization.
func (r *Registry) Register(descriptor BlockTypeDescriptor) error {
	key := NormalizeType(descriptor.Type)
	if key == "" {
		return ErrBlockTypeRequired
	}
	if descriptor.DefaultPayload == nil {
		return fmt.Errorf("%w: %s", ErrDefaultRequired, key)
	}
	compiled, err := validation.Compile(descriptor.Schema)
	if err != nil {
		return fmt.Errorf("variants: %s: %w", key, err)
	}
	descriptor.Type = key
	if descriptor.DefaultVariant == "" {
		descriptor.DefaultVariant = "default"
	}
	if descriptor.Name == "" {
		descriptor.Name = key
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%w: %s", ErrBlockTypeExists, key)
	}
	r.entries[key] = entry{descriptor: descriptor, schema: compiled}
	r.logger.Debug("variants.registered", "type", key, "global", descriptor.Global)
	return nil
}

// Lookup returns the descriptor for blockType or an *UnknownTypeError.
func (r *Registry) Lookup(blockType string) (BlockTypeDescriptor, error) {
	e, err := r.lookup(blockType)
	if err != nil {
		return BlockTypeDescriptor{}, err
	}
	return e.descriptor, nil
}

// MustLookup is Lookup for types registered at startup.
func (r *Registry) MustLookup(blockType string) BlockTypeDescriptor {
	descriptor, err := r.Lookup(blockType)
	if err != nil {
		panic(err)
	}
	return descriptor
}

// Types lists the registered keys in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for key := range r.entries {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Store returns a variant store for blockType.
func (r *Registry) Store(blockType string, opts ...StoreOption) (*Store, error) {
	e, err := r.lookup(blockType)
	if err != nil {
		return nil, err
	}
	s := &Store{descriptor: e.descriptor}
	if r.validate {
		s.schema = e.schema
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (r *Registry) lookup(blockType string) (entry, error) {
	key := NormalizeType(blockType)
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return entry{}, &UnknownTypeError{Type: blockType}
	}
	return e, nil
}
