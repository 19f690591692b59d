package variants

import (
	"strings"

	"dario.cat/mergo"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/validation"
)

// State maps variant ids to payloads for one block type.
type State map[string]blocks.Data

// Clone deep copies every payload.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	out := make(State, len(s))
	for id, data := range s {
		out[id] = blocks.CloneData(data)
	}
	return out
}

// Patch holds the variant payloads to write into a State. An empty patch
// is a no-op.
type Patch map[string]blocks.Data

// IsEmpty reports whether the patch carries no changes.
func (p Patch) IsEmpty() bool { return len(p) == 0 }

// Staging supplies the payload currently being edited in the host UI, if
// any, for a block type and variant.
type Staging interface {
	Staged(blockType, variantID string) (blocks.Data, bool)
}

// StagingFunc adapts a function to Staging.
type StagingFunc func(blockType, variantID string) (blocks.Data, bool)

func (f StagingFunc) Staged(blockType, variantID string) (blocks.Data, bool) {
	return f(blockType, variantID)
}

// Store implements ensure/get/set/update-by-path for one block type.
type Store struct {
	descriptor BlockTypeDescriptor
	staging    Staging
	schema     *validation.Schema
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStaging sets the staging source consulted by EnsureVariant.
func WithStaging(staging Staging) StoreOption {
	return func(s *Store) { s.staging = staging }
}

// Type returns the block type this store serves.
func (s *Store) Type() string { return s.descriptor.Type }

// Descriptor returns the block type descriptor.
func (s *Store) Descriptor() BlockTypeDescriptor { return s.descriptor }

// Default returns a fresh default payload.
func (s *Store) Default() blocks.Data {
	data := s.descriptor.DefaultPayload()
	if data == nil {
		return blocks.Data{}
	}
	return blocks.CloneData(data)
}

// EnsureVariant returns the patch that seeds variantID. Existing non-empty
// state wins and yields an empty patch. Otherwise the seed is initial, then
// the staged payload, then the default.
func (s *Store) EnsureVariant(state State, variantID string, initial blocks.Data) Patch {
	variantID = strings.TrimSpace(variantID)
	if variantID == "" {
		return Patch{}
	}
	if len(state[variantID]) > 0 {
		return Patch{}
	}
	seed := blocks.CloneData(initial)
	if len(seed) == 0 && s.staging != nil {
		if staged, ok := s.staging.Staged(s.descriptor.Type, variantID); ok && len(staged) > 0 {
			seed = blocks.CloneData(staged)
		}
	}
	if len(seed) == 0 {
		seed = s.Default()
	}
	return Patch{variantID: seed}
}

// GetData returns a copy of the variant payload, or the default payload when
// the variant has no state. The result is never nil.
func (s *Store) GetData(state State, variantID string) blocks.Data {
	if data, ok := state[variantID]; ok && data != nil {
		return blocks.CloneData(data)
	}
	return s.Default()
}

// SetData replaces the variant payload. The input state is not modified.
func (s *Store) SetData(state State, variantID string, data blocks.Data) (State, error) {
	if strings.TrimSpace(variantID) == "" {
		return state, ErrVariantIDRequired
	}
	if data == nil {
		data = blocks.Data{}
	}
	if err := s.schema.Validate(data); err != nil {
		return state, err
	}
	next := shallowCopy(state)
	next[variantID] = blocks.CloneData(data)
	return next, nil
}

// UpdateByPath writes value at the dot-separated path of the variant
// payload, creating intermediate objects. Objects along the path are copied
// so earlier payloads are never mutated.
func (s *Store) UpdateByPath(state State, variantID, path string, value any) (State, error) {
	if strings.TrimSpace(variantID) == "" {
		return state, ErrVariantIDRequired
	}
	segments, err := splitPath(path)
	if err != nil {
		return state, err
	}

	current, ok := state[variantID]
	if !ok || current == nil {
		current = s.Default()
	}
	updated, err := setPath(current, segments, value)
	if err != nil {
		return state, err
	}
	if err := s.schema.Validate(updated); err != nil {
		return state, err
	}

	next := shallowCopy(state)
	next[variantID] = updated
	return next, nil
}

// ApplyPatch merges patch into a copy of state. Patch values override
// existing keys of the same variant.
func (s *Store) ApplyPatch(state State, patch Patch) (State, error) {
	return ApplyPatch(state, patch)
}

// ApplyPatch merges patch into a copy of state.
func ApplyPatch(state State, patch Patch) (State, error) {
	if patch.IsEmpty() {
		return state, nil
	}
	next := shallowCopy(state)
	for variantID, data := range patch {
		merged := blocks.CloneData(next[variantID])
		if merged == nil {
			merged = blocks.Data{}
		}
		if err := mergo.Merge(&merged, blocks.CloneData(data), mergo.WithOverride); err != nil {
			return state, err
		}
		next[variantID] = merged
	}
	return next, nil
}

func shallowCopy(state State) State {
	next := make(State, len(state)+1)
	for id, data := range state {
		next[id] = data
	}
	return next
}
