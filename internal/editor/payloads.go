package editor

import (
	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/variants"
)

// EnsureVariant seeds a variant unless it already holds data.
func (e *Editor) EnsureVariant(blockType, variantID string, initial blocks.Data) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	changed, err := e.payloads.EnsureVariant(blockType, variantID, initial)
	if changed {
		e.touch()
	}
	return changed, err
}

// VariantData returns the payload of a variant, or the type default.
func (e *Editor) VariantData(blockType, variantID string) (blocks.Data, error) {
	return e.payloads.GetData(blockType, variantID)
}

// ComponentData returns the variant payload rendered by the instance id.
func (e *Editor) ComponentData(id string) (blocks.Data, error) {
	item, err := e.Component(id)
	if err != nil {
		return nil, err
	}
	return e.payloads.GetData(item.Type, variantOf(e.registry, item))
}

// SetVariantData replaces the payload of a variant.
func (e *Editor) SetVariantData(blockType, variantID string, data blocks.Data) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.payloads.SetData(blockType, variantID, data); err != nil {
		return err
	}
	e.touch()
	return nil
}

// UpdateVariantField writes one dot-path field of a variant payload.
func (e *Editor) UpdateVariantField(blockType, variantID, path string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.payloads.UpdateByPath(blockType, variantID, path, value); err != nil {
		return err
	}
	e.touch()
	return nil
}

// StageEdit records the payload the host is currently editing for a
// variant. EnsureVariant falls back to it when no initial data is given.
// A nil payload clears the staged entry.
func (e *Editor) StageEdit(blockType, variantID string, data blocks.Data) {
	e.staging.stage(blockType, variantID, data)
}

func (e *Editor) ensureFor(item blocks.ComponentInstance) (bool, error) {
	return e.payloads.EnsureVariant(item.Type, variantOf(e.registry, item), item.Data)
}

func variantOf(registry *variants.Registry, item blocks.ComponentInstance) string {
	if item.VariantID != "" {
		return item.VariantID
	}
	if descriptor, err := registry.Lookup(item.Type); err == nil {
		return descriptor.DefaultVariant
	}
	return "default"
}
