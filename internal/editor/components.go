package editor

import (
	"strings"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/dnd"
	"github.com/goliatone/go-composer/internal/layout"
)

// AddComponentInput describes a new block placement.
type AddComponentInput struct {
	Type string
	// VariantID defaults to the block type's default variant.
	VariantID string
	Name      string
	Zone      string
	// Index is clamped to the zone length; negative appends.
	Index int
	// Data seeds the variant when it has no state yet.
	Data blocks.Data
}

// AddComponent places a new instance of a registered block type.
func (e *Editor) AddComponent(input AddComponentInput) (blocks.ComponentInstance, error) {
	descriptor, err := e.registry.Lookup(input.Type)
	if err != nil {
		return blocks.ComponentInstance{}, err
	}
	if strings.TrimSpace(input.Zone) != "" {
		if err := dnd.ValidateZoneID(input.Zone); err != nil {
			return blocks.ComponentInstance{}, err
		}
	}

	variantID := strings.TrimSpace(input.VariantID)
	if variantID == "" {
		variantID = descriptor.DefaultVariant
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = descriptor.Name
	}
	zone := zoneKey(input.Zone)

	item := blocks.ComponentInstance{
		ID:        e.ids.NewID(descriptor.Type),
		Type:      descriptor.Type,
		VariantID: variantID,
		Name:      name,
		Data:      blocks.CloneData(input.Data),
		Zone:      zone,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.payloads.EnsureVariant(descriptor.Type, variantID, input.Data); err != nil {
		return blocks.ComponentInstance{}, err
	}

	list := e.zones[zone]
	index := input.Index
	if index < 0 {
		index = len(list)
	}
	updated := layout.Insert(list, item, index)
	e.zones[zone] = updated
	e.touch()

	placed := updated[layout.IndexOf(updated, item.ID)]
	e.logger.Debug("editor.component_added", "id", placed.ID, "type", placed.Type, "zone", zone, "index", placed.Position)
	return placed.Clone(), nil
}

// RemoveComponent deletes the instance with id. Variant state is kept so
// other instances of the same variant are unaffected.
func (e *Editor) RemoveComponent(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil && e.active.ItemID == id {
		return ErrDragActive
	}
	zone, index, ok := e.locate(id)
	if !ok {
		return ErrComponentNotFound
	}
	remaining, _, _ := layout.Remove(e.zones[zone], index)
	e.zones[zone] = remaining
	e.zones = pruneEmpty(e.zones)
	e.touch()
	e.logger.Debug("editor.component_removed", "id", id, "zone", zone)
	return nil
}

// RenameComponent changes the display name of an instance.
func (e *Editor) RenameComponent(id, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	zone, index, ok := e.locate(id)
	if !ok {
		return ErrComponentNotFound
	}
	e.zones[zone][index].Name = strings.TrimSpace(name)
	e.touch()
	return nil
}

// Component returns the instance with id.
func (e *Editor) Component(id string) (blocks.ComponentInstance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	zone, index, ok := e.locate(id)
	if !ok {
		return blocks.ComponentInstance{}, ErrComponentNotFound
	}
	return e.zones[zone][index].Clone(), nil
}
