package layout

import (
	"github.com/goliatone/go-composer/blocks"
)

// Reconcile returns a copy of list with Position and Layout.Row set to each
// item's index. Missing spans default to 1.
func Reconcile(list []blocks.ComponentInstance) []blocks.ComponentInstance {
	out := blocks.CloneList(list)
	renumber(out)
	return out
}

func renumber(list []blocks.ComponentInstance) {
	for idx := range list {
		list[idx].Position = idx
		list[idx].Layout.Row = idx
		if list[idx].Layout.Span <= 0 {
			list[idx].Layout.Span = 1
		}
	}
}

// IsReconciled reports whether positions already equal indices.
func IsReconciled(list []blocks.ComponentInstance) bool {
	for idx, item := range list {
		if item.Position != idx || item.Layout.Row != idx {
			return false
		}
	}
	return true
}

// TrackComponentMove moves the item at srcIndex to dstIndex of the list that
// remains after removing it, then renumbers every item. The moved item takes
// dstZone when given. Out-of-range indices return the input slice and false.
func TrackComponentMove(components []blocks.ComponentInstance, srcIndex int, srcZone string, dstIndex int, dstZone string) ([]blocks.ComponentInstance, bool) {
	n := len(components)
	if srcIndex < 0 || srcIndex >= n || dstIndex < 0 || dstIndex >= n {
		return components, false
	}
	if srcZone != "" && components[srcIndex].ZoneKey() != srcZone {
		return components, false
	}

	working := blocks.CloneList(components)
	moved := working[srcIndex]
	working = append(working[:srcIndex], working[srcIndex+1:]...)
	if dstZone != "" {
		moved.Zone = dstZone
	}
	working = insertAt(working, moved, dstIndex)
	renumber(working)
	return working, true
}

// Insert places item at index (clamped to the list bounds) and renumbers.
func Insert(list []blocks.ComponentInstance, item blocks.ComponentInstance, index int) []blocks.ComponentInstance {
	index = max(0, min(index, len(list)))
	out := insertAt(blocks.CloneList(list), item.Clone(), index)
	renumber(out)
	return out
}

// Remove drops the item at index and renumbers. It returns the removed item
// and false when index is out of range.
func Remove(list []blocks.ComponentInstance, index int) ([]blocks.ComponentInstance, blocks.ComponentInstance, bool) {
	if index < 0 || index >= len(list) {
		return list, blocks.ComponentInstance{}, false
	}
	out := blocks.CloneList(list)
	removed := out[index]
	out = append(out[:index], out[index+1:]...)
	renumber(out)
	return out, removed, true
}

// IndexOf returns the index of the item with id, or -1.
func IndexOf(list []blocks.ComponentInstance, id string) int {
	for idx, item := range list {
		if item.ID == id {
			return idx
		}
	}
	return -1
}

func insertAt(list []blocks.ComponentInstance, item blocks.ComponentInstance, index int) []blocks.ComponentInstance {
	list = append(list, blocks.ComponentInstance{})
	copy(list[index+1:], list[index:])
	list[index] = item
	return list
}
