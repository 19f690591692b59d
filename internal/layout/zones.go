package layout

import (
	"maps"
	"slices"
	"sort"

	"github.com/goliatone/go-composer/blocks"
)

// Zones maps a zone id to its ordered instances.
type Zones map[string][]blocks.ComponentInstance

// Clone deep copies every zone list.
func (z Zones) Clone() Zones {
	out := make(Zones, len(z))
	for key, list := range z {
		out[key] = blocks.CloneList(list)
	}
	return out
}

// Keys returns the zone ids with the root zone first and the rest sorted.
func (z Zones) Keys() []string {
	keys := slices.Collect(maps.Keys(z))
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == blocks.RootZone || keys[j] == blocks.RootZone {
			return keys[i] == blocks.RootZone && keys[j] != blocks.RootZone
		}
		return keys[i] < keys[j]
	})
	return keys
}

// SplitByZone groups a flat list by owning zone, keeping input order, and
// renumbers each zone.
func SplitByZone(flat []blocks.ComponentInstance) Zones {
	zones := Zones{}
	for _, item := range flat {
		key := item.ZoneKey()
		clone := item.Clone()
		clone.Zone = key
		zones[key] = append(zones[key], clone)
	}
	for _, list := range zones {
		renumber(list)
	}
	return zones
}

// Flatten concatenates the zones, root first and then by zone id.
func Flatten(zones Zones) []blocks.ComponentInstance {
	out := make([]blocks.ComponentInstance, 0)
	for _, key := range zones.Keys() {
		out = append(out, blocks.CloneList(zones[key])...)
	}
	return out
}

// MoveAcrossZones moves an item between two zone lists, renumbering each.
// Same-zone moves use TrackComponentMove. For cross-zone moves dstIndex may
// equal the destination length to append. On failure the input is returned
// with false.
func MoveAcrossZones(zones Zones, srcZone string, srcIndex int, dstZone string, dstIndex int) (Zones, bool) {
	if srcZone == "" {
		srcZone = blocks.RootZone
	}
	if dstZone == "" {
		dstZone = blocks.RootZone
	}
	src, ok := zones[srcZone]
	if !ok {
		return zones, false
	}

	if srcZone == dstZone {
		moved, ok := TrackComponentMove(src, srcIndex, srcZone, dstIndex, dstZone)
		if !ok {
			return zones, false
		}
		out := zones.Clone()
		out[srcZone] = moved
		return out, true
	}

	dst := zones[dstZone]
	if srcIndex < 0 || srcIndex >= len(src) || dstIndex < 0 || dstIndex > len(dst) {
		return zones, false
	}

	remaining, item, _ := Remove(src, srcIndex)
	item.Zone = dstZone

	out := zones.Clone()
	out[srcZone] = remaining
	out[dstZone] = Insert(dst, item, dstIndex)
	return out, true
}
