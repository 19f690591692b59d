package dnd

import (
	"errors"
	"strings"
)

var (
	ErrZoneIDRequired    = errors.New("dnd: zone id required")
	ErrZoneNestedTooDeep = errors.New("dnd: zones nest one level only")
)

const (
	// RootZone is the identifier of the page-level drop zone.
	RootZone = "root"
	// Separator joins an area and a zone in a composite zone id.
	Separator = ":"
)

// ZoneParams is the (area, zone) pair a drop target id decomposes into.
type ZoneParams struct {
	Area string `json:"area"`
	Zone string `json:"zone"`
}

// ParseZoneID splits a drop target id. "root" maps to (root, root), ids with
// a separator split at the first one, anything else has no area. Ids with a
// second separator keep it in Zone; ValidateZoneID rejects them.
func ParseZoneID(id string) ZoneParams {
	if id == RootZone {
		return ZoneParams{Area: RootZone, Zone: RootZone}
	}
	if area, zone, ok := strings.Cut(id, Separator); ok {
		return ZoneParams{Area: area, Zone: zone}
	}
	return ZoneParams{Zone: id}
}

// ValidateZoneID accepts "root", plain zone names and "area:zone" ids where
// neither part is empty or contains another separator.
func ValidateZoneID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrZoneIDRequired
	}
	if id == RootZone {
		return nil
	}
	area, zone, nested := strings.Cut(id, Separator)
	if !nested {
		return nil
	}
	if area == "" || zone == "" {
		return ErrZoneIDRequired
	}
	if strings.Contains(zone, Separator) {
		return ErrZoneNestedTooDeep
	}
	return nil
}

// Key rebuilds the composite zone id.
func (p ZoneParams) Key() string {
	switch {
	case p.Area == RootZone && p.Zone == RootZone:
		return RootZone
	case p.Area == "":
		return p.Zone
	default:
		return p.Area + Separator + p.Zone
	}
}

// IsZero reports whether no zone has been resolved.
func (p ZoneParams) IsZero() bool {
	return p.Area == "" && p.Zone == ""
}

// ComposeZoneID builds the id of zone inside area.
func ComposeZoneID(area, zone string) string {
	return ZoneParams{Area: area, Zone: zone}.Key()
}
