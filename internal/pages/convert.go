package pages

import (
	"sort"
	"strings"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// ConvertObjectToArray turns a persisted definition into the ordered list
// used by the editor. Records without a type are skipped and logged. Items
// sort by position (missing counts as 0) and then by id.
func ConvertObjectToArray(def PageDefinition, logger interfaces.Logger) []blocks.ComponentInstance {
	if logger == nil {
		logger = logging.NoOp()
	}

	out := make([]blocks.ComponentInstance, 0, len(def))
	for id, record := range def {
		if strings.TrimSpace(record.Type) == "" {
			logger.Warn("pages.record_skipped", "id", id, "error", ErrRecordTypeRequired)
			continue
		}
		position := 0
		if record.Position != nil {
			position = *record.Position
		}
		layout := blocks.Layout{Row: position, Col: 0, Span: 1}
		if record.Layout != nil {
			layout = *record.Layout
		}
		zone := strings.TrimSpace(record.Zone)
		if zone == "" {
			zone = blocks.RootZone
		}
		out = append(out, blocks.ComponentInstance{
			ID:        id,
			Type:      record.Type,
			VariantID: record.VariantID,
			Name:      record.Name,
			Data:      blocks.CloneData(record.Data),
			Zone:      zone,
			Position:  position,
			Layout:    layout,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ConvertArrayToObject turns an ordered list into the persisted keyed form.
// Instances without an id get one from ids. Positions and layout rows are
// renumbered from array order within each zone, so stale or missing
// positions never decide the order. Duplicate ids keep the last instance.
func ConvertArrayToObject(list []blocks.ComponentInstance, ids IDGenerator) PageDefinition {
	if ids == nil {
		ids = NewSyntheticIDs()
	}
	def := make(PageDefinition, len(list))
	next := make(map[string]int)
	for _, item := range list {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			id = ids.NewID(item.Type)
		}
		zone := item.ZoneKey()
		position := next[zone]
		next[zone]++
		layout := item.Layout
		layout.Row = position
		if layout.Span <= 0 {
			layout.Span = 1
		}
		def[id] = Record{
			Type:      item.Type,
			Name:      item.Name,
			VariantID: item.VariantID,
			Data:      blocks.CloneData(item.Data),
			Zone:      zone,
			Position:  &position,
			Layout:    &layout,
		}
	}
	return def
}
