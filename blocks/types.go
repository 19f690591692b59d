package blocks

import "maps"

// RootZone is the identifier of the page-level drop zone.
const RootZone = "root"

// Data is the open-ended payload carried by a placed block.
type Data = map[string]any

// Layout tracks grid placement. Row mirrors Position for single-column pages.
type Layout struct {
	Row  int `json:"row" bson:"row"`
	Col  int `json:"col" bson:"col"`
	Span int `json:"span" bson:"span"`
}

// ComponentInstance is a single block placed on a page.
type ComponentInstance struct {
	ID        string `json:"id" bson:"id"`
	Type      string `json:"type" bson:"type"`
	VariantID string `json:"variant_id,omitempty" bson:"variant_id,omitempty"`
	Name      string `json:"name,omitempty" bson:"name,omitempty"`
	Data      Data   `json:"data,omitempty" bson:"data,omitempty"`
	Zone      string `json:"zone,omitempty" bson:"zone,omitempty"`
	Position  int    `json:"position" bson:"position"`
	Layout    Layout `json:"layout" bson:"layout"`
}

// ZoneKey returns the owning zone, defaulting to the root zone.
func (c ComponentInstance) ZoneKey() string {
	if c.Zone == "" {
		return RootZone
	}
	return c.Zone
}

// Clone returns a copy whose payload can be mutated independently.
func (c ComponentInstance) Clone() ComponentInstance {
	out := c
	out.Data = CloneData(c.Data)
	return out
}

// CloneData deep copies nested maps and slices of a payload.
func CloneData(src Data) Data {
	if src == nil {
		return nil
	}
	out := make(Data, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneData(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(typed))
		for i, item := range typed {
			out[i] = CloneData(item)
		}
		return out
	case map[string]string:
		return maps.Clone(typed)
	case []string:
		return append([]string(nil), typed...)
	default:
		return value
	}
}

// CloneList copies every instance in the list.
func CloneList(list []ComponentInstance) []ComponentInstance {
	if list == nil {
		return nil
	}
	out := make([]ComponentInstance, len(list))
	for i, item := range list {
		out[i] = item.Clone()
	}
	return out
}
