package pages

import (
	"time"

	"github.com/goliatone/go-composer/blocks"
)

// Record is the persisted form of a placed block, keyed by instance id in a PageDefinition.
type Record struct {
	Type      string         `json:"type" bson:"type"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"`
	VariantID string         `json:"variant_id,omitempty" bson:"variant_id,omitempty"`
	Data      blocks.Data    `json:"data,omitempty" bson:"data,omitempty"`
	Zone      string         `json:"zone,omitempty" bson:"zone,omitempty"`
	Position  *int           `json:"position,omitempty" bson:"position,omitempty"`
	Layout    *blocks.Layout `json:"layout,omitempty" bson:"layout,omitempty"`
}

// PageDefinition maps component instance ids to their persisted records.
type PageDefinition map[string]Record

// VariantPayloads stores variant data as type -> variant id -> payload.
type VariantPayloads map[string]map[string]blocks.Data

// PageDocument is the full per-tenant document replaced on every save.
type PageDocument struct {
	TenantID   string          `json:"tenant_id" bson:"tenant_id"`
	Slug       string          `json:"slug" bson:"slug"`
	Version    int             `json:"version" bson:"version"`
	Definition PageDefinition  `json:"definition" bson:"definition"`
	Variants   VariantPayloads `json:"variants,omitempty" bson:"variants,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at" bson:"updated_at"`
}

// Clone deep copies the document so callers can hand it to a store safely.
func (d *PageDocument) Clone() *PageDocument {
	if d == nil {
		return nil
	}
	out := *d
	out.Definition = d.Definition.Clone()
	out.Variants = d.Variants.Clone()
	return &out
}

// Clone deep copies the definition and every record payload.
func (def PageDefinition) Clone() PageDefinition {
	if def == nil {
		return nil
	}
	out := make(PageDefinition, len(def))
	for id, record := range def {
		out[id] = record.Clone()
	}
	return out
}

// Clone copies the record, its payload, and optional pointers.
func (r Record) Clone() Record {
	out := r
	out.Data = blocks.CloneData(r.Data)
	if r.Position != nil {
		position := *r.Position
		out.Position = &position
	}
	if r.Layout != nil {
		layout := *r.Layout
		out.Layout = &layout
	}
	return out
}

// Clone deep copies every variant payload.
func (v VariantPayloads) Clone() VariantPayloads {
	if v == nil {
		return nil
	}
	out := make(VariantPayloads, len(v))
	for blockType, variants := range v {
		copied := make(map[string]blocks.Data, len(variants))
		for id, payload := range variants {
			copied[id] = blocks.CloneData(payload)
		}
		out[blockType] = copied
	}
	return out
}
