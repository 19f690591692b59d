package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageDocumentRecord is the relational row holding one page document.
type PageDocumentRecord struct {
	bun.BaseModel `bun:"table:composer_page_documents,alias:cpd"`

	ID         uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	TenantID   string          `bun:"tenant_id,notnull" json:"tenant_id"`
	Slug       string          `bun:"slug,notnull" json:"slug"`
	Version    int             `bun:"version,notnull" json:"version"`
	Definition PageDefinition  `bun:"definition,type:jsonb,notnull" json:"definition"`
	Variants   VariantPayloads `bun:"variants,type:jsonb" json:"variants,omitempty"`
	CreatedAt  time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func recordFromDocument(id uuid.UUID, doc *PageDocument) *PageDocumentRecord {
	return &PageDocumentRecord{
		ID:         id,
		TenantID:   doc.TenantID,
		Slug:       doc.Slug,
		Version:    doc.Version,
		Definition: doc.Definition.Clone(),
		Variants:   doc.Variants.Clone(),
		UpdatedAt:  doc.UpdatedAt,
	}
}

func (r *PageDocumentRecord) document() *PageDocument {
	if r == nil {
		return nil
	}
	definition := r.Definition.Clone()
	if definition == nil {
		definition = PageDefinition{}
	}
	return &PageDocument{
		TenantID:   r.TenantID,
		Slug:       r.Slug,
		Version:    r.Version,
		Definition: definition,
		Variants:   r.Variants.Clone(),
		UpdatedAt:  r.UpdatedAt,
	}
}
