package pages

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPageDocumentRepository builds the go-repository-bun repository for page
// document rows, identified by "tenant/slug".
func NewPageDocumentRepository(db *bun.DB) repository.Repository[*PageDocumentRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageDocumentRecord]{
		NewRecord: func() *PageDocumentRecord { return &PageDocumentRecord{} },
		GetID: func(r *PageDocumentRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *PageDocumentRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(r *PageDocumentRecord) string {
			return r.Slug
		},
	})
}
