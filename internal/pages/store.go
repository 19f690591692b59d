package pages

import (
	"context"
	"strings"
)

// GlobalsSlug is the reserved slug under which a tenant's global variants
// (shared header, footer) are stored.
const GlobalsSlug = "_globals"

// Store persists whole page documents. Save replaces the stored document.
type Store interface {
	Load(ctx context.Context, tenantID, slug string) (*PageDocument, error)
	Save(ctx context.Context, doc *PageDocument) error
}

// BatchStore writes several documents as one unit: either every document is
// stored or none is. The service uses it to save a page together with the
// tenant globals document.
type BatchStore interface {
	Store
	SaveAll(ctx context.Context, docs ...*PageDocument) error
}

func storeKey(tenantID, slug string) string {
	return strings.TrimSpace(tenantID) + "/" + strings.TrimSpace(slug)
}

func notFound(tenantID, slug string) error {
	return &PageNotFoundError{TenantID: tenantID, Slug: slug}
}
