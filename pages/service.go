package pages

import (
	"context"

	"github.com/goliatone/go-composer/blocks"
)

// Service is the load/save boundary between the editor and the page document backend.
type Service interface {
	GetPageDefinition(ctx context.Context, tenantID, slug string) ([]blocks.ComponentInstance, error)
	LoadDocument(ctx context.Context, tenantID, slug string) (*PageDocument, error)
	SavePageDefinition(ctx context.Context, req SavePageRequest) (*PageDocument, error)
	Provision(ctx context.Context, tenantID, slug string) (*PageDocument, error)
}

// SavePageRequest replaces the full page document for a tenant page.
type SavePageRequest struct {
	TenantID   string
	Slug       string
	Components []blocks.ComponentInstance
	Variants   VariantPayloads
}
