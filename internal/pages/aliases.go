package pages

import (
	"github.com/goliatone/go-composer/blocks"
	publicpages "github.com/goliatone/go-composer/pages"
)

type (
	Service           = publicpages.Service
	SavePageRequest   = publicpages.SavePageRequest
	Record            = publicpages.Record
	PageDefinition    = publicpages.PageDefinition
	VariantPayloads   = publicpages.VariantPayloads
	PageDocument      = publicpages.PageDocument
	PageNotFoundError = publicpages.PageNotFoundError
	ComponentInstance = blocks.ComponentInstance
)

var (
	ErrTenantRequired     = publicpages.ErrTenantRequired
	ErrSlugRequired       = publicpages.ErrSlugRequired
	ErrSlugInvalid        = publicpages.ErrSlugInvalid
	ErrPageNotFound       = publicpages.ErrPageNotFound
	ErrDocumentRequired   = publicpages.ErrDocumentRequired
	ErrStoreUnavailable   = publicpages.ErrStoreUnavailable
	ErrRecordTypeRequired = publicpages.ErrRecordTypeRequired
)
