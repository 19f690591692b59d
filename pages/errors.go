package pages

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTenantRequired     = errors.New("pages: tenant id is required")
	ErrSlugRequired       = errors.New("pages: slug is required")
	ErrSlugInvalid        = errors.New("pages: slug contains invalid characters")
	ErrPageNotFound       = errors.New("pages: page not found")
	ErrDocumentRequired   = errors.New("pages: document is required")
	ErrStoreUnavailable   = errors.New("pages: page store unavailable")
	ErrRecordTypeRequired = errors.New("pages: record type is required")
)

// PageNotFoundError captures a missing tenant page document.
type PageNotFoundError struct {
	TenantID string
	Slug     string
}

func (e *PageNotFoundError) Error() string {
	if e == nil {
		return ErrPageNotFound.Error()
	}
	slug := strings.TrimSpace(e.Slug)
	if slug == "" {
		return ErrPageNotFound.Error()
	}
	if tenant := strings.TrimSpace(e.TenantID); tenant != "" {
		return fmt.Sprintf("%s: tenant=%s slug=%s", ErrPageNotFound.Error(), tenant, slug)
	}
	return fmt.Sprintf("%s: slug=%s", ErrPageNotFound.Error(), slug)
}

func (e *PageNotFoundError) Unwrap() error {
	return ErrPageNotFound
}
