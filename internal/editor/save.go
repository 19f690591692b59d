package editor

import (
	"context"

	"github.com/goliatone/go-composer/internal/layout"
	"github.com/goliatone/go-composer/internal/pages"
)

// Save writes the whole page. The editor lock is released while the store
// call runs so edits can continue; those edits stay dirty. On failure the
// session is left as it was and the returned error is retryable when the
// store was at fault.
func (e *Editor) Save(ctx context.Context) (*pages.PageDocument, error) {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	e.mu.Lock()
	req := pages.SavePageRequest{
		TenantID:   e.tenantID,
		Slug:       e.slug,
		Components: layout.Flatten(e.zones),
		Variants:   pages.VariantPayloads(e.payloads.Snapshot()),
	}
	revision := e.revision
	e.mu.Unlock()

	doc, err := e.service.SavePageDefinition(ctx, req)
	if err != nil {
		e.logger.Error("editor.save_failed", "error", err, "revision", revision)
		return nil, err
	}

	e.mu.Lock()
	e.version = doc.Version
	if revision > e.saved {
		e.saved = revision
	}
	e.mu.Unlock()

	e.logger.Info("editor.saved", "version", doc.Version, "revision", revision)
	return doc, nil
}
