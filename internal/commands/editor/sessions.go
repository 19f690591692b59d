package editorcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-composer/internal/editor"
)

// ErrMoveRejected is returned when a move targets an invalid index.
var ErrMoveRejected = errors.New("editorcmd: move rejected")

// Sessions resolves the open editor session of a tenant page.
type Sessions interface {
	Session(ctx context.Context, tenantID, slug string) (*editor.Editor, error)
}

// SessionsFunc adapts a function to Sessions.
type SessionsFunc func(ctx context.Context, tenantID, slug string) (*editor.Editor, error)

func (f SessionsFunc) Session(ctx context.Context, tenantID, slug string) (*editor.Editor, error) {
	return f(ctx, tenantID, slug)
}

func pageFields(tenantID, slug string) map[string]any {
	return map[string]any{"tenant_id": tenantID, "slug": slug}
}
