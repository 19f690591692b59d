package composer

import (
	"context"

	"github.com/goliatone/go-composer/internal/di"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/variants"
	"github.com/goliatone/go-composer/pages"
)

// PageService exports the page definition service contract.
type PageService = pages.Service

// Editor is one tenant's editing session for one page.
type Editor = editor.Editor

// EditorOption configures an editor session.
type EditorOption = editor.Option

// BlockRegistry holds the block types sessions can place.
type BlockRegistry = variants.Registry

// BlockTypeDescriptor describes a block type.
type BlockTypeDescriptor = variants.BlockTypeDescriptor

// CommandHandlers groups the editor command handlers.
type CommandHandlers = di.CommandHandlers

// Module is the top level composer runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a composer module from cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Blocks returns the block type registry shared by new sessions.
func (m *Module) Blocks() *BlockRegistry {
	return m.container.BlockRegistry()
}

// OpenEditor opens an untracked editing session for a tenant page.
func (m *Module) OpenEditor(ctx context.Context, tenantID, slug string, opts ...EditorOption) (*Editor, error) {
	return m.container.OpenEditor(ctx, tenantID, slug, opts...)
}

// Session returns the tracked session of a tenant page, opening it once.
func (m *Module) Session(ctx context.Context, tenantID, slug string) (*Editor, error) {
	return m.container.Session(ctx, tenantID, slug)
}

// Commands returns the editor command handlers bound to tracked sessions.
func (m *Module) Commands() CommandHandlers {
	return m.container.Commands()
}

// Close releases storage connections.
func (m *Module) Close(ctx context.Context) error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close(ctx)
}
