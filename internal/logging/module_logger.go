package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-composer/pkg/interfaces"
)

const (
	rootModule     = "composer"
	pagesModule    = "composer.pages"
	variantsModule = "composer.variants"
	editorModule   = "composer.editor"
	dndModule      = "composer.dnd"
	commandsModule = "composer.commands"
)

const (
	fieldTenant = "tenant_id"
	fieldSlug   = "slug"
	fieldDragID = "drag_id"
	fieldItemID = "item_id"
)

// ModuleLogger resolves a logger for the named module and tags every entry
// with a "module" field. A nil provider yields the no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// PagesLogger is the logger used by page stores and the page service.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// VariantsLogger is the logger used by the block registry and variant store.
func VariantsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, variantsModule)
}

// EditorLogger is the logger used by editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// DnDLogger is the logger used by the drag-and-drop plugin.
func DnDLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, dndModule)
}

// CommandsLogger is the logger used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithPageContext tags a logger with the tenant and slug of the page being
// edited. Blank values are skipped.
func WithPageContext(logger interfaces.Logger, tenantID, slug string) interfaces.Logger {
	return WithFields(logger, compact(map[string]string{
		fieldTenant: tenantID,
		fieldSlug:   slug,
	}))
}

// WithDragContext tags a logger with the drag and item identifiers of an
// active drag session.
func WithDragContext(logger interfaces.Logger, dragID, itemID string) interfaces.Logger {
	return WithFields(logger, compact(map[string]string{
		fieldDragID: dragID,
		fieldItemID: itemID,
	}))
}

func compact(values map[string]string) map[string]any {
	fields := make(map[string]any, len(values))
	for key, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			fields[key] = trimmed
		}
	}
	return fields
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
