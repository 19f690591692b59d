package editorcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-composer/internal/commands"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

const savePageMessageType = "composer.editor.save_page"

// SavePageCommand persists the session of a tenant page.
type SavePageCommand struct {
	TenantID string `json:"tenant_id"`
	Slug     string `json:"slug"`
}

// Type implements command.Message.
func (SavePageCommand) Type() string { return savePageMessageType }

func (m SavePageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.TenantID, validation.Required),
		validation.Field(&m.Slug, validation.Required),
	)
}

// NewSavePageHandler saves the session. Store failures come back retryable
// so dispatcher runners can retry them.
func NewSavePageHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[SavePageCommand]) *commands.Handler[SavePageCommand] {
	logger = commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SavePageCommand) error {
		ed, err := sessions.Session(ctx, msg.TenantID, msg.Slug)
		if err != nil {
			return err
		}
		if !ed.Dirty() {
			logger.Debug("editor.save_skipped", "tenant_id", msg.TenantID, "slug", msg.Slug)
			return nil
		}
		_, err = ed.Save(ctx)
		return err
	}

	handlerOpts := []commands.HandlerOption[SavePageCommand]{
		commands.WithLogger[SavePageCommand](logger),
		commands.WithOperation[SavePageCommand]("editor.save_page"),
		commands.WithMessageFields(func(msg SavePageCommand) map[string]any {
			return pageFields(msg.TenantID, msg.Slug)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SavePageCommand](nil)),
	}
	return commands.NewHandler(exec, append(handlerOpts, opts...)...)
}
