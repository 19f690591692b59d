package editorcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-composer/internal/commands"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

const updateVariantFieldMessageType = "composer.editor.update_variant_field"

// UpdateVariantFieldCommand writes one dot-path field of a variant payload.
type UpdateVariantFieldCommand struct {
	TenantID  string `json:"tenant_id"`
	Slug      string `json:"slug"`
	BlockType string `json:"block_type"`
	VariantID string `json:"variant_id"`
	Path      string `json:"path"`
	Value     any    `json:"value"`
}

// Type implements command.Message.
func (UpdateVariantFieldCommand) Type() string { return updateVariantFieldMessageType }

// Validate ensures the variant address is complete.
func (m UpdateVariantFieldCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.TenantID, validation.Required),
		validation.Field(&m.Slug, validation.Required),
		validation.Field(&m.BlockType, validation.Required),
		validation.Field(&m.VariantID, validation.Required),
		validation.Field(&m.Path, validation.Required),
	)
}

// NewUpdateVariantFieldHandler applies field edits to the session payloads.
func NewUpdateVariantFieldHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateVariantFieldCommand]) *commands.Handler[UpdateVariantFieldCommand] {
	exec := func(ctx context.Context, msg UpdateVariantFieldCommand) error {
		ed, err := sessions.Session(ctx, msg.TenantID, msg.Slug)
		if err != nil {
			return err
		}
		return ed.UpdateVariantField(msg.BlockType, msg.VariantID, msg.Path, msg.Value)
	}

	handlerOpts := []commands.HandlerOption[UpdateVariantFieldCommand]{
		commands.WithLogger[UpdateVariantFieldCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[UpdateVariantFieldCommand]("editor.update_variant_field"),
		commands.WithMessageFields(func(msg UpdateVariantFieldCommand) map[string]any {
			fields := pageFields(msg.TenantID, msg.Slug)
			fields["block_type"] = msg.BlockType
			fields["variant_id"] = msg.VariantID
			fields["path"] = msg.Path
			return fields
		}),
	}
	return commands.NewHandler(exec, append(handlerOpts, opts...)...)
}
