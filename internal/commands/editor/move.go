package editorcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-composer/internal/commands"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

const moveComponentMessageType = "composer.editor.move_component"

// MoveComponentCommand moves a placed component to Index of Zone. An empty
// zone keeps the component in its current zone.
type MoveComponentCommand struct {
	TenantID    string `json:"tenant_id"`
	Slug        string `json:"slug"`
	ComponentID string `json:"component_id"`
	Zone        string `json:"zone,omitempty"`
	Index       int    `json:"index"`
}

// Type implements command.Message.
func (MoveComponentCommand) Type() string { return moveComponentMessageType }

// Validate checks the identifiers and index before reaching handlers.
func (m MoveComponentCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.TenantID, validation.Required),
		validation.Field(&m.Slug, validation.Required),
		validation.Field(&m.ComponentID, validation.Required),
		validation.Field(&m.Index, validation.Min(0)),
	)
}

// NewMoveComponentHandler runs a move as a drag that starts and drops in
// one step.
func NewMoveComponentHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[MoveComponentCommand]) *commands.Handler[MoveComponentCommand] {
	logger = commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg MoveComponentCommand) error {
		ed, err := sessions.Session(ctx, msg.TenantID, msg.Slug)
		if err != nil {
			return err
		}
		zone := strings.TrimSpace(msg.Zone)
		if zone == "" {
			current, err := ed.Component(msg.ComponentID)
			if err != nil {
				return err
			}
			zone = current.ZoneKey()
		}

		dragID := "cmd-" + uuid.NewString()
		if err := ed.DragStart(msg.ComponentID, dragID); err != nil {
			return err
		}
		moved, err := ed.Drop(dragID, zone, msg.Index)
		if err != nil {
			return err
		}
		if !moved {
			return ErrMoveRejected
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[MoveComponentCommand]{
		commands.WithLogger[MoveComponentCommand](logger),
		commands.WithOperation[MoveComponentCommand]("editor.move_component"),
		commands.WithMessageFields(func(msg MoveComponentCommand) map[string]any {
			fields := pageFields(msg.TenantID, msg.Slug)
			fields["component_id"] = msg.ComponentID
			fields["zone"] = msg.Zone
			fields["index"] = msg.Index
			return fields
		}),
	}
	return commands.NewHandler(exec, append(handlerOpts, opts...)...)
}
