package di

import (
	"context"
	"strings"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-composer/internal/commands"
	editorcmd "github.com/goliatone/go-composer/internal/commands/editor"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/geometry"
	"github.com/goliatone/go-composer/internal/logging"
)

type sessionEntry struct {
	ready  chan struct{}
	editor *editor.Editor
	err    error
}

var _ editorcmd.Sessions = (*Container)(nil)

// EditorOptions returns the editor options derived from Config.Drag and the
// container's logger, clock and id generator.
func (c *Container) EditorOptions() []editor.Option {
	return []editor.Option{
		editor.WithLogger(c.loggerProvider),
		editor.WithClock(c.clock),
		editor.WithIDGenerator(c.ids),
		editor.WithDragAxis(geometry.ParseAxis(strings.ToLower(strings.TrimSpace(c.Config.Drag.Axis)))),
		editor.WithImpactOffset(c.Config.Drag.ImpactOffset),
		editor.WithStrictDirections(c.Config.Drag.StrictDirections),
	}
}

// OpenEditor opens a fresh session that the container does not track.
func (c *Container) OpenEditor(ctx context.Context, tenantID, slug string, opts ...editor.Option) (*editor.Editor, error) {
	return editor.Open(ctx, c.pageSvc, c.registry, tenantID, slug, append(c.EditorOptions(), opts...)...)
}

// Session returns the tracked session of a tenant page, opening it on first
// use. Concurrent callers for the same page share one open.
func (c *Container) Session(ctx context.Context, tenantID, slug string) (*editor.Editor, error) {
	key := strings.TrimSpace(tenantID) + "/" + strings.TrimSpace(slug)

	c.sessionsMu.Lock()
	entry, ok := c.sessions[key]
	if !ok {
		entry = &sessionEntry{ready: make(chan struct{})}
		c.sessions[key] = entry
	}
	c.sessionsMu.Unlock()

	if ok {
		select {
		case <-entry.ready:
			return entry.editor, entry.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	entry.editor, entry.err = c.OpenEditor(ctx, tenantID, slug)
	close(entry.ready)
	if entry.err != nil {
		c.sessionsMu.Lock()
		if c.sessions[key] == entry {
			delete(c.sessions, key)
		}
		c.sessionsMu.Unlock()
	}
	return entry.editor, entry.err
}

// CloseSession forgets the tracked session of a tenant page. Unsaved edits
// are dropped.
func (c *Container) CloseSession(tenantID, slug string) {
	c.sessionsMu.Lock()
	defer c.sessionsMu.Unlock()
	delete(c.sessions, strings.TrimSpace(tenantID)+"/"+strings.TrimSpace(slug))
}

// CommandHandlers groups the editor command handlers bound to the
// container's sessions.
type CommandHandlers struct {
	MoveComponent      *commands.Handler[editorcmd.MoveComponentCommand]
	UpdateVariantField *commands.Handler[editorcmd.UpdateVariantFieldCommand]
	SavePage           *commands.Handler[editorcmd.SavePageCommand]
}

// Commands builds the editor command handlers.
func (c *Container) Commands() CommandHandlers {
	logger := commands.CommandLogger(c.loggerProvider, "editor")
	return CommandHandlers{
		MoveComponent:      editorcmd.NewMoveComponentHandler(c, logger),
		UpdateVariantField: editorcmd.NewUpdateVariantFieldHandler(c, logger),
		SavePage:           editorcmd.NewSavePageHandler(c, logger),
	}
}

// SubscribeCommands registers the editor handlers with the go-command
// dispatcher. Saves are retried saveRetries times. The returned func
// removes every subscription.
func (c *Container) SubscribeCommands(saveRetries int) func() {
	handlers := c.Commands()
	move := dispatcher.SubscribeCommand(handlers.MoveComponent)
	update := dispatcher.SubscribeCommand(handlers.UpdateVariantField)
	save := dispatcher.SubscribeCommand(handlers.SavePage, runner.WithMaxRetries(max(saveRetries, 0)))

	logging.CommandsLogger(c.loggerProvider).Debug("di.commands_subscribed", "save_retries", saveRetries)
	return func() {
		move.Unsubscribe()
		update.Unsubscribe()
		save.Unsubscribe()
	}
}
