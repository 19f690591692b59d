package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	goerrors "github.com/goliatone/go-errors"
)

var errPageStoreDown = errors.New("page store down")

type flushPageCommand struct {
	TenantID string
	Slug     string
}

func (flushPageCommand) Type() string { return "composer.test.flush_page" }

func (c flushPageCommand) Validate() error {
	if c.TenantID == "" || c.Slug == "" {
		return errors.New("tenant and slug required")
	}
	return nil
}

type publishPageCommand struct {
	Slug string
}

func (publishPageCommand) Type() string { return "composer.test.publish_page" }

func (publishPageCommand) Validate() error { return nil }

func TestDispatcherRetriesTransientStoreFailure(t *testing.T) {
	saved := map[string]int{}
	var attempts int
	handler := NewHandler(func(ctx context.Context, cmd flushPageCommand) error {
		attempts++
		if attempts == 1 {
			return goerrors.WrapRetryable(errPageStoreDown, goerrors.CategoryExternal, "save page")
		}
		saved[cmd.TenantID+"/"+cmd.Slug]++
		return nil
	}, WithTimeout[flushPageCommand](time.Second), WithOperation[flushPageCommand]("pages.flush"))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), flushPageCommand{TenantID: "acme", Slug: "home"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if saved["acme/home"] != 1 {
		t.Fatalf("expected one persisted save, got %v", saved)
	}
}

func TestDispatcherSurfacesStoreFailureAfterRetries(t *testing.T) {
	var attempts int
	handler := NewHandler(func(ctx context.Context, _ publishPageCommand) error {
		attempts++
		return errPageStoreDown
	}, WithTimeout[publishPageCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	err := dispatcher.Dispatch(context.Background(), publishPageCommand{Slug: "pricing"})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}
