package editorcmd_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-composer/internal/commands"
	editorcmd "github.com/goliatone/go-composer/internal/commands/editor"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/pages"
	"github.com/goliatone/go-composer/internal/variants"
)

type flakyStore struct {
	MemoryStore *pages.MemoryStore
	failures    int
}

func (s *flakyStore) Load(ctx context.Context, tenantID, slug string) (*pages.PageDocument, error) {
	return s.MemoryStore.Load(ctx, tenantID, slug)
}

func (s *flakyStore) Save(ctx context.Context, doc *pages.PageDocument) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("backend down")
	}
	return s.MemoryStore.Save(ctx, doc)
}

func openSession(t *testing.T, store pages.Store) (*editor.Editor, editorcmd.Sessions) {
	t.Helper()
	ids := []string{"header-1", "hero-1", "footer-1"}
	next := 0
	svc := pages.NewService(store, pages.WithIDGenerator(pages.IDGeneratorFunc(func(string) string {
		id := ids[next%len(ids)]
		next++
		return id
	})))
	ed, err := editor.Open(context.Background(), svc, nil, "acme", "home")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sessions := editorcmd.SessionsFunc(func(_ context.Context, tenantID, slug string) (*editor.Editor, error) {
		if tenantID != "acme" || slug != "home" {
			return nil, pages.ErrPageNotFound
		}
		return ed, nil
	})
	return ed, sessions
}

func componentIDs(ed *editor.Editor) []string {
	var out []string
	for _, item := range ed.Components() {
		out = append(out, item.ID)
	}
	return out
}

func TestMoveComponentHandler(t *testing.T) {
	ed, sessions := openSession(t, pages.NewMemoryStore())
	handler := editorcmd.NewMoveComponentHandler(sessions, commands.CommandLogger(nil, "editor"))

	err := handler.Execute(context.Background(), editorcmd.MoveComponentCommand{
		TenantID: "acme", Slug: "home", ComponentID: "hero-1", Index: 2,
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	got := componentIDs(ed)
	if len(got) != 3 || got[0] != "header-1" || got[1] != "footer-1" || got[2] != "hero-1" {
		t.Fatalf("unexpected order %v", got)
	}
	if !ed.Dirty() {
		t.Fatal("expected move to mark session dirty")
	}

	err = handler.Execute(context.Background(), editorcmd.MoveComponentCommand{
		TenantID: "acme", Slug: "home", ComponentID: "hero-1", Index: 9,
	})
	if !errors.Is(err, editorcmd.ErrMoveRejected) {
		t.Fatalf("expected ErrMoveRejected, got %v", err)
	}
	if _, active := ed.ActiveDrag(); active {
		t.Fatal("expected rejected move to end its drag")
	}
}

func TestMoveComponentValidation(t *testing.T) {
	_, sessions := openSession(t, pages.NewMemoryStore())
	handler := editorcmd.NewMoveComponentHandler(sessions, nil)

	err := handler.Execute(context.Background(), editorcmd.MoveComponentCommand{TenantID: "acme", Index: -1})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateVariantFieldHandler(t *testing.T) {
	ed, sessions := openSession(t, pages.NewMemoryStore())
	handler := editorcmd.NewUpdateVariantFieldHandler(sessions, nil)

	err := handler.Execute(context.Background(), editorcmd.UpdateVariantFieldCommand{
		TenantID: "acme", Slug: "home", BlockType: variants.TypeHero, VariantID: "default",
		Path: "title", Value: "Launch week",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	data, err := ed.VariantData(variants.TypeHero, "default")
	if err != nil || data["title"] != "Launch week" {
		t.Fatalf("expected updated title, got %+v err=%v", data, err)
	}
}

func TestSavePageRetriesThroughDispatcher(t *testing.T) {
	store := &flakyStore{MemoryStore: pages.NewMemoryStore()}
	ed, sessions := openSession(t, store)
	if err := ed.UpdateVariantField(variants.TypeHero, "default", "title", "Retry"); err != nil {
		t.Fatalf("update: %v", err)
	}

	handler := editorcmd.NewSavePageHandler(sessions, nil, commands.WithTimeout[editorcmd.SavePageCommand](time.Second))
	store.failures = 1
	err := handler.Execute(context.Background(), editorcmd.SavePageCommand{TenantID: "acme", Slug: "home"})
	if !goerrors.IsRetryableError(err) {
		t.Fatalf("expected retryable save error, got %v", err)
	}
	if !ed.Dirty() {
		t.Fatal("expected failed save to keep session dirty")
	}

	store.failures = 1
	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)
	if err := dispatcher.Dispatch(context.Background(), editorcmd.SavePageCommand{TenantID: "acme", Slug: "home"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if ed.Dirty() {
		t.Fatal("expected retried save to clear dirty state")
	}
}
