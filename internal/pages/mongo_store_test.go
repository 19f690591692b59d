package pages_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/pages"
)

// Runs against a live server only when COMPOSER_TEST_MONGO_URI is set.
func TestMongoStoreRoundTrip(t *testing.T) {
	uri := os.Getenv("COMPOSER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("COMPOSER_TEST_MONGO_URI not set")
	}
	ctx := context.Background()

	collection := fmt.Sprintf("pages_test_%d", time.Now().UnixNano())
	store, client, err := pages.ConnectMongoStore(uri, "composer_test", collection)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Database("composer_test").Collection(collection).Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	if _, err := store.Load(ctx, "acme", "home"); !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}

	position := 1
	doc := &pages.PageDocument{
		TenantID: "acme",
		Slug:     "home",
		Version:  3,
		Definition: pages.PageDefinition{
			"grid-1": {Type: "grid", Data: blocks.Data{"title": "Features"}, Position: &position},
		},
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc.Version = 4
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("replace: %v", err)
	}

	loaded, err := store.Load(ctx, "acme", "home")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Version != 4 || loaded.Definition["grid-1"].Data["title"] != "Features" {
		t.Fatalf("unexpected document %+v", loaded)
	}
}
