package variants_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/validation"
	"github.com/goliatone/go-composer/internal/variants"
)

func builtinStore(t *testing.T, blockType string, opts ...variants.StoreOption) *variants.Store {
	t.Helper()
	registry, err := variants.NewBuiltinRegistry()
	if err != nil {
		t.Fatalf("builtin registry: %v", err)
	}
	store, err := registry.Store(blockType, opts...)
	if err != nil {
		t.Fatalf("store %s: %v", blockType, err)
	}
	return store
}

func TestEnsureVariantSeedsTestimonialsDefault(t *testing.T) {
	store := builtinStore(t, variants.TypeTestimonials)

	patch := store.EnsureVariant(nil, "classic", nil)
	data, ok := patch["classic"]
	if !ok {
		t.Fatalf("expected patch for classic, got %v", patch)
	}
	items, _ := data["items"].([]any)
	if len(items) != 3 {
		t.Fatalf("expected three sample testimonials, got %d", len(items))
	}
}

func TestEnsureVariantIsIdempotent(t *testing.T) {
	store := builtinStore(t, variants.TypeHero)

	state, err := store.ApplyPatch(nil, store.EnsureVariant(nil, "split", blocks.Data{"title": "Mine"}))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	second := store.EnsureVariant(state, "split", blocks.Data{"title": "Other"})
	if !second.IsEmpty() {
		t.Fatalf("expected empty patch for existing variant, got %v", second)
	}
	if got := store.GetData(state, "split")["title"]; got != "Mine" {
		t.Fatalf("expected existing data to win, got %v", got)
	}
}

func TestEnsureVariantPrecedence(t *testing.T) {
	staged := variants.StagingFunc(func(blockType, variantID string) (blocks.Data, bool) {
		if blockType == variants.TypeHero && variantID == "staged" {
			return blocks.Data{"title": "From editor"}, true
		}
		return nil, false
	})
	store := builtinStore(t, variants.TypeHero, variants.WithStaging(staged))

	state := variants.State{"empty": blocks.Data{}}

	if got := store.EnsureVariant(state, "staged", blocks.Data{"title": "Initial"})["staged"]["title"]; got != "Initial" {
		t.Fatalf("expected initial to win, got %v", got)
	}
	if got := store.EnsureVariant(state, "staged", nil)["staged"]["title"]; got != "From editor" {
		t.Fatalf("expected staged payload, got %v", got)
	}
	if got := store.EnsureVariant(state, "empty", nil)["empty"]["title"]; got != "Build something people love" {
		t.Fatalf("expected default to seed empty variant, got %v", got)
	}
}

func TestGetDataNeverNil(t *testing.T) {
	registry, _ := variants.NewBuiltinRegistry()
	for _, blockType := range registry.Types() {
		store, err := registry.Store(blockType)
		if err != nil {
			t.Fatalf("store %s: %v", blockType, err)
		}
		data := store.GetData(nil, "missing")
		if data == nil || len(data) == 0 {
			t.Fatalf("%s: expected default payload, got %v", blockType, data)
		}
		data["mutated"] = true
		if _, leaked := store.GetData(nil, "missing")["mutated"]; leaked {
			t.Fatalf("%s: expected fresh default per call", blockType)
		}
	}
}

func TestUpdateByPathCopyOnWrite(t *testing.T) {
	store := builtinStore(t, variants.TypeText)

	state := variants.State{
		"default": blocks.Data{
			"body": "hello",
			"a":    map[string]any{"b": map[string]any{"d": "keep"}},
		},
	}
	before := state["default"]

	next, err := store.UpdateByPath(state, "default", "a.b.c", 5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got := store.GetData(next, "default")
	if value, _ := variants.GetPath(got, "a.b.c"); value != 5 {
		t.Fatalf("expected a.b.c=5, got %v", value)
	}
	if value, _ := variants.GetPath(got, "a.b.d"); value != "keep" {
		t.Fatalf("expected sibling preserved, got %v", value)
	}
	if _, ok := variants.GetPath(before, "a.b.c"); ok {
		t.Fatal("expected previous payload to remain unmodified")
	}
	if _, ok := variants.GetPath(state["default"], "a.b.c"); ok {
		t.Fatal("expected input state to remain unmodified")
	}
}

func TestUpdateByPathDefaultFillsAndRejectsConflicts(t *testing.T) {
	store := builtinStore(t, variants.TypeHero)

	next, err := store.UpdateByPath(nil, "v1", "cta.label", "Book now")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	data := next["v1"]
	if data["title"] != "Build something people love" {
		t.Fatalf("expected default-filled payload, got %v", data)
	}
	if label, _ := variants.GetPath(data, "cta.label"); label != "Book now" {
		t.Fatalf("expected nested update, got %v", label)
	}

	if _, err := store.UpdateByPath(next, "v1", "title.text", "x"); !errors.Is(err, variants.ErrPathConflict) {
		t.Fatalf("expected ErrPathConflict, got %v", err)
	}
	if _, err := store.UpdateByPath(next, "v1", " ", "x"); !errors.Is(err, variants.ErrPathRequired) {
		t.Fatalf("expected ErrPathRequired, got %v", err)
	}
	if _, err := store.UpdateByPath(next, "v1", "a..b", "x"); !errors.Is(err, variants.ErrPathRequired) {
		t.Fatalf("expected empty segment to fail, got %v", err)
	}
}

func TestSetDataValidatesAgainstSchema(t *testing.T) {
	store := builtinStore(t, variants.TypeGrid)

	if _, err := store.SetData(nil, "v1", blocks.Data{"columns": "three"}); !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}

	state, err := store.SetData(nil, "v1", blocks.Data{"columns": 2})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := store.GetData(state, "v1"); got["columns"] != 2 || got["items"] != nil {
		t.Fatalf("expected full replacement, got %v", got)
	}
}

func TestApplyPatchMergesOverExistingKeys(t *testing.T) {
	state := variants.State{"v1": blocks.Data{"title": "Old", "subtitle": "Keep"}}

	next, err := variants.ApplyPatch(state, variants.Patch{"v1": blocks.Data{"title": "New"}, "v2": blocks.Data{"title": "Second"}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if next["v1"]["title"] != "New" || next["v1"]["subtitle"] != "Keep" {
		t.Fatalf("unexpected merge result %v", next["v1"])
	}
	if next["v2"]["title"] != "Second" {
		t.Fatalf("expected new variant, got %v", next["v2"])
	}
	if state["v1"]["title"] != "Old" {
		t.Fatal("expected input state untouched")
	}
}
