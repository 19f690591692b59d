package pages_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/pages"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/pkg/testsupport"
)

type warnRecorder struct {
	warnings []string
}

func (w *warnRecorder) Trace(string, ...any) {}
func (w *warnRecorder) Debug(string, ...any) {}
func (w *warnRecorder) Info(string, ...any)  {}
func (w *warnRecorder) Warn(msg string, _ ...any) {
	w.warnings = append(w.warnings, msg)
}
func (w *warnRecorder) Error(string, ...any)                          {}
func (w *warnRecorder) Fatal(string, ...any)                          {}
func (w *warnRecorder) WithFields(map[string]any) interfaces.Logger   { return w }
func (w *warnRecorder) WithContext(context.Context) interfaces.Logger { return w }

func loadHomeDefinition(t *testing.T) pages.PageDefinition {
	var def pages.PageDefinition
	testsupport.MustLoadJSONFixture(t, "testdata/home_definition.json", &def)
	return def
}

func instanceIDs(list []blocks.ComponentInstance) []string {
	out := make([]string, len(list))
	for i, item := range list {
		out[i] = item.ID
	}
	return out
}

func TestConvertObjectToArraySortsAndSkipsMalformed(t *testing.T) {
	logger := &warnRecorder{}
	list := pages.ConvertObjectToArray(loadHomeDefinition(t), logger)

	want := []string{"hero-1", "text-in-grid", "grid-1", "footer-1"}
	if got := instanceIDs(list); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(logger.warnings) != 1 {
		t.Fatalf("expected one skipped record warning, got %v", logger.warnings)
	}

	hero := list[0]
	if hero.Zone != blocks.RootZone || hero.Layout != (blocks.Layout{Row: 0, Col: 0, Span: 1}) {
		t.Fatalf("expected synthesized layout and root zone, got %+v", hero)
	}
	if list[2].Layout.Span != 2 {
		t.Fatalf("expected stored layout to be kept, got %+v", list[2].Layout)
	}
	if list[1].Zone != "grid-1:left" || list[1].Position != 0 {
		t.Fatalf("expected nested text with default position, got %+v", list[1])
	}
}

func TestConvertRoundTripPreservesDataAndOrder(t *testing.T) {
	def := loadHomeDefinition(t)
	first := pages.ConvertObjectToArray(def, nil)

	again := pages.ConvertObjectToArray(pages.ConvertArrayToObject(first, nil), nil)
	if !reflect.DeepEqual(instanceIDs(first), instanceIDs(again)) {
		t.Fatalf("expected order preserved, got %v vs %v", instanceIDs(first), instanceIDs(again))
	}
	for i := range first {
		if !reflect.DeepEqual(first[i].Data, again[i].Data) {
			t.Fatalf("payload mismatch for %s: %v vs %v", first[i].ID, first[i].Data, again[i].Data)
		}
	}
}

func TestConvertArrayToObjectUsesArrayOrder(t *testing.T) {
	list := []blocks.ComponentInstance{
		{ID: "zz-hero", Type: "hero", Position: 7},
		{ID: "mm-text", Type: "text", Zone: "zz-grid:left"},
		{ID: "aa-grid", Type: "grid"},
		{ID: "bb-footer", Type: "footer", Position: 1},
	}

	def := pages.ConvertArrayToObject(list, nil)
	if got := *def["mm-text"].Position; got != 0 {
		t.Fatalf("expected nested item first in its zone, got %d", got)
	}
	if got := def["bb-footer"].Layout.Row; got != 2 {
		t.Fatalf("expected layout row renumbered to 2, got %d", got)
	}

	var root []blocks.ComponentInstance
	for _, item := range pages.ConvertObjectToArray(def, nil) {
		if item.Zone == blocks.RootZone {
			root = append(root, item)
		}
	}
	want := []string{"zz-hero", "aa-grid", "bb-footer"}
	if got := instanceIDs(root); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestConvertArrayToObjectAssignsUniqueSyntheticIDs(t *testing.T) {
	list := []blocks.ComponentInstance{
		{Type: "hero", Position: 0, Data: blocks.Data{"title": "A"}},
		{Type: "hero", Position: 1, Data: blocks.Data{"title": "B"}},
		{ID: "kept", Type: "text", Position: 2},
	}

	def := pages.ConvertArrayToObject(list, pages.NewSyntheticIDs())
	if len(def) != 3 {
		t.Fatalf("expected three records, got %d", len(def))
	}
	if _, ok := def["kept"]; !ok {
		t.Fatal("expected existing id to be kept")
	}
	for id, record := range def {
		if id == "kept" {
			continue
		}
		if !strings.HasPrefix(id, "hero-") {
			t.Fatalf("expected type-prefixed id, got %s", id)
		}
		if record.Position == nil || record.Layout == nil {
			t.Fatalf("expected position and layout persisted for %s", id)
		}
	}

	back := pages.ConvertObjectToArray(def, nil)
	if back[0].Data["title"] != "A" || back[1].Data["title"] != "B" {
		t.Fatalf("expected order preserved by position, got %v", instanceIDs(back))
	}
}
