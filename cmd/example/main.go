package main

import (
	"context"
	"fmt"
	"log"

	composer "github.com/goliatone/go-composer"
	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/dnd"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/geometry"
	"github.com/goliatone/go-composer/internal/variants"
)

func main() {
	ctx := context.Background()

	cfg := composer.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"

	module, err := composer.New(cfg)
	if err != nil {
		log.Fatalf("new module: %v", err)
	}
	defer module.Close(ctx)

	// The preview is scrolled 100px and rendered at half size.
	canvas := &node{scroll: geometry.Point{Y: 100}, scale: geometry.Point{X: 0.5, Y: 0.5}}

	ed, err := module.OpenEditor(ctx, "acme", "home",
		editor.WithCanvas(canvas),
		editor.WithZoneChange(func(params dnd.ZoneParams, session *dnd.Session) {
			fmt.Printf("  over %-12s impact=%v direction=%s\n", params.Key(), session.Impact, session.Direction)
		}),
	)
	if err != nil {
		log.Fatalf("open editor: %v", err)
	}
	printPage("provisioned", ed.Components())

	// A page column with a two-cell grid inside it.
	// Viewport rectangles as the browser reports them.
	mustRegister(ed, blocks.RootZone, &node{parent: canvas, rect: geometry.Rect{Top: -100, Width: 400, Height: 600}}, 0)
	mustRegister(ed, "grid:left", &node{parent: canvas, rect: geometry.Rect{Left: 20, Top: 100, Width: 170, Height: 150}}, 1)
	mustRegister(ed, "grid:right", &node{parent: canvas, rect: geometry.Rect{Left: 210, Top: 100, Width: 170, Height: 150}}, 1)

	hero := ed.Components()[1]
	heroEl := &node{parent: canvas, rect: geometry.Rect{Left: 20, Top: 0, Width: 360, Height: 60}}
	fmt.Printf("\ndragging %s\n", hero.ID)
	if err := ed.DragStart(hero.ID, "demo-drag", editor.WithDragElement(heroEl), editor.WithDragPointer(geometry.Point{X: 200, Y: 30})); err != nil {
		log.Fatalf("drag start: %v", err)
	}
	path := []geometry.Point{{X: 200, Y: 50}, {X: 200, Y: 100}, {X: 100, Y: 175}, {X: 150, Y: 200}, {X: 250, Y: 210}}
	for _, pointer := range path {
		if _, _, err := ed.PointerMove("demo-drag", pointer); err != nil {
			log.Fatalf("pointer move: %v", err)
		}
	}
	if _, err := ed.Drop("demo-drag", "", 0); err != nil {
		log.Fatalf("drop: %v", err)
	}
	printPage("after drop", ed.Components())

	added, err := ed.AddComponent(editor.AddComponentInput{Type: variants.TypeCTA, Zone: blocks.RootZone, Index: 1})
	if err != nil {
		log.Fatalf("add component: %v", err)
	}
	if err := ed.UpdateVariantField(variants.TypeCTA, added.VariantID, "button.label", "Book a demo"); err != nil {
		log.Fatalf("update field: %v", err)
	}

	doc, err := ed.Save(ctx)
	if err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("\nsaved version %d\n", doc.Version)

	list, err := module.Pages().GetPageDefinition(ctx, "acme", "home")
	if err != nil {
		log.Fatalf("reload: %v", err)
	}
	printPage("stored", list)
}

// node is a rendered element as reported by the host page.
type node struct {
	parent *node
	rect   geometry.Rect
	scroll geometry.Point
	scale  geometry.Point
}

func (n *node) BoundingRect() geometry.Rect  { return n.rect }
func (n *node) ScrollOffset() geometry.Point { return n.scroll }
func (n *node) ScaleFactor() geometry.Point  { return n.scale }
func (n *node) Parent() geometry.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func mustRegister(ed *editor.Editor, id string, el geometry.Element, depth int) {
	if err := ed.RegisterDropTarget(id, el, depth); err != nil {
		log.Fatalf("register %s: %v", id, err)
	}
}

func printPage(label string, list []blocks.ComponentInstance) {
	fmt.Printf("\n%s:\n", label)
	for _, item := range list {
		fmt.Printf("  %-10s %d  %-24s %s\n", item.ZoneKey(), item.Position, item.ID, item.Type)
	}
}
