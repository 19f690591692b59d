package geometry_test

import (
	"testing"

	"github.com/goliatone/go-composer/internal/geometry"
)

type node struct {
	rect   geometry.Rect
	parent *node
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

func TestRectHelpers(t *testing.T) {
	r := geometry.Rect{Left: 10, Top: 20, Width: 100, Height: 40}

	if r.Right() != 110 || r.Bottom() != 60 {
		t.Fatalf("unexpected edges right=%v bottom=%v", r.Right(), r.Bottom())
	}
	if c := r.Center(); c != (geometry.Point{X: 60, Y: 40}) {
		t.Fatalf("unexpected center %+v", c)
	}
	if !r.Contains(geometry.Point{X: 110, Y: 60}) {
		t.Fatal("expected bottom-right corner to be contained")
	}
	if r.Contains(geometry.Point{X: 111, Y: 30}) {
		t.Fatal("expected point outside the right edge to be rejected")
	}
	if got := r.Scale(0, -2); got != r {
		t.Fatalf("expected non-positive scale to be ignored, got %+v", got)
	}
	if got := r.Translate(-10, 5); got.Left != 0 || got.Top != 25 || got.Width != 100 {
		t.Fatalf("unexpected translate result %+v", got)
	}
}

func TestAncestorCorrections(t *testing.T) {
	root := &node{scroll: geometry.Point{X: 0, Y: 100}, scale: geometry.Point{X: 1, Y: 1}}
	preview := &node{parent: root, scroll: geometry.Point{X: 5, Y: 20}, scale: geometry.Point{X: 2, Y: 2}}
	block := &node{
		parent: preview,
		rect:   geometry.Rect{Left: 15, Top: 80, Width: 200, Height: 60},
		scroll: geometry.Point{X: 999, Y: 999},
		scale:  geometry.Point{X: 0, Y: 0},
	}

	if got := geometry.ScrollOffsets(block); got != (geometry.Point{X: 5, Y: 120}) {
		t.Fatalf("expected ancestor scroll only, got %+v", got)
	}
	if got := geometry.ScaleFactors(block); got != (geometry.Point{X: 2, Y: 2}) {
		t.Fatalf("expected accumulated scale, got %+v", got)
	}

	shape := geometry.Measure(block)
	want := geometry.Rect{Left: 10, Top: 100, Width: 100, Height: 30}
	if shape != want {
		t.Fatalf("expected %+v, got %+v", want, shape)
	}

	pointer := geometry.AdjustPointer(geometry.Point{X: 115, Y: 110}, block)
	if !shape.Contains(pointer) {
		t.Fatalf("expected adjusted pointer %+v inside %+v", pointer, shape)
	}

	if got := geometry.PointerIn(geometry.Point{X: 115, Y: 110}, preview); got != pointer {
		t.Fatalf("expected pointer within preview %+v, got %+v", pointer, got)
	}

	if got := geometry.CenterOf(block); got != (geometry.Point{X: 115, Y: 110}) {
		t.Fatalf("unexpected viewport center %+v", got)
	}
	if got := geometry.Measure(nil); got != (geometry.Rect{}) {
		t.Fatalf("expected zero shape for nil element, got %+v", got)
	}
}

func TestDirectionFromOffset(t *testing.T) {
	cases := []struct {
		name   string
		offset geometry.Point
		axis   geometry.Axis
		want   geometry.Direction
	}{
		{"y positive", geometry.Point{Y: 3}, geometry.AxisY, geometry.DirectionDown},
		{"y zero", geometry.Point{X: 10}, geometry.AxisY, geometry.DirectionUp},
		{"x positive", geometry.Point{X: 1}, geometry.AxisX, geometry.DirectionRight},
		{"x negative", geometry.Point{X: -1, Y: 50}, geometry.AxisX, geometry.DirectionLeft},
		{"both horizontal", geometry.Point{X: -8, Y: 2}, geometry.AxisBoth, geometry.DirectionLeft},
		{"both vertical", geometry.Point{X: 1, Y: 4}, geometry.AxisBoth, geometry.DirectionDown},
		{"both tie", geometry.Point{X: 5, Y: -5}, geometry.AxisBoth, geometry.DirectionUp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := geometry.DirectionFromOffset(tc.offset, tc.axis); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseAxisDefaultsToY(t *testing.T) {
	if geometry.ParseAxis("diagonal") != geometry.AxisY {
		t.Fatal("expected unknown axis to default to y")
	}
	if geometry.ParseAxis("both") != geometry.AxisBoth {
		t.Fatal("expected both axis")
	}
}
