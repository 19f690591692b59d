package geometry

// Element is the read-only view of a rendered node the engine needs for
// hit-testing. Implementations report their own values only; ancestors are
// reached through Parent.
type Element interface {
	// BoundingRect is the node's rectangle in viewport coordinates.
	BoundingRect() Rect
	// Parent returns the enclosing element or nil at the root.
	Parent() Element
	// ScrollOffset is the scroll position of this node as a container.
	ScrollOffset() Point
	// ScaleFactor is the 2D scale applied by this node's transform.
	ScaleFactor() Point
}

// BoundingRect returns the viewport rectangle of el, or the zero Rect for nil.
func BoundingRect(el Element) Rect {
	if el == nil {
		return Rect{}
	}
	return el.BoundingRect()
}

// CenterOf returns the viewport center of el.
func CenterOf(el Element) Point {
	return BoundingRect(el).Center()
}

// ScrollOffsets sums the scroll offsets of every ancestor of el.
func ScrollOffsets(el Element) Point {
	var total Point
	if el == nil {
		return total
	}
	for node := el.Parent(); node != nil; node = node.Parent() {
		total = total.Add(node.ScrollOffset())
	}
	return total
}

// ScaleFactors multiplies the scale factors of every ancestor of el.
func ScaleFactors(el Element) Point {
	total := Point{X: 1, Y: 1}
	if el == nil {
		return total
	}
	for node := el.Parent(); node != nil; node = node.Parent() {
		s := node.ScaleFactor()
		total.X *= factor(s.X)
		total.Y *= factor(s.Y)
	}
	return total
}

// Measure returns the shape of el in document coordinates: ancestor scroll is
// added back and the accumulated ancestor scale removed.
func Measure(el Element) Shape {
	if el == nil {
		return Shape{}
	}
	scroll := ScrollOffsets(el)
	scale := ScaleFactors(el)
	return BoundingRect(el).Translate(scroll.X, scroll.Y).Scale(scale.X, scale.Y)
}

// AdjustPointer maps a viewport pointer into the coordinate space Measure
// produces for elements under el.
func AdjustPointer(p Point, el Element) Point {
	if el == nil {
		return p
	}
	scroll := ScrollOffsets(el)
	scale := ScaleFactors(el)
	p = p.Add(scroll)
	return Point{X: p.X / scale.X, Y: p.Y / scale.Y}
}

// PointerIn maps a viewport pointer into the coordinate space Measure
// produces for direct children of container, so the container's own scroll
// and scale apply along with its ancestors'.
func PointerIn(p Point, container Element) Point {
	if container == nil {
		return p
	}
	return AdjustPointer(p, childOf{parent: container})
}

type childOf struct {
	parent Element
}

func (c childOf) BoundingRect() Rect  { return Rect{} }
func (c childOf) Parent() Element     { return c.parent }
func (c childOf) ScrollOffset() Point { return Point{} }
func (c childOf) ScaleFactor() Point  { return Point{X: 1, Y: 1} }
