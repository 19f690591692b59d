package collision

import "github.com/goliatone/go-composer/internal/geometry"

// DefaultImpactOffset is the fraction of the target's size the dragged
// center must travel past the target's center before impact is confirmed.
const DefaultImpactOffset = 0.05

// DeepestDroppable returns the enabled target containing pointer with the
// greatest depth. Among equal depths the earliest target in the slice wins.
func DeepestDroppable(pointer geometry.Point, targets []Target) (Target, bool) {
	var (
		best  Target
		found bool
	)
	for _, target := range targets {
		if target.Disabled || !target.Shape.Contains(pointer) {
			continue
		}
		if !found || target.Depth > best.Depth {
			best = target
			found = true
		}
	}
	return best, found
}

// MidpointImpact reports whether center has crossed the midpoint of target
// in direction dir by at least fraction of the target's height (vertical) or
// width (horizontal). A fraction <= 0 selects DefaultImpactOffset. Unknown
// directions confirm impact.
func MidpointImpact(center geometry.Point, target geometry.Rect, dir geometry.Direction, fraction float64) bool {
	impact, err := MidpointImpactStrict(center, target, dir, fraction)
	if err != nil {
		return true
	}
	return impact
}

// MidpointImpactStrict behaves like MidpointImpact but returns
// ErrUnknownDirection for directions outside up, down, left and right.
func MidpointImpactStrict(center geometry.Point, target geometry.Rect, dir geometry.Direction, fraction float64) (bool, error) {
	if fraction <= 0 {
		fraction = DefaultImpactOffset
	}
	mid := target.Center()
	offsetY := target.Height * fraction
	offsetX := target.Width * fraction

	switch dir {
	case geometry.DirectionUp:
		return center.Y < mid.Y-offsetY, nil
	case geometry.DirectionDown:
		return center.Y > mid.Y+offsetY, nil
	case geometry.DirectionLeft:
		return center.X < mid.X-offsetX, nil
	case geometry.DirectionRight:
		return center.X > mid.X+offsetX, nil
	default:
		return false, ErrUnknownDirection
	}
}
