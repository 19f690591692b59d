package geometry

import "math"

// Axis restricts which component of a movement determines direction.
type Axis string

const (
	AxisX    Axis = "x"
	AxisY    Axis = "y"
	AxisBoth Axis = "both"
)

// ParseAxis maps a config value to an Axis, defaulting to AxisY.
func ParseAxis(value string) Axis {
	switch Axis(value) {
	case AxisX, AxisBoth:
		return Axis(value)
	default:
		return AxisY
	}
}

// Direction is the direction of travel of a drag.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// Vertical reports whether d moves along the y axis.
func (d Direction) Vertical() bool {
	return d == DirectionUp || d == DirectionDown
}

// DirectionFromOffset derives the direction of travel for an offset. With
// AxisBoth the axis with the larger magnitude wins; ties go to y.
func DirectionFromOffset(offset Point, axis Axis) Direction {
	switch axis {
	case AxisX:
		return horizontal(offset.X)
	case AxisBoth:
		if math.Abs(offset.X) > math.Abs(offset.Y) {
			return horizontal(offset.X)
		}
		return vertical(offset.Y)
	default:
		return vertical(offset.Y)
	}
}

func vertical(dy float64) Direction {
	if dy > 0 {
		return DirectionDown
	}
	return DirectionUp
}

func horizontal(dx float64) Direction {
	if dx > 0 {
		return DirectionRight
	}
	return DirectionLeft
}
