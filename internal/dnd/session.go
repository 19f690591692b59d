package dnd

import (
	"time"

	"github.com/goliatone/go-composer/internal/geometry"
)

// Session is the state of one in-progress drag. It lives from Start until
// End or Cancel and is never persisted.
type Session struct {
	DragID      string
	ItemID      string
	OriginZone  string
	OriginIndex int
	StartedAt   time.Time

	// Pointer is the last normalized pointer sample.
	Pointer geometry.Point
	// Shape is the dragged item's rectangle. It follows the pointer on every
	// move and its center drives the midpoint test. When empty the pointer
	// stands in for the center.
	Shape     geometry.Rect
	Direction geometry.Direction
	Velocity  float64
	// Over is the id of the deepest target under the pointer, if any.
	Over   string
	Impact bool

	last       ZoneParams
	hasLast    bool
	hasPointer bool
}

// StartAt records where the pointer grabbed the item so the first move
// translates Shape by the real delta.
func (s *Session) StartAt(pointer geometry.Point) {
	s.Pointer = pointer
	s.hasPointer = true
}

// Center is the point used for the midpoint test.
func (s *Session) Center() geometry.Point {
	if s.Shape.IsEmpty() {
		return s.Pointer
	}
	return s.Shape.Center()
}

func (s *Session) follow(pointer geometry.Point) {
	if s.hasPointer {
		delta := pointer.Sub(s.Pointer)
		s.Shape = s.Shape.Translate(delta.X, delta.Y)
	}
	s.Pointer = pointer
	s.hasPointer = true
}

// LastParams returns the zone pair resolved on the most recent transition.
func (s *Session) LastParams() (ZoneParams, bool) {
	if s == nil {
		return ZoneParams{}, false
	}
	return s.last, s.hasLast
}

func (s *Session) reset() {
	s.last = ZoneParams{}
	s.hasLast = false
	s.Over = ""
	s.Impact = false
}
