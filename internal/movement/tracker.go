package movement

import (
	"math"
	"sync"
	"time"

	"github.com/goliatone/go-composer/internal/geometry"
)

// DefaultDirection is reported for the first sample of a drag.
const DefaultDirection = geometry.DirectionDown

// Movement describes the pointer motion between two samples of one drag.
type Movement struct {
	Direction geometry.Direction
	Previous  geometry.Direction
	// Velocity is in pixels per millisecond.
	Velocity  float64
	Timestamp time.Time
}

type sample struct {
	position  geometry.Point
	direction geometry.Direction
	timestamp time.Time
}

// Tracker keeps the last pointer sample per drag id.
type Tracker struct {
	mu      sync.Mutex
	history map[string]sample
	now     func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used to stamp samples.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) {
		if clock != nil {
			t.now = clock
		}
	}
}

// NewTracker returns an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		history: make(map[string]sample),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TrackMovementInterval records current as the latest sample for dragID and
// returns the movement since the previous sample.
func (t *Tracker) TrackMovementInterval(current geometry.Point, axis geometry.Axis, dragID string) Movement {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.history[dragID]
	if !ok {
		t.history[dragID] = sample{position: current, direction: DefaultDirection, timestamp: now}
		return Movement{
			Direction: DefaultDirection,
			Previous:  DefaultDirection,
			Timestamp: now,
		}
	}

	offset := current.Sub(last.position)
	direction := geometry.DirectionFromOffset(offset, axis)

	var velocity float64
	if elapsed := float64(now.Sub(last.timestamp)) / float64(time.Millisecond); elapsed > 0 {
		velocity = math.Hypot(offset.X, offset.Y) / elapsed
	}

	t.history[dragID] = sample{position: current, direction: direction, timestamp: now}
	return Movement{
		Direction: direction,
		Previous:  last.direction,
		Velocity:  velocity,
		Timestamp: now,
	}
}

// ClearMovementHistory drops the samples recorded for dragID.
func (t *Tracker) ClearMovementHistory(dragID string) {
	t.mu.Lock()
	delete(t.history, dragID)
	t.mu.Unlock()
}

// Len returns the number of drags with recorded history.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.history)
}
