package dnd

import (
	"errors"

	"github.com/goliatone/go-composer/internal/collision"
	"github.com/goliatone/go-composer/internal/geometry"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/movement"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

var (
	ErrSessionRequired = errors.New("dnd: session required")
	ErrDragIDRequired  = errors.New("dnd: drag id required")
)

// ChangeFunc is invoked when the resolved (area, zone) pair changes.
type ChangeFunc func(params ZoneParams, session *Session)

// Plugin resolves the nested zone under the pointer on every move tick and
// reports transitions.
type Plugin struct {
	targets  *collision.Registry
	tracker  *movement.Tracker
	onChange ChangeFunc
	axis     geometry.Axis
	offset   float64
	strict   bool
	logger   interfaces.Logger
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithOnChange registers the transition callback.
func WithOnChange(fn ChangeFunc) Option {
	return func(p *Plugin) { p.onChange = fn }
}

// WithAxis sets the axis used to derive the drag direction.
func WithAxis(axis geometry.Axis) Option {
	return func(p *Plugin) { p.axis = axis }
}

// WithImpactOffset sets the midpoint hysteresis fraction.
func WithImpactOffset(fraction float64) Option {
	return func(p *Plugin) {
		if fraction > 0 {
			p.offset = fraction
		}
	}
}

// WithStrictDirections makes unknown directions deny impact instead of
// confirming it.
func WithStrictDirections(strict bool) Option {
	return func(p *Plugin) { p.strict = strict }
}

// WithLogger sets the plugin logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlugin wires a plugin to the session's target registry and tracker.
// Nil collaborators are replaced with empty ones.
func NewPlugin(targets *collision.Registry, tracker *movement.Tracker, opts ...Option) *Plugin {
	if targets == nil {
		targets = collision.NewRegistry()
	}
	if tracker == nil {
		tracker = movement.NewTracker()
	}
	p := &Plugin{
		targets: targets,
		tracker: tracker,
		axis:    geometry.AxisY,
		offset:  collision.DefaultImpactOffset,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start prepares session for a new drag.
func (p *Plugin) Start(session *Session) error {
	if session == nil {
		return ErrSessionRequired
	}
	if session.DragID == "" {
		return ErrDragIDRequired
	}
	session.reset()
	p.tracker.ClearMovementHistory(session.DragID)
	if session.hasPointer {
		p.tracker.TrackMovementInterval(session.Pointer, p.axis, session.DragID)
	}
	logging.WithDragContext(p.logger, session.DragID, session.ItemID).Debug("dnd.start", "origin_zone", session.OriginZone, "origin_index", session.OriginIndex)
	return nil
}

// Move processes one pointer sample. It returns the resolved params and
// whether they differ from the previous tick; OnChange runs only then.
func (p *Plugin) Move(session *Session, pointer geometry.Point) (ZoneParams, bool) {
	if session == nil {
		return ZoneParams{}, false
	}
	session.follow(pointer)

	mv := p.tracker.TrackMovementInterval(pointer, p.axis, session.DragID)
	session.Direction = mv.Direction
	session.Velocity = mv.Velocity

	target, ok := collision.DeepestDroppable(pointer, p.targets.Targets())
	if !ok {
		session.Over = ""
		session.Impact = false
		return session.last, false
	}
	session.Over = target.ID
	session.Impact = p.impact(session.Center(), target.Shape, mv.Direction)

	params := ParseZoneID(target.ID)
	if session.hasLast && params == session.last {
		return params, false
	}
	session.last = params
	session.hasLast = true

	logging.WithDragContext(p.logger, session.DragID, session.ItemID).Debug("dnd.zone_changed", "area", params.Area, "zone", params.Zone)
	if p.onChange != nil {
		p.onChange(params, session)
	}
	return params, true
}

// End finishes the drag and returns the last resolved params.
func (p *Plugin) End(session *Session) (ZoneParams, bool) {
	if session == nil {
		return ZoneParams{}, false
	}
	params, ok := session.LastParams()
	p.finish(session, "dnd.end")
	return params, ok
}

// Cancel aborts the drag without a drop.
func (p *Plugin) Cancel(session *Session) {
	if session == nil {
		return
	}
	p.finish(session, "dnd.cancel")
}

func (p *Plugin) finish(session *Session, event string) {
	session.reset()
	p.tracker.ClearMovementHistory(session.DragID)
	logging.WithDragContext(p.logger, session.DragID, session.ItemID).Debug(event)
}

func (p *Plugin) impact(center geometry.Point, shape geometry.Rect, dir geometry.Direction) bool {
	if !p.strict {
		return collision.MidpointImpact(center, shape, dir, p.offset)
	}
	hit, err := collision.MidpointImpactStrict(center, shape, dir, p.offset)
	if err != nil {
		p.logger.Warn("dnd.unknown_direction", "direction", string(dir))
		return false
	}
	return hit
}
