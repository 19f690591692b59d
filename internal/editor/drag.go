package editor

import (
	"strings"

	"github.com/goliatone/go-composer/internal/dnd"
	"github.com/goliatone/go-composer/internal/geometry"
	"github.com/goliatone/go-composer/internal/layout"
	"github.com/goliatone/go-composer/internal/logging"
)

// DragOption describes where a drag starts.
type DragOption func(*dragStart)

type dragStart struct {
	shape      geometry.Rect
	element    geometry.Element
	pointer    geometry.Point
	hasPointer bool
}

// WithDragElement measures the dragged item from its rendered element.
func WithDragElement(el geometry.Element) DragOption {
	return func(d *dragStart) { d.element = el }
}

// WithDragShape sets the dragged item's rectangle in canvas coordinates.
func WithDragShape(shape geometry.Rect) DragOption {
	return func(d *dragStart) { d.shape = shape }
}

// WithDragPointer records the viewport pointer that grabbed the item.
func WithDragPointer(pointer geometry.Point) DragOption {
	return func(d *dragStart) {
		d.pointer = pointer
		d.hasPointer = true
	}
}

// DragStart begins dragging the component itemID. Only one drag may be
// active.
func (e *Editor) DragStart(itemID, dragID string, opts ...DragOption) error {
	start := dragStart{}
	for _, opt := range opts {
		opt(&start)
	}
	if start.element != nil {
		start.shape = geometry.Measure(start.element)
	}

	dragID = strings.TrimSpace(dragID)
	if dragID == "" {
		return ErrDragIDRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		return ErrDragActive
	}
	zone, index, ok := e.locate(itemID)
	if !ok {
		return ErrComponentNotFound
	}

	session := &dnd.Session{
		DragID:      dragID,
		ItemID:      itemID,
		OriginZone:  zone,
		OriginIndex: index,
		StartedAt:   e.now(),
		Shape:       start.shape,
	}
	if start.hasPointer {
		session.StartAt(geometry.PointerIn(start.pointer, e.canvas))
	}
	if err := e.plugin.Start(session); err != nil {
		return err
	}
	e.active = session
	return nil
}

// PointerMove feeds one viewport pointer sample of the active drag. The
// sample is normalized against the canvas before hit-testing. It returns
// the zone under the pointer and whether it changed since the last sample.
func (e *Editor) PointerMove(dragID string, pointer geometry.Point) (dnd.ZoneParams, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, err := e.activeSession(dragID)
	if err != nil {
		return dnd.ZoneParams{}, false, err
	}
	params, changed := e.plugin.Move(session, geometry.PointerIn(pointer, e.canvas))
	return params, changed, nil
}

// ActiveDrag returns a copy of the active drag session.
func (e *Editor) ActiveDrag() (dnd.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return dnd.Session{}, false
	}
	return *e.active, true
}

// Drop ends the active drag by moving its item to dstIndex of dstZone. An
// empty dstZone uses the zone last resolved under the pointer, falling back
// to the origin zone. Invalid targets end the drag without moving anything
// and report false.
func (e *Editor) Drop(dragID, dstZone string, dstIndex int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, err := e.activeSession(dragID)
	if err != nil {
		return false, err
	}

	params, resolved := e.plugin.End(session)
	e.active = nil
	logger := logging.WithDragContext(e.logger, session.DragID, session.ItemID)

	if strings.TrimSpace(dstZone) == "" {
		dstZone = session.OriginZone
		if resolved && !params.IsZero() {
			dstZone = params.Key()
		}
	}

	if err := dnd.ValidateZoneID(dstZone); err != nil {
		logger.Warn("editor.drop_ignored", "zone", dstZone, "error", err)
		return false, nil
	}

	// Indices may have shifted since the drag started.
	srcZone, srcIndex, ok := e.locate(session.ItemID)
	if !ok {
		logger.Warn("editor.drop_ignored", "reason", "item removed during drag")
		return false, nil
	}

	moved, ok := layout.MoveAcrossZones(e.zones, srcZone, srcIndex, zoneKey(dstZone), dstIndex)
	if !ok {
		logger.Warn("editor.drop_ignored", "zone", dstZone, "index", dstIndex)
		return false, nil
	}
	e.zones = pruneEmpty(moved)
	e.touch()
	logger.Debug("editor.dropped", "from_zone", srcZone, "from_index", srcIndex, "zone", dstZone, "index", dstIndex)
	return true, nil
}

// Cancel aborts the active drag and clears its history.
func (e *Editor) Cancel(dragID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, err := e.activeSession(dragID)
	if err != nil {
		return err
	}
	e.plugin.Cancel(session)
	e.active = nil
	return nil
}

func (e *Editor) activeSession(dragID string) (*dnd.Session, error) {
	if e.active == nil {
		return nil, ErrNoActiveDrag
	}
	if e.active.DragID != dragID {
		return nil, &DragMismatchError{Active: e.active.DragID, Received: dragID}
	}
	return e.active, nil
}

func pruneEmpty(zones layout.Zones) layout.Zones {
	for key, list := range zones {
		if len(list) == 0 && key != dnd.RootZone {
			delete(zones, key)
		}
	}
	return zones
}
