package editor

import (
	"errors"
	"fmt"
)

var (
	ErrServiceRequired   = errors.New("editor: page service required")
	ErrDragActive        = errors.New("editor: another drag is in progress")
	ErrNoActiveDrag      = errors.New("editor: no drag in progress")
	ErrDragIDRequired    = errors.New("editor: drag id required")
	ErrComponentNotFound = errors.New("editor: component not found")
)

// DragMismatchError reports an event for a drag other than the active one.
type DragMismatchError struct {
	Active   string
	Received string
}

func (e *DragMismatchError) Error() string {
	return fmt.Sprintf("editor: event for drag %q while %q is active", e.Received, e.Active)
}

func (e *DragMismatchError) Unwrap() error {
	return ErrNoActiveDrag
}
