package collision

import "errors"

var (
	ErrTargetIDRequired = errors.New("collision: target id required")
	ErrTargetExists     = errors.New("collision: target already registered")
	ErrTargetNotFound   = errors.New("collision: target not found")
	ErrUnknownDirection = errors.New("collision: unknown direction")
	ErrElementRequired  = errors.New("collision: element required")
)
