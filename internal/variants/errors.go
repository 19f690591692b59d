package variants

import (
	"errors"
	"fmt"
)

var (
	ErrBlockTypeRequired = errors.New("variants: block type required")
	ErrBlockTypeUnknown  = errors.New("variants: block type not registered")
	ErrBlockTypeExists   = errors.New("variants: block type already registered")
	ErrDefaultRequired   = errors.New("variants: default payload required")
	ErrVariantIDRequired = errors.New("variants: variant id required")
	ErrPathRequired      = errors.New("variants: path required")
	ErrPathConflict      = errors.New("variants: path traverses a non-object value")
)

// UnknownTypeError names the block type that failed lookup.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("variants: block type %q not registered", e.Type)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrBlockTypeUnknown
}
