package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch   = errors.New("flat buffer holds fewer scalars than the prototype requires")
	ErrTrailingScalars = errors.New("flat buffer holds more scalars than the prototypes consume")
)

// ShapeError provides detailed information about a failed read.
type ShapeError struct {
	Shape     string // Shape of the prototype being read
	Need      int    // Scalars the prototype requires
	Remaining int    // Scalars left in the buffer
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: %s needs %d scalars, %d remaining", e.Shape, e.Need, e.Remaining)
}

// Is reports whether target is ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}
