package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch reports data whose length disagrees with the shape.
	ErrShapeMismatch = errors.New("grid: data length does not match shape")

	// ErrBadShape reports a shape with non-positive axis lengths.
	ErrBadShape = errors.New("grid: shape entries must be positive")

	// ErrBadDims reports duplicate, empty, or miscounted axis names.
	ErrBadDims = errors.New("grid: dims must be unique, non-empty names")

	// ErrUnknownDim reports an axis name the array does not carry.
	ErrUnknownDim = errors.New("grid: unknown dimension")

	// ErrCoordLength reports a coordinate whose sample count disagrees with
	// its axis length.
	ErrCoordLength = errors.New("grid: coordinate length does not match axis")

	// ErrCoordKind reports a coordinate carrying both numeric and time values.
	ErrCoordKind = errors.New("grid: coordinate must be numeric or time-valued, not both")

	// ErrBadChunk reports a chunk length outside [1, axis length].
	ErrBadChunk = errors.New("grid: chunk length out of range")

	// ErrLayout reports a chunk layout that violates a blockwise function's
	// declared constraint.
	ErrLayout = errors.New("grid: chunk layout violates declared constraint")
)

func unknownDim(d string) error {
	return fmt.Errorf("%w: %q", ErrUnknownDim, d)
}
