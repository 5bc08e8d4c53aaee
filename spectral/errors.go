package spectral

import "errors"

var (
	// ErrUnevenSpacing reports a transform axis whose coordinate spacing is
	// not uniform within the configured tolerance.
	ErrUnevenSpacing = errors.New("spectral: coordinate is not evenly spaced")

	// ErrInvalidData reports non-finite values in eagerly materialized input.
	ErrInvalidData = errors.New("spectral: data must not contain NaN")

	// ErrUnsupportedDetrend reports a detrend request over too many axes or
	// dimensions, or over a degenerate axis.
	ErrUnsupportedDetrend = errors.New("spectral: unsupported detrend")

	// ErrChunkConstraint reports a chunk layout incompatible with the
	// requested operation.
	ErrChunkConstraint = errors.New("spectral: incompatible chunk layout")

	// ErrUnsupportedWindow reports an unknown tapering window name.
	ErrUnsupportedWindow = errors.New("spectral: unsupported window")

	// ErrDimensionMismatch reports two-input operations whose inputs have
	// inconsistent axis names.
	ErrDimensionMismatch = errors.New("spectral: input dimensions differ")

	// ErrDimensionality reports azimuthal or isotropic operations applied to
	// other than exactly two transform axes.
	ErrDimensionality = errors.New("spectral: operation requires exactly two transform axes")
)
