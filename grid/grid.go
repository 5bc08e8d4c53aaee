package grid

import (
	"fmt"
	"slices"
)

// Array is a real-valued labeled N-dimensional array: row-major data with
// named axes, optional per-axis coordinates, scalar attributes, and an
// optional chunk layout. Transform operations never mutate their input; they
// construct fresh arrays.
type Array struct {
	dims   []string
	shape  []int
	data   []float64
	coords map[string]Coord
	attrs  map[string]float64
	chunks ChunkSpec
}

// ComplexArray is the complex-valued counterpart of [Array], produced by
// forward Fourier transforms.
type ComplexArray struct {
	dims   []string
	shape  []int
	data   []complex128
	coords map[string]Coord
	attrs  map[string]float64
}

// Option configures array construction.
type Option func(*arrayConfig)

type arrayConfig struct {
	coords map[string]Coord
	attrs  map[string]float64
	chunks ChunkSpec
}

// WithCoord attaches a coordinate to the named axis.
func WithCoord(dim string, c Coord) Option {
	return func(cfg *arrayConfig) {
		if cfg.coords == nil {
			cfg.coords = make(map[string]Coord)
		}
		cfg.coords[dim] = c
	}
}

// WithCoords attaches coordinates for several axes at once.
func WithCoords(coords map[string]Coord) Option {
	return func(cfg *arrayConfig) {
		for d, c := range coords {
			WithCoord(d, c)(cfg)
		}
	}
}

// WithAttr attaches a scalar attribute.
func WithAttr(name string, v float64) Option {
	return func(cfg *arrayConfig) {
		if cfg.attrs == nil {
			cfg.attrs = make(map[string]float64)
		}
		cfg.attrs[name] = v
	}
}

// WithAttrs attaches several scalar attributes at once.
func WithAttrs(attrs map[string]float64) Option {
	return func(cfg *arrayConfig) {
		for k, v := range attrs {
			WithAttr(k, v)(cfg)
		}
	}
}

// WithChunks declares the partition layout of the array. An axis absent from
// the spec is a single chunk.
func WithChunks(spec ChunkSpec) Option {
	return func(cfg *arrayConfig) {
		cfg.chunks = spec.clone()
	}
}

// New constructs a labeled array over row-major data.
func New(data []float64, shape []int, dims []string, opts ...Option) (*Array, error) {
	cfg, err := buildConfig(len(data), shape, dims, opts)
	if err != nil {
		return nil, err
	}

	return &Array{
		dims:   slices.Clone(dims),
		shape:  slices.Clone(shape),
		data:   data,
		coords: cfg.coords,
		attrs:  cfg.attrs,
		chunks: cfg.chunks,
	}, nil
}

// NewComplex constructs a complex-valued labeled array over row-major data.
// Complex arrays are transform outputs and carry no chunk layout.
func NewComplex(data []complex128, shape []int, dims []string, opts ...Option) (*ComplexArray, error) {
	cfg, err := buildConfig(len(data), shape, dims, opts)
	if err != nil {
		return nil, err
	}
	if len(cfg.chunks) > 0 {
		return nil, fmt.Errorf("%w: complex arrays cannot be chunked", ErrBadChunk)
	}

	return &ComplexArray{
		dims:   slices.Clone(dims),
		shape:  slices.Clone(shape),
		data:   data,
		coords: cfg.coords,
		attrs:  cfg.attrs,
	}, nil
}

func buildConfig(dataLen int, shape []int, dims []string, opts []Option) (arrayConfig, error) {
	var cfg arrayConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(dims) != len(shape) {
		return cfg, fmt.Errorf("%w: %d dims vs %d axes", ErrBadDims, len(dims), len(shape))
	}

	size := 1
	for _, n := range shape {
		if n <= 0 {
			return cfg, fmt.Errorf("%w: %v", ErrBadShape, shape)
		}
		size *= n
	}
	if size != dataLen {
		return cfg, fmt.Errorf("%w: %d elements vs shape %v", ErrShapeMismatch, dataLen, shape)
	}

	seen := make(map[string]bool, len(dims))
	for _, d := range dims {
		if d == "" || seen[d] {
			return cfg, fmt.Errorf("%w: %q", ErrBadDims, d)
		}
		seen[d] = true
	}

	for d, c := range cfg.coords {
		if !seen[d] {
			return cfg, unknownDim(d)
		}
		if !c.valid() {
			return cfg, fmt.Errorf("%w: %q", ErrCoordKind, d)
		}
		i := slices.Index(dims, d)
		if c.Len() != shape[i] {
			return cfg, fmt.Errorf("%w: %q has %d samples, axis has %d", ErrCoordLength, d, c.Len(), shape[i])
		}
	}

	for d, n := range cfg.chunks {
		if !seen[d] {
			return cfg, unknownDim(d)
		}
		i := slices.Index(dims, d)
		if n < 1 || n > shape[i] {
			return cfg, fmt.Errorf("%w: %q chunk %d, axis %d", ErrBadChunk, d, n, shape[i])
		}
	}

	return cfg, nil
}

// Dims returns the axis names in storage order.
func (a *Array) Dims() []string { return slices.Clone(a.dims) }

// Shape returns the axis lengths in storage order.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// NDim returns the number of axes.
func (a *Array) NDim() int { return len(a.dims) }

// Size returns the total number of elements.
func (a *Array) Size() int { return len(a.data) }

// Values returns the backing row-major data. Callers must not mutate it.
func (a *Array) Values() []float64 { return a.data }

// AxisIndex returns the positional index of a named axis.
func (a *Array) AxisIndex(dim string) (int, error) {
	i := slices.Index(a.dims, dim)
	if i < 0 {
		return 0, unknownDim(dim)
	}
	return i, nil
}

// AxisLen returns the length of a named axis.
func (a *Array) AxisLen(dim string) (int, error) {
	i, err := a.AxisIndex(dim)
	if err != nil {
		return 0, err
	}
	return a.shape[i], nil
}

// Coord returns the coordinate attached to a named axis, if any.
func (a *Array) Coord(dim string) (Coord, bool) {
	c, ok := a.coords[dim]
	return c, ok
}

// Coords returns a copy of all attached coordinates.
func (a *Array) Coords() map[string]Coord {
	out := make(map[string]Coord, len(a.coords))
	for d, c := range a.coords {
		out[d] = c.clone()
	}
	return out
}

// Attr returns a scalar attribute, if present.
func (a *Array) Attr(name string) (float64, bool) {
	v, ok := a.attrs[name]
	return v, ok
}

// Attrs returns a copy of all scalar attributes.
func (a *Array) Attrs() map[string]float64 {
	out := make(map[string]float64, len(a.attrs))
	for k, v := range a.attrs {
		out[k] = v
	}
	return out
}

// Chunked reports whether the array carries a partition layout.
func (a *Array) Chunked() bool { return len(a.chunks) > 0 }

// Chunks returns a copy of the partition layout.
func (a *Array) Chunks() ChunkSpec { return a.chunks.clone() }

// ChunkLen returns the chunk length along a named axis. Axes without an entry
// in the layout form a single chunk.
func (a *Array) ChunkLen(dim string) (int, error) {
	i, err := a.AxisIndex(dim)
	if err != nil {
		return 0, err
	}
	if n, ok := a.chunks[dim]; ok {
		return n, nil
	}
	return a.shape[i], nil
}

// Strides returns the row-major strides of the array.
func (a *Array) Strides() []int { return rowMajorStrides(a.shape) }

// Dims returns the axis names in storage order.
func (a *ComplexArray) Dims() []string { return slices.Clone(a.dims) }

// Shape returns the axis lengths in storage order.
func (a *ComplexArray) Shape() []int { return slices.Clone(a.shape) }

// NDim returns the number of axes.
func (a *ComplexArray) NDim() int { return len(a.dims) }

// Size returns the total number of elements.
func (a *ComplexArray) Size() int { return len(a.data) }

// Values returns the backing row-major data. Callers must not mutate it.
func (a *ComplexArray) Values() []complex128 { return a.data }

// AxisIndex returns the positional index of a named axis.
func (a *ComplexArray) AxisIndex(dim string) (int, error) {
	i := slices.Index(a.dims, dim)
	if i < 0 {
		return 0, unknownDim(dim)
	}
	return i, nil
}

// Coord returns the coordinate attached to a named axis, if any.
func (a *ComplexArray) Coord(dim string) (Coord, bool) {
	c, ok := a.coords[dim]
	return c, ok
}

// Coords returns a copy of all attached coordinates.
func (a *ComplexArray) Coords() map[string]Coord {
	out := make(map[string]Coord, len(a.coords))
	for d, c := range a.coords {
		out[d] = c.clone()
	}
	return out
}

// Attr returns a scalar attribute, if present.
func (a *ComplexArray) Attr(name string) (float64, bool) {
	v, ok := a.attrs[name]
	return v, ok
}

// Attrs returns a copy of all scalar attributes.
func (a *ComplexArray) Attrs() map[string]float64 {
	out := make(map[string]float64, len(a.attrs))
	for k, v := range a.attrs {
		out[k] = v
	}
	return out
}

// Strides returns the row-major strides of the array.
func (a *ComplexArray) Strides() []int { return rowMajorStrides(a.shape) }

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return strides
}
