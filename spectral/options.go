package spectral

// Detrend selects the trend removal applied before the transform.
type Detrend int

const (
	// DetrendNone applies no trend removal.
	DetrendNone Detrend = iota
	// DetrendConstant subtracts the mean over the transform axes.
	DetrendConstant
	// DetrendLinear subtracts the least-squares linear (1 axis), planar
	// (2 axes), or trilinear (3 axes) fit over the transform axes.
	DetrendLinear
)

// WindowHann is the separable Hann tapering window. It is currently the only
// supported window type.
const WindowHann = "hann"

const (
	defaultSpacingTol = 1e-3
	defaultBinFactor  = 4
)

// Option configures the spectral pipeline.
type Option func(*config)

type config struct {
	stol       float64
	dims       []string
	shift      bool
	detrend    Detrend
	window     bool
	windowType string
	density    bool
	nfactor    int
}

func defaultConfig() config {
	return config{
		stol:       defaultSpacingTol,
		shift:      true,
		windowType: WindowHann,
		density:    true,
		nfactor:    defaultBinFactor,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSpacingTolerance sets the relative tolerance used when validating
// coordinate spacing uniformity. The default is 1e-3.
func WithSpacingTolerance(stol float64) Option {
	return func(c *config) {
		if stol > 0 {
			c.stol = stol
		}
	}
}

// WithDims restricts the transform to the named axes. By default all axes are
// transformed.
func WithDims(dims ...string) Option {
	return func(c *config) {
		c.dims = append([]string(nil), dims...)
	}
}

// WithoutShift leaves the transform output in standard FFT order instead of
// centering the zero frequency.
func WithoutShift() Option {
	return func(c *config) {
		c.shift = false
	}
}

// WithDetrend selects the trend removal applied before the transform.
func WithDetrend(d Detrend) Option {
	return func(c *config) {
		c.detrend = d
	}
}

// WithWindow applies the Hann tapering window over the transform axes before
// the transform.
func WithWindow() Option {
	return func(c *config) {
		c.window = true
	}
}

// WithWindowType applies a named tapering window over the transform axes.
// Only [WindowHann] is supported; other names fail with
// [ErrUnsupportedWindow].
func WithWindowType(name string) Option {
	return func(c *config) {
		c.window = true
		c.windowType = name
	}
}

// WithoutDensity skips spectral-density normalization, leaving raw
// periodogram power.
func WithoutDensity() Option {
	return func(c *config) {
		c.density = false
	}
}

// WithBinFactor sets the azimuthal binning density: the radial spectrum uses
// N/nfactor bins, where N is the smaller transform axis length. The default
// is 4.
func WithBinFactor(nfactor int) Option {
	return func(c *config) {
		if nfactor > 0 {
			c.nfactor = nfactor
		}
	}
}
