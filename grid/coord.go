package grid

import "time"

// Coord is a 1-D coordinate sequence attached to a named axis. Exactly one of
// Values or Times is set: numeric coordinates use Values, time-typed
// coordinates use Times. Spacing derived from time coordinates is expressed in
// seconds, so transformed axes come out in hertz.
type Coord struct {
	Values []float64
	Times  []time.Time
}

// Numeric returns a numeric coordinate.
func Numeric(values []float64) Coord {
	return Coord{Values: append([]float64(nil), values...)}
}

// TimeCoord returns a time-typed coordinate.
func TimeCoord(times []time.Time) Coord {
	return Coord{Times: append([]time.Time(nil), times...)}
}

// Len returns the number of coordinate samples.
func (c Coord) Len() int {
	if c.IsTime() {
		return len(c.Times)
	}
	return len(c.Values)
}

// IsTime reports whether the coordinate is time-typed.
func (c Coord) IsTime() bool {
	return len(c.Times) > 0
}

func (c Coord) valid() bool {
	return len(c.Values) == 0 || len(c.Times) == 0
}

// Diffs returns the consecutive coordinate differences. Time coordinates are
// converted to seconds.
func (c Coord) Diffs() []float64 {
	n := c.Len()
	if n < 2 {
		return nil
	}
	out := make([]float64, n-1)
	if c.IsTime() {
		for i := range out {
			out[i] = c.Times[i+1].Sub(c.Times[i]).Seconds()
		}
		return out
	}
	for i := range out {
		out[i] = c.Values[i+1] - c.Values[i]
	}
	return out
}

// clone returns a deep copy.
func (c Coord) clone() Coord {
	return Coord{
		Values: append([]float64(nil), c.Values...),
		Times:  append([]time.Time(nil), c.Times...),
	}
}
