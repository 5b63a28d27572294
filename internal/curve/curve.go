// Package curve wraps gonum's piecewise-linear interpolation for the
// declining/rising lookup tables used throughout the hydraulic and
// electrical models: pump displacement vs. pressure, PTU efficiency,
// autobrake deceleration targets, pedal-to-angle mappings, and battery
// discharge curves.
package curve

import (
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Point is one (x, y) sample of a lookup table.
type Point struct {
	X, Y float64
}

// Piecewise is an immutable, sorted-by-X piecewise-linear curve with
// clamped extrapolation (values outside the domain return the nearest
// endpoint's Y rather than extrapolating).
type Piecewise struct {
	xs, ys []float64
	pl     interp.PiecewiseLinear
	minX   float64
	maxX   float64
}

// New builds a Piecewise curve from unsorted points. Points sharing an X
// are not supported; the caller owns curve authoring correctness.
func New(points []Point) *Piecewise {
	sorted := append([]Point(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, p := range sorted {
		xs[i] = p.X
		ys[i] = p.Y
	}

	c := &Piecewise{xs: xs, ys: ys}
	if len(xs) >= 2 {
		if err := c.pl.Fit(xs, ys); err != nil {
			panic("curve: invalid points: " + err.Error())
		}
		c.minX = xs[0]
		c.maxX = xs[len(xs)-1]
	} else if len(xs) == 1 {
		c.minX = xs[0]
		c.maxX = xs[0]
	}
	return c
}

// At returns the interpolated (clamped) value at x.
func (c *Piecewise) At(x float64) float64 {
	switch len(c.xs) {
	case 0:
		return 0
	case 1:
		return c.ys[0]
	}
	if x <= c.minX {
		return c.ys[0]
	}
	if x >= c.maxX {
		return c.ys[len(c.ys)-1]
	}
	return c.pl.Predict(x)
}
