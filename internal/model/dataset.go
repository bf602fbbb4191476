package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DataSet holds paired samples in file order.
// X[i] and Y[i] form one point. X is expected to be non-decreasing but this
// is neither enforced nor corrected.
type DataSet struct {
	X []float64
	Y []float64
}

// NewDataSet creates an empty DataSet.
func NewDataSet() *DataSet {
	return &DataSet{
		X: make([]float64, 0),
		Y: make([]float64, 0),
	}
}

// Append adds one (x, y) pair to the end of the data set.
func (d *DataSet) Append(x, y float64) {
	d.X = append(d.X, x)
	d.Y = append(d.Y, y)
}

// Len returns the number of pairs.
func (d *DataSet) Len() int {
	if d == nil {
		return 0
	}
	return len(d.X)
}

// Validate checks that the data set is non-empty and that X and Y line up.
func (d *DataSet) Validate() error {
	if d == nil || (len(d.X) == 0 && len(d.Y) == 0) {
		return ErrNoDataPoints
	}
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(d.X), len(d.Y))
	}
	return nil
}

// Clone returns a deep copy so callers can transform values freely.
func (d *DataSet) Clone() *DataSet {
	c := &DataSet{
		X: make([]float64, len(d.X)),
		Y: make([]float64, len(d.Y)),
	}
	copy(c.X, d.X)
	copy(c.Y, d.Y)
	return c
}

// FitDomain returns n evenly spaced x values for drawing the regression line.
//
// The range runs from the first x value to the last x value rounded to the
// nearest integer, both inclusive. Only the end is rounded; when roundStart
// is true the first value is rounded as well. Rounding is half-to-even so
// that 2.5 rounds to 2, matching plots produced by earlier tooling.
func FitDomain(d *DataSet, n int, roundStart bool) ([]float64, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleCount, n)
	}

	lo := d.X[0]
	if roundStart {
		lo = math.RoundToEven(lo)
	}
	hi := math.RoundToEven(d.X[len(d.X)-1])

	domain := floats.Span(make([]float64, n), lo, hi)
	// Pin the end so it is exact regardless of accumulated step error.
	domain[n-1] = hi
	return domain, nil
}

// RenderRequest is the input for one render: where to write, which curve,
// and which points. It lives only for the duration of a single run.
type RenderRequest struct {
	Output string
	Spec   RegressionSpec
	Data   *DataSet
}
