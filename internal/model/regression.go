package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RegressionKind identifies the closed-form curve drawn over the data.
//
// Design decision: The set is closed, so we use iota-based constants and a
// switch in Eval instead of an interface with one implementation per kind.
// The zero value is KindUnknown so that an unset kind never evaluates.
type RegressionKind int

const (
	// KindUnknown is the zero value and never a valid kind.
	KindUnknown RegressionKind = iota

	// Linear is f(v) = a + b*v.
	Linear

	// Power is f(v) = a * v^b.
	Power

	// Exponential is f(v) = a * b^v.
	Exponential
)

// kinds lists the valid kinds in a stable order.
var kinds = []RegressionKind{Linear, Power, Exponential}

// Kinds returns every valid regression kind in a stable order.
func Kinds() []RegressionKind {
	out := make([]RegressionKind, len(kinds))
	copy(out, kinds)
	return out
}

// String returns the label used in parameters files and plot titles.
func (k RegressionKind) String() string {
	switch k {
	case Linear:
		return "Linear"
	case Power:
		return "Power"
	case Exponential:
		return "Exponential"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of Linear, Power or Exponential.
func (k RegressionKind) Valid() bool {
	return k == Linear || k == Power || k == Exponential
}

// ParseKind converts a label into a RegressionKind.
// The label must match exactly; "linear" is rejected. When a label only
// differs from a valid one by case or surrounding spaces, the error carries
// a suggestion so the user can fix the parameters file quickly.
func ParseKind(label string) (RegressionKind, error) {
	for _, k := range kinds {
		if k.String() == label {
			return k, nil
		}
	}

	suggestion := cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(label)))
	for _, k := range kinds {
		if k.String() == suggestion {
			return KindUnknown, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownKind, label, suggestion)
		}
	}

	return KindUnknown, fmt.Errorf("%w: %q (expected Linear, Power or Exponential)", ErrUnknownKind, label)
}

// RegressionSpec is a regression kind with its two coefficients.
// It is immutable after load; all methods use value receivers.
type RegressionSpec struct {
	Kind RegressionKind
	A    float64
	B    float64
}

// Validate returns ErrUnknownKind if the kind is not one of the three valid kinds.
func (s RegressionSpec) Validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKind, s.Kind)
	}
	return nil
}

// Eval evaluates the regression curve at v.
//
//	Exponential: a * b^v
//	Power:       a * v^b
//	Linear:      a + b*v
//
// An invalid kind yields NaN. Callers are expected to Validate first.
func (s RegressionSpec) Eval(v float64) float64 {
	switch s.Kind {
	case Exponential:
		return s.A * math.Pow(s.B, v)
	case Power:
		return s.A * math.Pow(v, s.B)
	case Linear:
		return s.A + s.B*v
	default:
		return math.NaN()
	}
}

// Equation returns a human-readable form of the curve with its coefficients.
func (s RegressionSpec) Equation() string {
	a := strconv.FormatFloat(s.A, 'g', 6, 64)
	b := strconv.FormatFloat(s.B, 'g', 6, 64)
	switch s.Kind {
	case Exponential:
		return "y = " + a + " * " + b + "^x"
	case Power:
		return "y = " + a + " * x^" + b
	case Linear:
		return "y = " + a + " + " + b + " * x"
	default:
		return "y = ?"
	}
}

// FitResult is the outcome of fitting a RegressionSpec to a DataSet.
type FitResult struct {
	// Spec holds the fitted kind and coefficients.
	Spec RegressionSpec

	// RSquared is the coefficient of determination computed on the
	// (possibly log-transformed) data the least-squares fit ran on.
	RSquared float64

	// N is the number of data points used.
	N int
}
