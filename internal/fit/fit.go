// Package fit computes regression coefficients from data points.
//
// All three supported curves reduce to a straight-line least-squares fit:
//
//	Linear:      y = a + b*x
//	Power:       ln y = ln a + b*ln x
//	Exponential: ln y = ln a + x*ln b
//
// The coefficients are solved on the design matrix [1, x] with gonum/mat
// and transformed back to a and b. R-squared is computed on the data the
// straight-line fit actually ran on.
package fit

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/nao1215/regplot/internal/model"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewPoints is returned when fewer than two points are supplied.
	ErrTooFewPoints = errors.New("at least two data points are required")

	// ErrNonPositive is returned when a logarithm would be taken of a value <= 0.
	ErrNonPositive = errors.New("values must be positive")

	// ErrSingular is returned when all x values are identical, so no slope exists.
	ErrSingular = errors.New("all x values are identical")
)

// Fit computes the coefficients of the given regression kind for data.
// The input data set is never modified.
func Fit(kind model.RegressionKind, data *model.DataSet) (model.FitResult, error) {
	if !kind.Valid() {
		return model.FitResult{}, fmt.Errorf("%w: %s", model.ErrUnknownKind, kind)
	}
	if err := data.Validate(); err != nil {
		return model.FitResult{}, err
	}
	if data.Len() < 2 {
		return model.FitResult{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, data.Len())
	}

	xs, ys, err := transform(kind, data)
	if err != nil {
		return model.FitResult{}, err
	}

	intercept, slope, err := leastSquares(xs, ys)
	if err != nil {
		return model.FitResult{}, err
	}

	spec := model.RegressionSpec{Kind: kind}
	switch kind {
	case model.Linear:
		spec.A, spec.B = intercept, slope
	case model.Power:
		spec.A, spec.B = math.Exp(intercept), slope
	case model.Exponential:
		spec.A, spec.B = math.Exp(intercept), math.Exp(slope)
	}

	return model.FitResult{
		Spec:     spec,
		RSquared: stat.RSquared(xs, ys, nil, intercept, slope),
		N:        data.Len(),
	}, nil
}

// FitAll fits every kind in kinds concurrently.
// Results are returned in the same order as kinds. The first failure cancels
// the remaining fits and is returned.
func FitAll(ctx context.Context, kinds []model.RegressionKind, data *model.DataSet) ([]model.FitResult, error) {
	results := make([]model.FitResult, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			res, err := Fit(kind, data)
			if err != nil {
				return fmt.Errorf("%s regression: %w", kind, err)
			}
			// Each goroutine owns its own index.
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// transform returns copies of x and y mapped into the space where the
// relationship is linear.
func transform(kind model.RegressionKind, data *model.DataSet) ([]float64, []float64, error) {
	c := data.Clone()

	switch kind {
	case model.Power:
		if err := logInPlace(c.X, "x"); err != nil {
			return nil, nil, err
		}
		if err := logInPlace(c.Y, "y"); err != nil {
			return nil, nil, err
		}
	case model.Exponential:
		if err := logInPlace(c.Y, "y"); err != nil {
			return nil, nil, err
		}
	}

	return c.X, c.Y, nil
}

// logInPlace replaces every element of vs with its natural logarithm.
func logInPlace(vs []float64, axis string) error {
	for i, v := range vs {
		if v <= 0 {
			return fmt.Errorf("%w: %s[%d] = %v", ErrNonPositive, axis, i, v)
		}
		vs[i] = math.Log(v)
	}
	return nil
}

// leastSquares solves y = intercept + slope*x in the least-squares sense.
func leastSquares(xs, ys []float64) (float64, float64, error) {
	if floats.Max(xs) == floats.Min(xs) {
		return 0, 0, ErrSingular
	}

	const degree = 1
	X := mat.NewDense(len(xs), degree+1, nil)
	for i, x := range xs {
		X.Set(i, 0, 1) // constant term
		X.Set(i, 1, x)
	}
	Y := mat.NewVecDense(len(ys), ys)

	var coef mat.VecDense
	if err := coef.SolveVec(X, Y); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return 0, 0, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		return 0, 0, fmt.Errorf("failed to solve least squares: %w", err)
	}

	return coef.AtVec(0), coef.AtVec(1), nil
}
