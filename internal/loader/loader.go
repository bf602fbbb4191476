// Package loader reads regression parameters and data points from the
// plain-text files regplot consumes.
//
// Both formats are whitespace-delimited. The parameters file holds the
// regression label on its first line and the two coefficients on its
// second. The data file holds one "x y" pair per line.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/regplot/internal/model"
)

var (
	// ErrTooFewFields is returned when a line holds fewer than two tokens.
	ErrTooFewFields = errors.New("expected two whitespace-separated values")

	// ErrMissingLine is returned when the parameters file ends before the
	// label or coefficient line.
	ErrMissingLine = errors.New("missing line")
)

// ParseError reports a problem at a specific line of an input file.
type ParseError struct {
	// File is the path (or name) of the input.
	File string

	// Line is 1-based.
	Line int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

// Unwrap returns the underlying cause so errors.Is works through ParseError.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadParams reads a RegressionSpec from the parameters file at path.
// The file is opened read-only and closed before returning.
func LoadParams(path string) (model.RegressionSpec, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return model.RegressionSpec{}, fmt.Errorf("failed to open parameters file: %w", err)
	}
	defer f.Close()

	return ParseParams(f, path)
}

// ParseParams reads a RegressionSpec from r. name is used in error messages.
//
// Line 1 is the label, used verbatim apart from the line terminator.
// Line 2 supplies a and b as its first two tokens; extra tokens are ignored.
// Anything after line 2 (such as an R-Squared line) is ignored.
func ParseParams(r io.Reader, name string) (model.RegressionSpec, error) {
	scanner := bufio.NewScanner(r)

	label, err := nextLine(scanner, name, 1, "regression type")
	if err != nil {
		return model.RegressionSpec{}, err
	}

	kind, err := model.ParseKind(label)
	if err != nil {
		return model.RegressionSpec{}, &ParseError{File: name, Line: 1, Err: err}
	}

	coefficients, err := nextLine(scanner, name, 2, "coefficients")
	if err != nil {
		return model.RegressionSpec{}, err
	}

	a, b, err := parsePair(coefficients)
	if err != nil {
		return model.RegressionSpec{}, &ParseError{File: name, Line: 2, Err: err}
	}

	return model.RegressionSpec{Kind: kind, A: a, B: b}, nil
}

// LoadData reads a DataSet from the data-points file at path.
// The file is opened read-only and closed before returning.
func LoadData(path string) (*model.DataSet, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	return ParseData(f, path)
}

// ParseData reads (x, y) pairs from r in order. name is used in error messages.
// Lines with no tokens are skipped. A line with one token or a malformed
// number stops parsing with a *ParseError. An empty result is not an error
// here; callers decide whether zero points is acceptable.
func ParseData(r io.Reader, name string) (*model.DataSet, error) {
	data := model.NewDataSet()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if len(strings.Fields(text)) == 0 {
			continue
		}

		x, y, err := parsePair(text)
		if err != nil {
			return nil, &ParseError{File: name, Line: line, Err: err}
		}
		data.Append(x, y)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{File: name, Line: line + 1, Err: err}
	}

	return data, nil
}

// nextLine advances the scanner and returns the line without its terminator.
func nextLine(scanner *bufio.Scanner, file string, line int, what string) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", &ParseError{File: file, Line: line, Err: err}
		}
		return "", &ParseError{File: file, Line: line, Err: fmt.Errorf("%w: %s", ErrMissingLine, what)}
	}
	return strings.TrimSuffix(scanner.Text(), "\r"), nil
}

// parsePair parses the first two whitespace-separated tokens of s.
func parsePair(s string) (float64, float64, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrTooFewFields, len(fields))
	}

	first, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q: %w", fields[0], err)
	}
	second, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q: %w", fields[1], err)
	}

	return first, second, nil
}
