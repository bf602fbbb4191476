package model

import "errors"

// Model validation errors.
// These are returned by ParseKind and the Validate methods and are meant to
// be checked with errors.Is() after wrapping.
var (
	// ErrUnknownKind is returned when a regression label is not exactly one of
	// Linear, Power or Exponential. Matching is case-sensitive.
	ErrUnknownKind = errors.New("unknown regression type")

	// ErrNoDataPoints is returned when a DataSet holds zero pairs.
	// Rendering needs at least one point to derive the fit-line domain.
	ErrNoDataPoints = errors.New("no data points")

	// ErrLengthMismatch is returned when X and Y have different lengths.
	ErrLengthMismatch = errors.New("x and y have different lengths")

	// ErrInvalidSampleCount is returned when fewer than two fit-line samples
	// are requested. A line needs two points.
	ErrInvalidSampleCount = errors.New("invalid sample count: must be at least 2")
)
