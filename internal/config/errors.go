package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be checked with
// errors.Is() after wrapping.
var (
	// ErrInvalidDPI is returned when the DPI is not in (0, MaxDPI].
	ErrInvalidDPI = errors.New("invalid dpi: must be between 1 and 1200")

	// ErrInvalidSize is returned when the canvas width or height is not positive.
	ErrInvalidSize = errors.New("invalid canvas size: width and height must be positive")

	// ErrInvalidSamples is returned when fewer than two regression-line
	// samples are requested.
	ErrInvalidSamples = errors.New("invalid sample count: must be at least 2")

	// ErrNoHistoryDir is returned when history recording is enabled but no
	// database directory is configured.
	ErrNoHistoryDir = errors.New("history enabled but no database directory configured")
)
