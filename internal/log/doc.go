// Package log provides logging for regplot, built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Shortening of file paths under the user's home directory to "~"
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Log output goes to stderr. Progress messages meant for the user, such as
// "Plot saved to: ...", are written to stdout by the commands themselves and
// do not go through this package.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("loaded data", "path", "/home/alice/data.txt") // path=~/data.txt
//	slog.SetDefault(logger)
package log
