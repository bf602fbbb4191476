// Package config provides configuration structures and utilities for regplot.
// It defines image settings (resolution, canvas size, regression-line
// sampling), history recording, and where the fit command writes its output.
package config
