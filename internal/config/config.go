package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The render defaults reproduce the plots made by the earlier plotting script:
// a 10x5 inch canvas at 150 DPI with a 100-point regression line.
const (
	// DefaultDPI is the raster resolution in dots per inch.
	DefaultDPI = 150

	// DefaultWidth is the canvas width in inches.
	DefaultWidth = 10.0

	// DefaultHeight is the canvas height in inches.
	DefaultHeight = 5.0

	// DefaultSamples is the number of evenly spaced points on the regression line.
	DefaultSamples = 100

	// DefaultFitOutputDir is where `regplot fit` writes <Kind>_params.txt files.
	DefaultFitOutputDir = "output"

	// MaxDPI caps the resolution. A 10x5 inch canvas at 1200 DPI is already
	// 72 megapixels.
	MaxDPI = 1200

	// AppName is the application name used for XDG directory paths.
	AppName = "regplot"
)

// Config holds all configuration options for regplot.
// It is populated from defaults, then the YAML config file, then CLI flags,
// and passed through the application rather than stored globally.
type Config struct {
	// DPI is the raster resolution used for png, jpg and tiff output.
	DPI int

	// Width and Height are the canvas size in inches.
	Width  float64
	Height float64

	// Samples is the number of points on the regression line. Must be >= 2.
	Samples int

	// RoundStart rounds the first x value of the fit-line domain as well as
	// the last. Off by default so existing plots are reproduced exactly.
	RoundStart bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit configuration file path, if any.
	ConfigFilePath string

	// History enables recording each successful render and fit in the
	// SQLite history database.
	History bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/regplot on Linux).
	DBDir string

	// FitOutputDir is the directory for parameters files written by `fit`.
	FitOutputDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DPI:          DefaultDPI,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Samples:      DefaultSamples,
		DBDir:        XDGDataDir(),
		FitOutputDir: DefaultFitOutputDir,
	}
}

// ApplyFile overlays values set in a configuration file onto c.
// Fields left unset in the file keep their current value.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Render.DPI != nil {
		c.DPI = *f.Render.DPI
	}
	if f.Render.Width != nil {
		c.Width = *f.Render.Width
	}
	if f.Render.Height != nil {
		c.Height = *f.Render.Height
	}
	if f.Render.Samples != nil {
		c.Samples = *f.Render.Samples
	}
	if f.Render.RoundStart != nil {
		c.RoundStart = *f.Render.RoundStart
	}
	if f.History.Enabled != nil {
		c.History = *f.History.Enabled
	}
	if f.History.Dir != "" {
		c.DBDir = f.History.Dir
	}
	if f.Fit.OutputDir != "" {
		c.FitOutputDir = f.Fit.OutputDir
	}
}

// XDGDataDir returns the XDG data directory for regplot.
// On Linux: ~/.local/share/regplot
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for regplot.
// On Linux: ~/.config/regplot
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.DPI <= 0 || c.DPI > MaxDPI {
		return ErrInvalidDPI
	}

	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidSize
	}

	// A line needs at least two points
	if c.Samples < 2 {
		return ErrInvalidSamples
	}

	if c.History && c.DBDir == "" {
		return ErrNoHistoryDir
	}

	return nil
}
