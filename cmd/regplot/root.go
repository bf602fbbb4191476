package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/regplot/internal/config"
	"github.com/nao1215/regplot/internal/log"
	"github.com/spf13/cobra"
)

// ErrUsage is returned when the root command gets the wrong number of arguments.
var ErrUsage = errors.New("usage: regplot <params-filepath> <data-filepath> <output-image-filepath>")

// NewRootCmd creates the root command for regplot.
// Run without a subcommand, it renders a plot.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regplot <params-filepath> <data-filepath> <output-image-filepath>",
		Short: "Plot data points with a fitted regression curve",
		Long: `regplot reads a regression from a parameters file and (x, y) pairs from a
data file, then saves a scatter plot of the data with the regression curve
drawn over it.

The parameters file holds the regression type on its first line
(Linear, Power or Exponential) and the coefficients "a b" on its second:

  Linear       y = a + b * x
  Power        y = a * x^b
  Exponential  y = a * b^x

The data file holds one "x y" pair per line. The image format is chosen from
the output extension: png, jpg, jpeg, tif, tiff, svg, pdf or eps.

Examples:
  # Render a plot
  regplot params.txt data.txt plot.png

  # Fit all three regressions, then render the power fit
  regplot fit data.txt --kind all
  regplot output/Power_params.txt data.txt power.png

  # Higher resolution, recorded in the history database
  regplot --dpi 300 --history params.txt data.txt plot.png`,
		Version:       getVersion(),
		Args:          rootArgs,
		RunE:          runRenderCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .regplot in current or home directory)")
	cmd.PersistentFlags().Bool("history", false,
		"Record the run in the history database")
	cmd.PersistentFlags().Bool("log-json", false,
		"Write log output to stderr as JSON")

	// Render flags
	cmd.Flags().Int("dpi", config.DefaultDPI,
		"Resolution for raster output (png, jpg, tiff)")
	cmd.Flags().Float64("width", config.DefaultWidth, "Canvas width in inches")
	cmd.Flags().Float64("height", config.DefaultHeight, "Canvas height in inches")
	cmd.Flags().Int("samples", config.DefaultSamples,
		"Number of points on the regression line")
	cmd.Flags().Bool("round-start", false,
		"Round the first x of the regression line as well as the last")

	// Add subcommands
	cmd.AddCommand(NewFitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// rootArgs requires exactly the three positional arguments.
func rootArgs(_ *cobra.Command, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w (got %d arguments)", ErrUsage, len(args))
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newLogger creates the logger for cmd, honoring --verbose and --log-json.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	if jsonLogs, err := cmd.Flags().GetBool("log-json"); err == nil && jsonLogs {
		return log.NewJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}
	return log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// flagChanged reports whether the named flag exists on cmd and was set by the user.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// buildConfig creates a Config from defaults, the configuration file and
// the command line flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not found.
	// If no path was specified, silently use defaults when no file is found.
	if configPath := config.FindConfigFile(cfg.ConfigFilePath); configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flagChanged(cmd, "dpi") {
		if cfg.DPI, err = cmd.Flags().GetInt("dpi"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "width") {
		if cfg.Width, err = cmd.Flags().GetFloat64("width"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "height") {
		if cfg.Height, err = cmd.Flags().GetFloat64("height"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "samples") {
		if cfg.Samples, err = cmd.Flags().GetInt("samples"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "round-start") {
		if cfg.RoundStart, err = cmd.Flags().GetBool("round-start"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "history") {
		if cfg.History, err = cmd.Flags().GetBool("history"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}
