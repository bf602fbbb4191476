package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/regplot/internal/database"
	"github.com/nao1215/regplot/internal/fit"
	"github.com/nao1215/regplot/internal/loader"
	"github.com/nao1215/regplot/internal/model"
	"github.com/nao1215/regplot/internal/report"
	"github.com/spf13/cobra"
)

// allKinds is the --kind value that fits every regression type.
const allKinds = "all"

// ErrOutputNeedsSingleKind is returned when --output is combined with --kind all.
var ErrOutputNeedsSingleKind = errors.New("--output can only be used with a single --kind")

// NewFitCmd creates the fit command.
func NewFitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit <data-filepath>",
		Short: "Fit regression coefficients to a data file",
		Long: `Fit computes least-squares coefficients for a data file and writes them
as a parameters file that regplot can render.

Power and Exponential regressions are fitted on log-transformed data, so
they need positive values (x and y for Power, y for Exponential).

Each parameters file contains the regression type, the coefficients and
the R-squared of the fit:

  Power
  1.5 0.75
  R-Squared: 0.97

Examples:
  # Fit all regression types into output/<Kind>_params.txt
  regplot fit data.txt

  # Fit one type into a specific file
  regplot fit data.txt --kind Power -o power.txt

  # Also write a Markdown report and print JSON
  regplot fit data.txt --markdown report.md --json`,
		Args: cobra.ExactArgs(1),
		RunE: runFitCmd,
	}

	cmd.Flags().StringP("kind", "k", allKinds,
		"Regression type to fit: Linear, Power, Exponential or all")
	cmd.Flags().StringP("output", "o", "",
		"Parameters file path (single kind only)")
	cmd.Flags().StringP("dir", "d", "",
		"Directory for <Kind>_params.txt files (default: output)")
	cmd.Flags().StringP("markdown", "m", "",
		"Write a Markdown report to the specified file")
	cmd.Flags().BoolP("json", "j", false,
		"Print results as JSON to stdout")

	return cmd
}

// runFitCmd executes the fit command.
func runFitCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	kindLabel, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	markdownPath, err := cmd.Flags().GetString("markdown")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = cfg.FitOutputDir
	}

	kinds, err := parseKinds(kindLabel)
	if err != nil {
		return err
	}
	if outputPath != "" && len(kinds) > 1 {
		return ErrOutputNeedsSingleKind
	}

	logger := newLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := loader.LoadData(args[0])
	if err != nil {
		return err
	}

	logger.Debug("fitting", "data", args[0], "points", data.Len(), "kinds", kindLabel)

	results, err := fit.FitAll(ctx, kinds, data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, result := range results {
		path := outputPath
		if path == "" {
			path = filepath.Join(dir, result.Spec.Kind.String()+"_params.txt")
		}

		if err := writeParamsFile(path, result); err != nil {
			return err
		}

		if !jsonOutput {
			fmt.Fprintf(out, "%s: %s (R-Squared: %.4f)\n",
				result.Spec.Kind, result.Spec.Equation(), result.RSquared)
			fmt.Fprintf(out, "Parameters saved to: %s\n", path)
		}

		rSquared := result.RSquared
		recordRun(ctx, cfg, logger, &database.Run{
			Command:  database.CommandFit,
			Kind:     result.Spec.Kind.String(),
			A:        result.Spec.A,
			B:        result.Spec.B,
			RSquared: &rSquared,
			Points:   result.N,
			Input:    args[0],
			Output:   path,
		})
	}

	// JSON and the Markdown report both take every result in order.
	var writers []report.Writer
	if jsonOutput {
		writers = append(writers, report.NewJSONWriter(out, report.WithPrettyPrint()))
	}
	var md bytes.Buffer
	if markdownPath != "" {
		mdw := report.NewMarkdownWriter(&md)
		if err := mdw.WriteHeader(args[0]); err != nil {
			return fmt.Errorf("failed to write Markdown report: %w", err)
		}
		writers = append(writers, mdw)
	}

	mw := report.NewMultiWriter(writers...)
	for _, result := range results {
		if _, err := mw.Write(result); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if markdownPath != "" {
		if err := writeFile(markdownPath, md.Bytes()); err != nil {
			return err
		}
		if !jsonOutput {
			fmt.Fprintf(out, "Report saved to: %s\n", markdownPath)
		}
	}

	return nil
}

// parseKinds converts the --kind flag into the kinds to fit.
func parseKinds(label string) ([]model.RegressionKind, error) {
	if label == allKinds {
		return model.Kinds(), nil
	}
	kind, err := model.ParseKind(label)
	if err != nil {
		return nil, err
	}
	return []model.RegressionKind{kind}, nil
}

// writeParamsFile writes one fit result as a parameters file,
// creating parent directories if needed.
func writeParamsFile(path string, result model.FitResult) error {
	var buf bytes.Buffer
	if _, err := report.NewParamsWriter(&buf).Write(result); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// writeFile writes content to path, creating parent directories if needed.
func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	//nolint:gosec // Output files are meant to be readable by other tools
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
