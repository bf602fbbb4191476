package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/regplot/internal/database"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of runs listed when --limit is not set.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded renders and fits",
		Long: `History lists runs recorded in the history database, newest first.

Runs are only recorded when history is enabled, either with --history or
with "history: enabled: true" in the configuration file.

Examples:
  # Show the last 20 runs
  regplot history

  # Show every recorded run
  regplot history --limit 0`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// Listing never creates the database
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if errors.Is(err, database.ErrNotFound) {
		fmt.Fprintln(out, "No history recorded yet.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No history recorded yet.")
		return nil
	}

	return writeHistoryTable(out, runs)
}

// writeHistoryTable writes runs as a Markdown table.
func writeHistoryTable(w io.Writer, runs []database.Run) error {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rSquared := "-"
		if run.RSquared != nil {
			rSquared = strconv.FormatFloat(*run.RSquared, 'f', 4, 64)
		}
		timestamp := "-"
		if !run.Timestamp.IsZero() {
			timestamp = run.Timestamp.Local().Format(time.DateTime)
		}

		rows = append(rows, []string{
			strconv.FormatInt(run.ID, 10),
			timestamp,
			run.Command,
			run.Kind,
			strconv.FormatFloat(run.A, 'g', 6, 64),
			strconv.FormatFloat(run.B, 'g', 6, 64),
			rSquared,
			strconv.Itoa(run.Points),
			run.Input,
			run.Output,
		})
	}

	md := markdown.NewMarkdown(w)
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Time", "Command", "Kind", "a", "b", "R-Squared", "Points", "Input", "Output"},
		Rows:   rows,
	})
	return md.Build()
}
