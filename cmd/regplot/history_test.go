package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/regplot/internal/database"
)

// TestRunHistoryCmd tests the history command execution.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("no database yet", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := writeHistoryConfig(t, dir, false)

		stdout, err := executeRoot(t, "history", "-c", configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No history recorded yet.") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("lists recorded render", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := writeHistoryConfig(t, dir, true)
		params := writeTestFile(t, dir, "params.txt", "Power\n2 3\n")
		data := writeTestFile(t, dir, "data.txt", linearData)
		if _, err := executeRoot(t, "-c", configPath, "--dpi", "50", params, data, filepath.Join(dir, "plot.png")); err != nil {
			t.Fatalf("render failed: %v", err)
		}

		stdout, err := executeRoot(t, "history", "-c", configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"render", "Power", "plot.png"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q, got %q", want, stdout)
			}
		}
	})

	t.Run("history flag overrides config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := writeHistoryConfig(t, dir, true)
		params := writeTestFile(t, dir, "params.txt", "Linear\n2 3\n")
		data := writeTestFile(t, dir, "data.txt", linearData)

		if _, err := executeRoot(t, "-c", configPath, "--history=false", "--dpi", "50", params, data, filepath.Join(dir, "plot.png")); err != nil {
			t.Fatalf("render failed: %v", err)
		}

		stdout, err := executeRoot(t, "history", "-c", configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No history recorded yet.") {
			t.Errorf("expected nothing recorded, got %q", stdout)
		}
	})
}

// TestWriteHistoryTable tests table formatting.
func TestWriteHistoryTable(t *testing.T) {
	t.Parallel()

	rSquared := 0.91234
	runs := []database.Run{
		{ID: 2, Command: database.CommandFit, Kind: "Exponential", A: 1.5, B: 2, RSquared: &rSquared, Points: 7, Input: "data.txt", Output: "out.txt", Timestamp: time.Now()},
		{ID: 1, Command: database.CommandRender, Kind: "Linear", A: 2, B: 3, Points: 7, Input: "params.txt", Output: "plot.png"},
	}

	var buf bytes.Buffer
	if err := writeHistoryTable(&buf, runs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"0.9123", "Exponential", "plot.png", "params.txt"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}
