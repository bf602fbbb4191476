package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/regplot/internal/config"
	"github.com/nao1215/regplot/internal/loader"
	"github.com/nao1215/regplot/internal/model"
	"github.com/nao1215/regplot/internal/render"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if !strings.HasPrefix(cmd.Use, "regplot ") {
			t.Errorf("expected use to start with 'regplot', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
	})

	t.Run("has render flags with defaults", func(t *testing.T) {
		t.Parallel()
		expected := map[string]string{
			"dpi":         "150",
			"width":       "10",
			"height":      "5",
			"samples":     "100",
			"round-start": "false",
		}
		for name, def := range expected {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Errorf("expected %s flag", name)
				continue
			}
			if flag.DefValue != def {
				t.Errorf("flag %s: expected default %q, got %q", name, def, flag.DefValue)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		names := make(map[string]bool)
		for _, sub := range cmd.Commands() {
			names[sub.Name()] = true
		}
		for _, want := range []string{"fit", "history", "init", "version"} {
			if !names[want] {
				t.Errorf("expected %s subcommand", want)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

// TestRootArgs tests positional argument validation.
func TestRootArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"two arguments", []string{"params.txt", "data.txt"}},
		{"four arguments", []string{"params.txt", "data.txt", "out.png", "extra"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := executeRoot(t, tc.args...)
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("expected ErrUsage, got %v", err)
			}
			for _, want := range []string{"<params-filepath>", "<data-filepath>", "<output-image-filepath>"} {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected usage to name %s, got %q", want, err.Error())
				}
			}
		})
	}
}

// TestRunRenderCmd tests rendering through the root command.
func TestRunRenderCmd(t *testing.T) {
	t.Parallel()

	t.Run("renders png", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		params := writeTestFile(t, dir, "params.txt", "Linear\n2 3\n")
		data := writeTestFile(t, dir, "data.txt", linearData)
		output := filepath.Join(dir, "plot.png")

		stdout, err := executeRoot(t, "--dpi", "50", params, data, output)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("expected output image: %v", err)
		}
		if !bytes.HasPrefix(content, []byte("\x89PNG")) {
			t.Error("expected PNG signature")
		}
		if !strings.Contains(stdout, "Saving plot please wait...") {
			t.Errorf("expected progress message, got %q", stdout)
		}
		if !strings.Contains(stdout, "Plot saved to: "+output) {
			t.Errorf("expected saved message, got %q", stdout)
		}
	})

	t.Run("renders svg", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		params := writeTestFile(t, dir, "params.txt", "Exponential\n1.5 1.2\n")
		data := writeTestFile(t, dir, "data.txt", linearData)
		output := filepath.Join(dir, "plot.svg")

		if _, err := executeRoot(t, params, data, output); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("expected output image: %v", err)
		}
		if !strings.Contains(string(content), "<svg") {
			t.Error("expected SVG document")
		}
	})

	t.Run("unknown kind writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		params := writeTestFile(t, dir, "params.txt", "linear\n2 3\n")
		data := writeTestFile(t, dir, "data.txt", linearData)
		output := filepath.Join(dir, "plot.png")

		_, err := executeRoot(t, params, data, output)
		if !errors.Is(err, model.ErrUnknownKind) {
			t.Fatalf("expected ErrUnknownKind, got %v", err)
		}
		var parseErr *loader.ParseError
		if !errors.As(err, &parseErr) || parseErr.Line != 1 {
			t.Errorf("expected parse error on line 1, got %v", err)
		}
		if _, err := os.Stat(output); !os.IsNotExist(err) {
			t.Error("expected no output file")
		}
	})

	t.Run("empty data writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		params := writeTestFile(t, dir, "params.txt", "Linear\n2 3\n")
		data := writeTestFile(t, dir, "data.txt", "")
		output := filepath.Join(dir, "plot.png")

		_, err := executeRoot(t, params, data, output)
		if !errors.Is(err, model.ErrNoDataPoints) {
			t.Fatalf("expected ErrNoDataPoints, got %v", err)
		}
		if _, err := os.Stat(output); !os.IsNotExist(err) {
			t.Error("expected no output file")
		}
	})

	t.Run("missing params file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		data := writeTestFile(t, dir, "data.txt", linearData)

		_, err := executeRoot(t, filepath.Join(dir, "missing.txt"), data, filepath.Join(dir, "plot.png"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		params := writeTestFile(t, dir, "params.txt", "Linear\n2 3\n")
		data := writeTestFile(t, dir, "data.txt", linearData)

		_, err := executeRoot(t, params, data, filepath.Join(dir, "plot.bmp"))
		if !errors.Is(err, render.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("invalid dpi", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		params := writeTestFile(t, dir, "params.txt", "Linear\n2 3\n")
		data := writeTestFile(t, dir, "data.txt", linearData)

		_, err := executeRoot(t, "--dpi", "0", params, data, filepath.Join(dir, "plot.png"))
		if !errors.Is(err, config.ErrInvalidDPI) {
			t.Errorf("expected ErrInvalidDPI, got %v", err)
		}
	})

	t.Run("explicit config file not found", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		params := writeTestFile(t, dir, "params.txt", "Linear\n2 3\n")
		data := writeTestFile(t, dir, "data.txt", linearData)

		_, err := executeRoot(t, "-c", filepath.Join(dir, "missing.yaml"), params, data, filepath.Join(dir, "plot.png"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestNewLogger tests that --log-json switches the log format.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	params := writeTestFile(t, dir, "params.txt", "Linear\n2 3\n")
	data := writeTestFile(t, dir, "data.txt", linearData)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"-v", "--log-json", "--dpi", "50", params, data, filepath.Join(dir, "plot.png")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr.String(), `"level":"DEBUG"`) {
		t.Errorf("expected JSON debug logs, got %q", stderr.String())
	}
}

// TestBuildConfig tests the precedence of defaults, file and flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := writeTestFile(t, dir, "regplot.yaml", "render:\n  dpi: 300\n  samples: 50\n")

	cmd := NewRootCmd()
	if err := cmd.ParseFlags([]string{"-c", configPath, "--samples", "20"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DPI != 300 {
		t.Errorf("expected DPI from file (300), got %d", cfg.DPI)
	}
	if cfg.Samples != 20 {
		t.Errorf("expected samples from flag (20), got %d", cfg.Samples)
	}
	if cfg.Width != config.DefaultWidth {
		t.Errorf("expected default width, got %v", cfg.Width)
	}
}
