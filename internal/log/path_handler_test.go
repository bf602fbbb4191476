package log

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

// newTestLogger returns a debug logger whose home directory is fixed.
func newTestLogger(buf *bytes.Buffer, home string) *slog.Logger {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewPathHandler(handler, home))
}

// TestPathHandler_ShortensHomePaths tests the home directory rewrite.
func TestPathHandler_ShortensHomePaths(t *testing.T) {
	t.Parallel()

	home := filepath.Join(string(filepath.Separator), "home", "alice")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "file under home",
			value: filepath.Join(home, "data", "points.txt"),
			want:  "~" + string(filepath.Separator) + filepath.Join("data", "points.txt"),
		},
		{
			name:  "home itself",
			value: home,
			want:  "~",
		},
		{
			name:  "sibling with common prefix is untouched",
			value: home + "bob" + string(filepath.Separator) + "x.txt",
			want:  home + "bob" + string(filepath.Separator) + "x.txt",
		},
		{
			name:  "relative path is untouched",
			value: "output/plot.png",
			want:  "output/plot.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewPathHandler(slog.NewTextHandler(&bytes.Buffer{}, nil), home)
			if got := h.shorten(tt.value); got != tt.want {
				t.Errorf("shorten(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

// TestPathHandler_Record tests that rewriting happens in emitted records.
func TestPathHandler_Record(t *testing.T) {
	t.Parallel()

	home := filepath.Join(string(filepath.Separator), "home", "alice")

	var buf bytes.Buffer
	logger := newTestLogger(&buf, home)
	logger.Info("saved", "path", filepath.Join(home, "plot.png"), "points", 12)

	output := buf.String()
	if strings.Contains(output, home) {
		t.Errorf("expected home to be shortened, got: %s", output)
	}
	if !strings.Contains(output, "points=12") {
		t.Errorf("expected non-string attrs to be kept, got: %s", output)
	}
}

// TestPathHandler_WithAttrs tests that WithAttrs rewrites attributes.
func TestPathHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	home := filepath.Join(string(filepath.Separator), "home", "alice")

	var buf bytes.Buffer
	logger := newTestLogger(&buf, home).With("input", filepath.Join(home, "data.txt"))
	logger.Info("test message")

	if strings.Contains(buf.String(), home) {
		t.Errorf("expected WithAttrs value to be shortened, got: %s", buf.String())
	}
}

// TestPathHandler_WithGroup tests that grouped attributes are rewritten.
func TestPathHandler_WithGroup(t *testing.T) {
	t.Parallel()

	home := filepath.Join(string(filepath.Separator), "home", "alice")

	var buf bytes.Buffer
	logger := newTestLogger(&buf, home).WithGroup("render")
	logger.Info("test message", slog.Group("files", slog.String("output", filepath.Join(home, "a.png"))))

	output := buf.String()
	if strings.Contains(output, home) {
		t.Errorf("expected grouped value to be shortened, got: %s", output)
	}
	if !strings.Contains(output, "render.files.output") {
		t.Errorf("expected group prefix in output, got: %s", output)
	}
}

// TestNewLogger_Levels tests the verbose switch.
func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verbose    bool
		logFunc    func(*slog.Logger)
		shouldShow bool
	}{
		{"debug hidden when not verbose", false, func(l *slog.Logger) { l.Debug("msg") }, false},
		{"info hidden when not verbose", false, func(l *slog.Logger) { l.Info("msg") }, false},
		{"warn shown when not verbose", false, func(l *slog.Logger) { l.Warn("msg") }, true},
		{"debug shown when verbose", true, func(l *slog.Logger) { l.Debug("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.logFunc(NewLogger(&buf, tt.verbose))

			hasMessage := strings.Contains(buf.String(), "msg")
			if hasMessage != tt.shouldShow {
				t.Errorf("expected shown=%v, output: %q", tt.shouldShow, buf.String())
			}
		})
	}
}

// TestNewJSONLogger tests JSON logger creation.
func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewJSONLogger(&buf, true).Info("test message", "kind", "Linear")

	output := buf.String()
	if !strings.HasPrefix(output, "{") || !strings.Contains(output, `"kind":"Linear"`) {
		t.Errorf("expected JSON output, got: %s", output)
	}
}

// TestNewPathHandler_NilHandler tests the nil handler fallback.
func TestNewPathHandler_NilHandler(t *testing.T) {
	t.Parallel()

	h := NewPathHandler(nil, "/home/alice")
	if h.handler == nil {
		t.Error("expected default handler to be used")
	}
}
