package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// linearData is y = 2 + 3x sampled at x = 1..5.
const linearData = "1 5\n2 8\n3 11\n4 14\n5 17\n"

// writeTestFile writes content to name inside dir and returns the path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// writeHistoryConfig writes a config file that points the history database
// into dir and returns its path.
func writeHistoryConfig(t *testing.T, dir string, enabled bool) string {
	t.Helper()

	content := fmt.Sprintf("history:\n  enabled: %t\n  dir: %q\n", enabled, filepath.Join(dir, "history"))
	return writeTestFile(t, dir, "regplot.yaml", content)
}

// executeRoot runs the root command with args and returns stdout.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}
