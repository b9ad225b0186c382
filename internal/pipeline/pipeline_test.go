package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunJSExportImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "utils.js", "export function add(a, b) {\n  return a + b\n}\n")
	writeFile(t, dir, "main.js", "import { add } from \"./utils.js\"\nadd(1, 2)\n")

	var stdout, stderr bytes.Buffer
	if err := Run([]string{dir}, false, &stdout, &stderr); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !strings.Contains(stdout.String(), "add\t") {
		t.Errorf("stdout = %q, want a row for add", stdout.String())
	}
}

func TestRunEmptyDirectoryProducesNoOutput(t *testing.T) {
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	if err := Run([]string{dir}, false, &stdout, &stderr); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stdout.String() != "" {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestRunNonexistentPathReturnsExitError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Run([]string{filepath.Join(t.TempDir(), "missing")}, false, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error for nonexistent path, got nil")
	}
}

func TestRunWithReferencesFlag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def f():\n    pass\n\nf()\n")

	var stdout, stderr bytes.Buffer
	if err := Run([]string{dir}, true, &stdout, &stderr); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1: %v", len(lines), lines)
	}
	fields := strings.Split(lines[0], "\t")
	if len(fields) < 6 {
		t.Errorf("fields = %v, want at least 6 (base row + a reference)", fields)
	}
}
