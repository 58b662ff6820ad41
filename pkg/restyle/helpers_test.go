package restyle

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile writes data into the test's temp dir and returns its path
func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// openTestTarget writes a DOCX package to disk and opens it as a target
func openTestTarget(t *testing.T, data []byte) *TargetDocument {
	t.Helper()
	doc, err := OpenTarget(writeTestFile(t, "target.docx", data))
	if err != nil {
		t.Fatalf("OpenTarget() error = %v", err)
	}
	return doc
}
