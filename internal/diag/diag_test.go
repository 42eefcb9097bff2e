package diag

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDumpMarkup(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	w.DumpMarkup("<html><body>vazio</body></html>")

	got, err := os.ReadFile(filepath.Join(dir, MarkupFile))
	if err != nil {
		t.Fatalf("markup dump not written: %v", err)
	}
	if string(got) != "<html><body>vazio</body></html>" {
		t.Errorf("markup content = %q", got)
	}
}

func TestDumpEmptyIsNoop(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	w.DumpMarkup("")
	w.DumpScreenshot(nil)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("empty dumps should write nothing, found %d files", len(entries))
	}
}

func TestDumpFailureDoesNotPanic(t *testing.T) {
	// Point the writer at a path that cannot exist; the failure must be
	// swallowed so it cannot mask the condition that triggered the dump.
	w := NewWriter(filepath.Join(string(os.PathSeparator), "nonexistent", "deep", "dir"))
	w.DumpMarkup("<html></html>")
	w.DumpScreenshot([]byte{0x89, 0x50})
}
