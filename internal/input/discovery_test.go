package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiscover_FilesAndDirWithDedup(t *testing.T) {
	dir := t.TempDir()

	okFile := filepath.Join(dir, "a.docx")
	if err := os.WriteFile(okFile, []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}
	skipped := filepath.Join(dir, "b.exe")
	if err := os.WriteFile(skipped, []byte("bin"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	okFile2 := filepath.Join(sub, "c.PO")
	if err := os.WriteFile(okFile2, []byte("msgid"), 0o644); err != nil {
		t.Fatal(err)
	}
	hiddenDir := filepath.Join(dir, ".git")
	if err := os.MkdirAll(hiddenDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(hiddenDir, "x.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := Discover([]string{dir, okFile})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len=%d want=2: %+v", len(items), items)
	}
	seen := map[string]bool{}
	for _, it := range items {
		seen[it.Path] = true
	}
	if !seen[okFile] || !seen[okFile2] {
		t.Fatalf("paths missing: %+v", items)
	}
}

func TestDiscover_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Discover([]string{dir}); err == nil || !strings.Contains(err.Error(), "no source files") {
		t.Fatalf("expected empty error, got %v", err)
	}
	if _, err := Discover([]string{filepath.Join(dir, "missing.txt")}); err == nil {
		t.Fatal("expected stat error")
	}
	bad := filepath.Join(dir, "tool.exe")
	if err := os.WriteFile(bad, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Discover([]string{bad}); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	if !Supported("a/b/c.XLSX") {
		t.Fatal("xlsx should be supported")
	}
	if Supported("noext") {
		t.Fatal("no extension should not be supported")
	}
}
