package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
)

func TestUniquePath_Success(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "quotes")
	p, err := UniquePath(dir, "quote", ".json")
	if err != nil {
		t.Fatalf("UniquePath error: %v", err)
	}
	base := filepath.Base(p)
	if !strings.HasPrefix(base, "quote_") || !strings.HasSuffix(base, ".json") {
		t.Fatalf("unexpected path: %s", p)
	}
	if len(strings.TrimSuffix(strings.TrimPrefix(base, "quote_"), ".json")) != 8 {
		t.Fatalf("id should be 8 chars: %s", base)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("dir not created: %v", err)
	}
}

func TestUniquePath_MkdirError(t *testing.T) {
	dir := t.TempDir()
	fileAsDir := filepath.Join(dir, "file")
	if err := os.WriteFile(fileAsDir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := UniquePath(fileAsDir, "quote", ".json"); err == nil {
		t.Fatal("expected mkdir error")
	}
}

func TestWriteJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.json")
	if err := WriteJSON(p, map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(p)
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil || m["n"] != 1 {
		t.Fatalf("content=%s err=%v", b, err)
	}
}

func TestPrinterTableAndJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	p := &Printer{Out: buf}
	if err := p.Render([]string{"x"}, table.Row{"Code", "Name"}, []table.Row{{"ja", "Japanese"}}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "CODE") || !strings.Contains(out, "Japanese") {
		t.Fatalf("unexpected table: %s", out)
	}

	buf.Reset()
	p.JSON = true
	if err := p.Render([]string{"x"}, nil, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[\n  \"x\"\n]" {
		t.Fatalf("unexpected json: %q", buf.String())
	}

	buf.Reset()
	p.JSON = false
	if err := p.Fields(nil, [][2]any{{"Credits", "10.5"}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Credits") || !strings.Contains(buf.String(), "10.5") {
		t.Fatalf("unexpected fields: %s", buf.String())
	}
}
