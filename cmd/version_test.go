package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionAndPrint(t *testing.T) {
	Version = "1.2.3"
	Commit = "abc"
	BuildTime = "2026-02-27"

	vt := versionText()
	if !strings.Contains(vt, "1.2.3") || !strings.Contains(vt, "abc") || !strings.Contains(vt, "2026-02-27") {
		t.Fatalf("versionText unexpected: %s", vt)
	}

	buf := &bytes.Buffer{}
	printVersion(buf)
	if got := buf.String(); got != "gengo version 1.2.3 (commit abc, built 2026-02-27)\n" {
		t.Fatalf("unexpected version line: %q", got)
	}
}
