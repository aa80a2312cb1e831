package cmd

import (
	"bytes"
	"testing"
	"time"
)

func TestRootRunE_ShowVersion(t *testing.T) {
	oldShow := showVersion
	defer func() { showVersion = oldShow }()

	showVersion = true
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	if err := rootCmd.RunE(rootCmd, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected version output")
	}
}

func TestRootRunE_NoArgsShowsHelp(t *testing.T) {
	oldShow := showVersion
	defer func() { showVersion = oldShow }()

	showVersion = false
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	if err := rootCmd.RunE(rootCmd, nil); err != nil {
		t.Fatalf("RunE no args error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected help output")
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"4", "17"})
	if err != nil || len(ids) != 2 || ids[0] != 4 || ids[1] != 17 {
		t.Fatalf("ids=%v err=%v", ids, err)
	}
	for _, bad := range []string{"0", "-3", "x1"} {
		if _, err := parseID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got, err := parseAfter("48h", now)
	if err != nil || !got.Equal(now.Add(-48*time.Hour)) {
		t.Fatalf("duration: %v %v", got, err)
	}
	got, err = parseAfter("2026-02-01T00:00:00Z", now)
	if err != nil || got.Unix() != 1769904000 {
		t.Fatalf("rfc3339: %v %v", got.Unix(), err)
	}
	if got, err := parseAfter("", now); err != nil || !got.IsZero() {
		t.Fatalf("empty: %v %v", got, err)
	}
	if _, err := parseAfter("yesterday", now); err == nil {
		t.Fatal("expected error")
	}
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"quote"}, {"order", "create"}, {"order", "watch"}, {"jobs"},
		{"job", "approve"}, {"job", "revision"}, {"glossary", "get"},
		{"callback", "serve"}, {"set", "key"}, {"languages"}, {"pairs"},
		{"account"}, {"translators"},
	} {
		c, _, err := rootCmd.Find(path)
		if err != nil || c.Name() != path[len(path)-1] {
			t.Fatalf("command %v not found: %v", path, err)
		}
	}
}

func TestChangedBool(t *testing.T) {
	if changedBool(orderCreateCmd, "force", true) != nil {
		t.Fatal("unchanged flag should be nil")
	}
	if err := orderCreateCmd.Flags().Set("force", "false"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		orderFlags.force = false
		orderCreateCmd.Flags().Lookup("force").Changed = false
	})
	p := changedBool(orderCreateCmd, "force", orderFlags.force)
	if p == nil || *p {
		t.Fatalf("expected explicit false, got %v", p)
	}
}
