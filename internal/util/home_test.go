package util

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultAppDirAndEnvPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	appDir, err := DefaultAppDir()
	if err != nil {
		t.Fatalf("DefaultAppDir error: %v", err)
	}
	wantApp := filepath.Join(home, ".gengo")
	if appDir != wantApp {
		t.Fatalf("appDir=%q want=%q", appDir, wantApp)
	}

	envPath, err := DefaultEnvPath()
	if err != nil {
		t.Fatalf("DefaultEnvPath error: %v", err)
	}
	if want := filepath.Join(wantApp, ".env"); envPath != want {
		t.Fatalf("envPath=%q want=%q", envPath, want)
	}

	cfgPath, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath error: %v", err)
	}
	if want := filepath.Join(wantApp, "config.yaml"); cfgPath != want {
		t.Fatalf("cfgPath=%q want=%q", cfgPath, want)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	dir, err := DefaultCacheDir()
	if err != nil {
		t.Fatalf("DefaultCacheDir error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join("gengo", "quotes")) && !strings.HasSuffix(dir, ".quotes") {
		t.Fatalf("unexpected cache dir: %s", dir)
	}
}
