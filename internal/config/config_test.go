package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GENGO_SANDBOX", "GENGO_BASE_URL", "GENGO_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadOrInit_WritesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearConfigEnv(t)

	path := filepath.Join(home, ".gengo", "config.yaml")
	cfg, err := LoadOrInit(path)
	if err != nil {
		t.Fatalf("LoadOrInit error: %v", err)
	}
	if cfg.API.Sandbox || cfg.API.TimeoutSecond != 60 || cfg.Log.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(b), "timeout_second: 60") {
		t.Fatalf("unexpected file: %s", string(b))
	}
}

func TestLoadOrInit_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearConfigEnv(t)

	path := filepath.Join(home, "cfg.yaml")
	content := "api:\n  sandbox: false\n  base_url: http://127.0.0.1:9999/v2/\nrun:\n  poll_interval_ms: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GENGO_SANDBOX", "true")
	t.Setenv("GENGO_LOG_LEVEL", "debug")

	cfg, err := LoadOrInit(path)
	if err != nil {
		t.Fatalf("LoadOrInit error: %v", err)
	}
	if !cfg.API.Sandbox || cfg.Log.Level != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:9999/v2/" || cfg.Run.PollIntervalMs != 10 {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.Run.PollTimeoutSecond != 900 || cfg.Callback.Path != "/gengo/callback" {
		t.Fatalf("defaults not filled: %+v", cfg)
	}
}

func TestLoadOrInit_Invalid(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearConfigEnv(t)

	path := filepath.Join(home, "cfg.yaml")
	if err := os.WriteFile(path, []byte("api: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrInit(path); err == nil {
		t.Fatal("expected parse error")
	}

	if err := os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrInit(path); err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Fatalf("expected level validation error, got %v", err)
	}

	if err := os.WriteFile(path, []byte("api:\n  base_url: not-a-url\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrInit(path); err == nil {
		t.Fatal("expected base_url validation error")
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if p, _ := ResolvePath("x.yaml"); p != "x.yaml" {
		t.Fatalf("p=%s", p)
	}
	p, err := ResolvePath("")
	if err != nil || p != filepath.Join(home, ".gengo", "config.yaml") {
		t.Fatalf("p=%s err=%v", p, err)
	}
}
