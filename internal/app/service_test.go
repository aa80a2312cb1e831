package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gengo-go/internal/config"
	"gengo-go/internal/quotecache"
)

func TestRunLanguagesAndPairs(t *testing.T) {
	f := newFakeGengo(t, map[string]string{
		"GET translate/service/languages":      okEnvelope(`[{"lc":"ja","language":"Japanese","localized_name":"日本語","unit_type":"character"}]`),
		"GET translate/service/language_pairs": okEnvelope(`[{"lc_src":"en","lc_tgt":"ja","tier":"standard","unit_price":"0.05","currency":"USD"}]`),
	})
	ctx := context.Background()

	out := captureStdout(t, func() {
		if err := RunLanguages(ctx, Options{}); err != nil {
			t.Errorf("RunLanguages: %v", err)
		}
	})
	if !strings.Contains(out, "Japanese") || !strings.Contains(out, "character") {
		t.Fatalf("languages output: %s", out)
	}

	out = captureStdout(t, func() {
		if err := RunPairs(ctx, Options{}, " EN "); err != nil {
			t.Errorf("RunPairs: %v", err)
		}
	})
	if !strings.Contains(out, "standard") {
		t.Fatalf("pairs output: %s", out)
	}
	calls := f.callsTo("GET", "translate/service/language_pairs")
	if len(calls) != 1 || calls[0].Query.Get("lc_src") != "en" {
		t.Fatalf("pairs calls=%+v", calls)
	}
	if calls[0].Query.Get("api_key") != "pub" || calls[0].Query.Get("api_sig") == "" {
		t.Fatalf("request not signed: %v", calls[0].Query)
	}
}

func TestRunQuote_TextSavesCache(t *testing.T) {
	f := newFakeGengo(t, map[string]string{
		"POST translate/service/quote": okEnvelope(`{"jobs":{
			"job_1":{"unit_count":2,"credits":"0.10","currency":"USD","eta":3600},
			"job_2":{"unit_count":2,"credits":"0.12","currency":"USD","eta":7200}
		}}`),
	})
	outDir := t.TempDir()

	out := captureStdout(t, func() {
		err := RunQuote(context.Background(), Options{}, QuoteOptions{
			From: "en", To: []string{"ja,fr", "ja"}, Text: "Hello world", Save: true, OutDir: outDir,
		})
		if err != nil {
			t.Errorf("RunQuote: %v", err)
		}
	})
	if !strings.Contains(out, "en > ja") || !strings.Contains(out, "en > fr") {
		t.Fatalf("quote table: %s", out)
	}
	if !strings.Contains(out, "total: 0.22 USD") {
		t.Fatalf("quote total: %s", out)
	}

	calls := f.callsTo("POST", "translate/service/quote")
	if len(calls) != 1 {
		t.Fatalf("calls=%d", len(calls))
	}
	jobs, _ := calls[0].Data["jobs"].(map[string]any)
	if len(jobs) != 2 {
		t.Fatalf("submitted jobs=%v", calls[0].Data)
	}
	first, _ := jobs["job_1"].(map[string]any)
	if first["body_src"] != "Hello world" || first["lc_tgt"] != "ja" || first["tier"] != "standard" {
		t.Fatalf("job_1=%v", first)
	}

	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	st, err := quotecache.LoadState(cfg.Quote.CacheDir, "pub")
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Jobs) != 2 || st.Jobs[1].Target != "fr" || st.Jobs[1].Credits != "0.12" {
		t.Fatalf("cache=%+v", st)
	}

	entries, _ := os.ReadDir(outDir)
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "quote_") {
		t.Fatalf("snapshot files=%v", entries)
	}
}

func TestRunQuote_FilesUseUpload(t *testing.T) {
	f := newFakeGengo(t, map[string]string{
		"POST translate/service/quote/file": okEnvelope(`{"jobs":{
			"job_1":{"unit_count":120,"credits":"6.00","currency":"USD","eta":86400,"identifier":"id-a","title":"a.pdf"}
		}}`),
	})
	dir := t.TempDir()
	src := filepath.Join(dir, "a.pdf")
	if err := os.WriteFile(src, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RunQuote(context.Background(), Options{JSON: true}, QuoteOptions{To: []string{"ja"}, Files: []string{dir}})
	if err == nil || !strings.Contains(err.Error(), "--from") {
		t.Fatalf("expected --from error, got %v", err)
	}

	out := captureStdout(t, func() {
		if err := RunQuote(context.Background(), Options{JSON: true}, QuoteOptions{From: "en", To: []string{"ja"}, Files: []string{dir}}); err != nil {
			t.Errorf("RunQuote: %v", err)
		}
	})
	var quoted []map[string]any
	if err := json.Unmarshal([]byte(out), &quoted); err != nil {
		t.Fatalf("json output: %v\n%s", err, out)
	}
	if len(quoted) != 1 || quoted[0]["identifier"] != "id-a" || quoted[0]["slug"] != "a.pdf" {
		t.Fatalf("quoted=%v", quoted)
	}

	calls := f.callsTo("POST", "translate/service/quote/file")
	if len(calls) != 1 || len(calls[0].Files) != 1 || calls[0].Files[0] != "a.pdf" {
		t.Fatalf("upload calls=%+v", calls)
	}
	jobs, _ := calls[0].Data["jobs"].(map[string]any)
	first, _ := jobs["job_1"].(map[string]any)
	if first["file_key"] != "file_1" || first["type"] != "file" {
		t.Fatalf("job_1=%v", first)
	}

	cfg, _ := config.Default()
	st, _ := quotecache.LoadState(cfg.Quote.CacheDir, "pub")
	if len(st.Jobs) != 1 || st.Jobs[0].FilePath != src || st.Jobs[0].Identifier != "id-a" {
		t.Fatalf("cache=%+v", st)
	}
}
