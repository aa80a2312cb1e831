package app

import (
	"context"
	"strings"
	"testing"
)

func TestRunners_MissingKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GENGO_PUBLIC_KEY", "")
	t.Setenv("GENGO_PRIVATE_KEY", "")
	ctx := context.Background()

	runs := map[string]func() error{
		"languages": func() error { return RunLanguages(ctx, Options{}) },
		"account":   func() error { return RunAccount(ctx, Options{}) },
		"quote":     func() error { return RunQuote(ctx, Options{}, QuoteOptions{From: "en", To: []string{"ja"}, Text: "hi"}) },
		"jobs":      func() error { return RunJobs(ctx, Options{}, JobsOptions{}) },
		"order":     func() error { return RunOrderGet(ctx, Options{}, 1) },
		"glossary":  func() error { return RunGlossaries(ctx, Options{}) },
	}
	for name, run := range runs {
		err := run()
		if err == nil || !strings.Contains(err.Error(), "gengo set key") {
			t.Fatalf("%s err=%v", name, err)
		}
	}
}

func TestRunQuote_ValidatesBeforeNetwork(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ctx := context.Background()
	cases := []struct {
		opts QuoteOptions
		want string
	}{
		{QuoteOptions{Text: "hi"}, "target language"},
		{QuoteOptions{To: []string{"ja"}}, "nothing to quote"},
		{QuoteOptions{To: []string{"ja"}, Text: "hi", Files: []string{"a.pdf"}}, "not both"},
		{QuoteOptions{To: []string{"ja"}, Text: "hi", Tier: "gold"}, "unknown tier"},
	}
	for _, tc := range cases {
		err := RunQuote(ctx, Options{}, tc.opts)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("opts=%+v err=%v want=%q", tc.opts, err, tc.want)
		}
	}
}
