package app

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"gengo-go/sdk/gengo"
)

func TestRunAccount_MergesStatsAndBalance(t *testing.T) {
	f := newFakeGengo(t, map[string]string{
		"GET account/stats":   okEnvelope(`{"credits_spent":"1023.31","user_since":1234089500,"currency":"USD"}`),
		"GET account/balance": okEnvelope(`{"credits":"25.32","currency":"USD"}`),
	})
	out := captureStdout(t, func() {
		if err := RunAccount(context.Background(), Options{}); err != nil {
			t.Errorf("RunAccount: %v", err)
		}
	})
	if !strings.Contains(out, "25.32 USD") || !strings.Contains(out, "1023.31 USD") {
		t.Fatalf("account output: %s", out)
	}
	if len(f.callsTo("GET", "account/stats")) != 1 || len(f.callsTo("GET", "account/balance")) != 1 {
		t.Fatal("both endpoints should be called once")
	}
}

func TestRunAccount_FailsWhenOneCallFails(t *testing.T) {
	newFakeGengo(t, map[string]string{
		"GET account/stats": okEnvelope(`{"credits_spent":"1"}`),
	})
	if err := RunAccount(context.Background(), Options{}); err == nil {
		t.Fatal("expected error when balance fails")
	}
}

func TestMergeAccount(t *testing.T) {
	spent := decimal.RequireFromString("3")
	credits := decimal.RequireFromString("9")
	got := mergeAccount(gengo.Account{CreditsSpent: &spent}, gengo.Account{CreditsPresent: &credits, Currency: gengo.EUR})
	if got.CreditsSpent != &spent || got.CreditsPresent != &credits || got.Currency != gengo.EUR {
		t.Fatalf("merged=%+v", got)
	}
}

func TestRunTranslators(t *testing.T) {
	newFakeGengo(t, map[string]string{
		"GET account/preferred_translators": okEnvelope(`[{"lc_src":"en","lc_tgt":"ja","tier":"standard","translators":[{"id":8596,"number_of_jobs":14},{"id":24123,"number_of_jobs":1}]}]`),
	})
	out := captureStdout(t, func() {
		if err := RunTranslators(context.Background(), Options{}); err != nil {
			t.Errorf("RunTranslators: %v", err)
		}
	})
	if !strings.Contains(out, "8596") || !strings.Contains(out, "24123") || !strings.Contains(out, "en > ja") {
		t.Fatalf("translators output: %s", out)
	}
}
