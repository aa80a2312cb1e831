package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"gengo-go/internal/callback"
	"gengo-go/sdk/gengo"
)

func TestNormalizeCodes(t *testing.T) {
	got := normalizeCodes([]string{"JA, fr", "ja", " ", "zh-tw"})
	want := []string{"ja", "fr", "zh-tw"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestParseTier(t *testing.T) {
	if tier, err := parseTier(""); err != nil || tier != gengo.TierStandard {
		t.Fatalf("default tier=%q err=%v", tier, err)
	}
	if tier, err := parseTier(" PRO "); err != nil || tier != gengo.TierPro {
		t.Fatalf("tier=%q err=%v", tier, err)
	}
	if _, err := parseTier("machine"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCreditTotals(t *testing.T) {
	jobs := []gengo.Job{
		{Credit: &gengo.Money{Amount: decimal.RequireFromString("1.10"), Currency: gengo.USD}},
		{Credit: &gengo.Money{Amount: decimal.RequireFromString("2"), Currency: gengo.USD}},
		{Credit: &gengo.Money{Amount: decimal.RequireFromString("100"), Currency: gengo.JPY}},
		{},
	}
	if got := creditTotals(jobs); got != "100.00 JPY, 3.10 USD" {
		t.Fatalf("got=%q", got)
	}
	if got := creditTotals(nil); got != "-" {
		t.Fatalf("got=%q", got)
	}
}

func TestHumanDurationShortAndETA(t *testing.T) {
	if got := humanDurationShort(3723 * time.Second); got != "1h2m3s" {
		t.Fatalf("got=%q", got)
	}
	if got := humanDurationShort(-65 * time.Second); got != "1m5s" {
		t.Fatalf("got=%q", got)
	}
	if got := etaText(gengo.Int(-1)); got != "-" {
		t.Fatalf("got=%q", got)
	}
	if got := etaText(gengo.Int(90)); got != "1m30s" {
		t.Fatalf("got=%q", got)
	}
}

func TestIsContextCanceledErr(t *testing.T) {
	if !isContextCanceledErr(&gengo.TransportError{Err: context.Canceled}) {
		t.Fatal("wrapped cancel should match")
	}
	if isContextCanceledErr(errors.New("x")) || isContextCanceledErr(nil) {
		t.Fatal("plain errors should not match")
	}
}

func TestFriendlyError(t *testing.T) {
	err := friendlyError(&gengo.APIError{Code: gengo.CodeNotEnoughCredits, Message: "no"})
	if !strings.Contains(err.Error(), "top up") || !gengo.IsNotEnoughCredits(err) {
		t.Fatalf("err=%v", err)
	}
	plain := fmt.Errorf("boom")
	if friendlyError(plain) != plain {
		t.Fatal("other errors pass through")
	}
}

func TestLogCallback(t *testing.T) {
	lg, err := NewLogger(false, "")
	if err != nil {
		t.Fatal(err)
	}
	j := gengo.Job{ID: gengo.Int(4), Status: gengo.StatusReviewable}
	out := captureStdout(t, func() {
		logCallback(lg, callback.Event{Job: &j, JobID: j.ID})
		logCallback(lg, callback.Event{JobID: gengo.Int(4), Comment: &gengo.Comment{Author: gengo.AuthorWorker, Body: "done?"}})
	})
	if !strings.Contains(out, "job 4: reviewable") || !strings.Contains(out, "new comment from worker: done?") {
		t.Fatalf("output: %s", out)
	}
}
