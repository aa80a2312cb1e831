package gengo

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"testing"
	"time"
)

func TestSignMatchesHMACSHA1(t *testing.T) {
	mac := hmac.New(sha1.New, []byte("secret"))
	mac.Write([]byte("1700000000"))
	want := hex.EncodeToString(mac.Sum(nil))

	got := Sign("secret", 1700000000)
	if got != want {
		t.Fatalf("got=%s want=%s", got, want)
	}
	if got != strings.ToLower(got) || len(got) != 40 {
		t.Fatalf("signature should be 40 lowercase hex chars: %q", got)
	}
}

func TestSignIsStableAndTimeBound(t *testing.T) {
	a := Sign("k", 100)
	b := Sign("k", 100)
	if a != b {
		t.Fatalf("same input should sign identically: %s vs %s", a, b)
	}
	if Sign("k", 101) == a {
		t.Fatal("later timestamp should change the signature")
	}
	if Sign("other", 100) == a {
		t.Fatal("different secret should change the signature")
	}
}

func TestTimestampTruncates(t *testing.T) {
	ts := time.Unix(1700000000, 999_999_999)
	if got := Timestamp(ts); got != 1700000000 {
		t.Fatalf("got=%d", got)
	}
}
