package gengo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"unicode/utf8"
)

// TraceEvent describes one stage of an exchange: "request", "response" or
// "error". Events of the same exchange share RequestID.
type TraceEvent struct {
	RequestID  string
	Stage      string
	Method     string
	URL        string
	StatusCode int
	DurationMs int64
	Request    string
	Response   string
	Error      string
}

const traceBodyLimit = 2 << 20

func traceBody(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if len(b) > traceBodyLimit {
		cut := traceBodyLimit
		for cut > traceBodyLimit-utf8.UTFMax && !utf8.RuneStart(b[cut]) {
			cut--
		}
		b = b[:cut]
	}
	if utf8.Valid(b) {
		return string(b)
	}
	sum := sha256.Sum256(b)
	return fmt.Sprintf("<binary bytes=%d sha256=%s>", len(b), hex.EncodeToString(sum[:]))
}
