package gengo

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"
)

// Sign returns the lowercase hex HMAC-SHA1 of the decimal timestamp keyed by secret.
func Sign(secret string, ts int64) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Timestamp truncates t to whole epoch seconds.
func Timestamp(t time.Time) int64 {
	return t.Unix()
}
