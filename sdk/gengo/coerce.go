package gengo

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The API sends numbers and flags either natively or as strings. Everything
// below normalises both shapes; a value that cannot be interpreted is reported
// as absent (ok == false), never as an error.

func decodeValue(b []byte) any {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// decodeLenient unmarshals raw into v, tolerating fields whose JSON type does
// not match; those fields keep their zero value.
func decodeLenient(raw []byte, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	err := json.Unmarshal(raw, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), true
		}
		if f, err := x.Float64(); err == nil {
			return floatInt(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return i, true
		}
	case float64:
		return floatInt(x)
	case int:
		return x, true
	case int64:
		return int(x), true
	}
	return 0, false
}

// floatInt accepts only integral values that fit in an int.
func floatInt(f float64) (int, bool) {
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

func toBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		s := strings.TrimSpace(x)
		if strings.EqualFold(s, "true") {
			return true
		}
		if strings.EqualFold(s, "false") {
			return false
		}
	}
	if i, ok := toInt(v); ok {
		return i >= 1
	}
	return false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	}
	return decimal.Decimal{}, false
}

func toTime(v any) (time.Time, bool) {
	i, ok := toInt(v)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(i), 0).UTC(), true
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

type looseInt struct {
	v  int
	ok bool
}

func (l *looseInt) UnmarshalJSON(b []byte) error {
	l.v, l.ok = toInt(decodeValue(b))
	return nil
}

func (l looseInt) ptr() *int {
	if !l.ok {
		return nil
	}
	v := l.v
	return &v
}

type looseBool struct {
	v   bool
	set bool
}

func (l *looseBool) UnmarshalJSON(b []byte) error {
	v := decodeValue(b)
	l.v, l.set = toBool(v), v != nil
	return nil
}

func (l looseBool) ptr() *bool {
	if !l.set {
		return nil
	}
	v := l.v
	return &v
}

type looseDecimal struct {
	v  decimal.Decimal
	ok bool
}

func (l *looseDecimal) UnmarshalJSON(b []byte) error {
	l.v, l.ok = toDecimal(decodeValue(b))
	return nil
}

func (l looseDecimal) ptr() *decimal.Decimal {
	if !l.ok {
		return nil
	}
	v := l.v
	return &v
}

type looseTime struct {
	v  time.Time
	ok bool
}

func (l *looseTime) UnmarshalJSON(b []byte) error {
	l.v, l.ok = toTime(decodeValue(b))
	return nil
}

func (l looseTime) ptr() *time.Time {
	if !l.ok {
		return nil
	}
	v := l.v
	return &v
}

type looseString struct {
	v  string
	ok bool
}

func (l *looseString) UnmarshalJSON(b []byte) error {
	l.v, l.ok = toString(decodeValue(b))
	return nil
}

type looseValue struct {
	v any
}

func (l *looseValue) UnmarshalJSON(b []byte) error {
	l.v = decodeValue(b)
	return nil
}
