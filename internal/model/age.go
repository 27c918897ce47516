package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Age is an integer age or the not-a-number sentinel produced when the
// input could not be coerced. The sentinel renders as JSON null.
type Age struct {
	Value int
	Valid bool
}

// NaN is the age sentinel.
var NaN = Age{}

// AgeOf returns a valid age.
func AgeOf(v int) Age {
	return Age{Value: v, Valid: true}
}

// IsNaN reports whether the age is the sentinel.
func (a Age) IsNaN() bool {
	return !a.Valid
}

// Ptr returns nil for the sentinel.
func (a Age) Ptr() *int {
	if !a.Valid {
		return nil
	}
	v := a.Value
	return &v
}

// MarshalJSON implements json.Marshaler.
func (a Age) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(a.Value)), nil
}

// UnmarshalJSON is lenient: anything that is not coercible becomes the sentinel.
func (a *Age) UnmarshalJSON(b []byte) error {
	*a = CoerceAge(b)
	return nil
}

// maxSafeFloat is the magnitude past which a float no longer has a plain
// decimal rendering and truncation stops being meaningful.
const maxSafeFloat = 1e21

// CoerceAge converts a raw JSON value into an age. Strings use an integer
// prefix parse, numbers are truncated toward zero, everything else is NaN.
func CoerceAge(raw json.RawMessage) Age {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return NaN
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return NaN
		}
		return ParseAge(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || math.IsNaN(f) || math.Abs(f) >= maxSafeFloat {
			return NaN
		}
		t := math.Trunc(f)
		if t >= math.MaxInt64 || t < math.MinInt64 {
			return NaN
		}
		return AgeOf(int(t))
	default:
		return NaN
	}
}

// ParseAge parses the longest integer prefix of s after leading white space.
// An optional sign and a 0x prefix are honoured.
func ParseAge(s string) Age {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return NaN
	}

	v, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return NaN
	}
	if neg {
		v = -v
	}

	return AgeOf(int(v))
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
