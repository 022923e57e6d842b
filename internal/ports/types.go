package ports

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexibleInt accepts a JSON number or a numeric JSON string.
// Values are read with integer-prefix semantics: "25", 25, 25.9 and "25abc"
// all yield 25. Anything without a leading integer leaves Valid false.
type FlexibleInt struct {
	Value int64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	*f = FlexibleInt{}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			f.Value, f.Valid = i, true
			return nil
		}
		if fl, err := v.Float64(); err == nil && !math.IsInf(fl, 0) && math.Abs(fl) < math.MaxInt64 {
			f.Value, f.Valid = int64(math.Trunc(fl)), true
		}
	case string:
		f.Value, f.Valid = ParseLeadingInt(v)
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (f FlexibleInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// ParseLeadingInt reads an optionally signed run of digits at the start of s,
// after leading whitespace.
func ParseLeadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IntOrDefault parses s with ParseLeadingInt, returning def when s has no
// leading integer or parses to zero.
func IntOrDefault(s string, def int64) int64 {
	if n, ok := ParseLeadingInt(s); ok && n != 0 {
		return n
	}
	return def
}
