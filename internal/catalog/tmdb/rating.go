package tmdb

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Rating keeps vote_average exactly as received so a missing, null, or
// non-numeric value can be told apart from a genuine 0.0.
type Rating struct {
	raw json.RawMessage
}

// NewRating returns a numeric rating.
func NewRating(v float64) Rating {
	return Rating{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(data []byte) error {
	r.raw = append(r.raw[:0], data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Rating) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// Value returns the rating as a float. Numbers and numeric strings are
// accepted; anything else (null, booleans, NaN) reports false.
func (r Rating) Value() (float64, bool) {
	raw := bytes.TrimSpace(r.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
