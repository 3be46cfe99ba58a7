package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt accepts the loosely typed quantity values clients send: JSON
// numbers (floats are truncated), numeric strings like "3.7", or garbage.
// OK is false when the input could not be parsed, so each caller can pick
// its own fallback.
type FlexInt struct {
	Value int
	OK    bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	f.Value, f.OK = 0, false

	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.Value, f.OK = int(v), true
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// IntOr returns the parsed value, or fallback when the input was invalid.
func (f FlexInt) IntOr(fallback int) int {
	if !f.OK {
		return fallback
	}
	return f.Value
}

// FlexFloat is the price counterpart of FlexInt.
type FlexFloat struct {
	Value float64
	OK    bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	f.Value, f.OK = 0, false

	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.Value, f.OK = v, true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// FloatOr returns the parsed value, or fallback when the input was invalid.
func (f FlexFloat) FloatOr(fallback float64) float64 {
	if !f.OK {
		return fallback
	}
	return f.Value
}
