package dto

import (
	"bytes"
	"encoding/json"
)

// Value is a single quoteSummary field.
// Yahoo wraps numbers as {"raw": 1.5, "fmt": "1.50"}, sends {} when it has no
// data and plain JSON for strings and some counts. V ends up nil, a float64
// or a string.
type Value struct {
	V any
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	v.V = nil
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '{':
		var w struct {
			Raw json.RawMessage `json:"raw"`
		}
		if err := json.Unmarshal(b, &w); err != nil {
			return err
		}
		if len(w.Raw) == 0 {
			return nil
		}
		return v.UnmarshalJSON(w.Raw)
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v.V = s
	case '[':
		// no scalar field is an array
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err == nil {
			v.V = f
		}
	}
	return nil
}

// Text returns the value as a string pointer, nil unless it is a non-empty string.
func (v Value) Text() *string {
	s, ok := v.V.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// Or returns v unless it is nil, in which case it returns fallback.
func (v Value) Or(fallback Value) any {
	if v.V != nil {
		return v.V
	}
	return fallback.V
}

// ValueList decodes either a single Value or an array of them.
// calendarEvents.earnings.earningsDate uses both shapes.
type ValueList []Value

// UnmarshalJSON implements json.Unmarshaler.
func (l *ValueList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var vs []Value
		if err := json.Unmarshal(b, &vs); err != nil {
			return err
		}
		*l = vs
		return nil
	}
	var v Value
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.V == nil {
		*l = nil
		return nil
	}
	*l = ValueList{v}
	return nil
}
