package schema

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is an integer that may be absent. The zero Value is absent, and a
// present zero is a real recorded count, so the two never compare equal.
type Value struct {
	N       int
	Present bool
}

// NoValue marks a missing sample or an undefined derivative.
var NoValue = Value{}

// NewValue returns a present value.
func NewValue(n int) Value {
	return Value{N: n, Present: true}
}

// Get returns the integer and whether it is present.
func (v Value) Get() (int, bool) {
	return v.N, v.Present
}

// IsZero reports whether v is present and equal to 0.
func (v Value) IsZero() bool {
	return v.Present && v.N == 0
}

// String renders absent values as "-".
func (v Value) String() string {
	if !v.Present {
		return "-"
	}
	return strconv.Itoa(v.N)
}

// Int64Ptr converts v into a nullable column value.
func (v Value) Int64Ptr() *int64 {
	if !v.Present {
		return nil
	}
	n := int64(v.N)
	return &n
}

// MarshalJSON encodes an absent value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Present {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(v.N)), nil
}

// UnmarshalJSON decodes null as absent.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = NoValue
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = NewValue(n)
	return nil
}

// MarshalYAML encodes an absent value as null.
func (v Value) MarshalYAML() (any, error) {
	if !v.Present {
		return nil, nil
	}
	return v.N, nil
}
