package domain

import (
	"bytes"
	"encoding/json"
)

// Optional wraps a JSON field so a decoder can tell apart a key that was
// omitted, a key explicitly set to null, and a key carrying a value.
//
// The zero value is "absent". Decoding any JSON value, including null,
// marks the field as Set.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// HasValue reports whether the field was supplied with a non-null value.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// Ptr returns nil for absent or null fields, otherwise a pointer to a copy of Value.
func (o Optional[T]) Ptr() *T {
	if !o.HasValue() {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON implements json.Marshaler. Absent and null fields both encode as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
