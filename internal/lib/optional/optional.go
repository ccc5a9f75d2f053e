// Package optional provides a JSON field wrapper that tells an omitted key
// apart from an explicit null.
//
// PATCH payloads decode into Field values:
//
//	{}                   -> Set=false
//	{"email": null}      -> Set=true, Null=true
//	{"email": "a@b.co"}  -> Set=true, Value="a@b.co"
package optional

import (
	"bytes"
	"encoding/json"
)

var null = []byte("null")

// Field is a value that may be absent, explicitly null, or present.
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Of returns a present, non-null field.
func Of[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Null returns a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, which is
// what marks the field as set.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true

	if bytes.Equal(bytes.TrimSpace(data), null) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}

	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON writes null for absent and null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return null, nil
	}
	return json.Marshal(f.Value)
}

// Present reports whether the field carries a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// Ptr returns the value as a pointer, nil for explicit null.
// Callers check Set first.
func (f Field[T]) Ptr() *T {
	if !f.Present() {
		return nil
	}
	v := f.Value
	return &v
}
