// Package patch models the fields of a partial update body, telling an
// absent member apart from an explicit null.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field holds one member of a partial update. Set reports presence; Null
// reports an explicit JSON null, in which case Value is the zero value.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value returns a present, non-null field.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a present field holding JSON null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Apply returns current when the field is absent and the patched value otherwise.
func (f Field[T]) Apply(current T) T {
	if !f.Set {
		return current
	}
	return f.Value
}

// ApplyPtr is Apply for optional values: null clears them.
func (f Field[T]) ApplyPtr(current *T) *T {
	if !f.Set {
		return current
	}
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}
