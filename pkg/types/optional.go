package types

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a JSON field was present in a request and, when
// present, whether it carried null. Partial updates rely on the distinction:
// an absent field is left untouched, a present null clears the column.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// NewOptional returns a present, non-null Optional wrapping value.
func NewOptional[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

// NullOptional returns a present Optional carrying an explicit null.
func NullOptional[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	o.Set = true
	if bytes.Equal(trimmed, []byte("null")) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}

	if err := json.Unmarshal(trimmed, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns the value as a pointer, nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
