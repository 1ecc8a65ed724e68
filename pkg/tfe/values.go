package tfe

import (
	"bytes"
	"encoding/json"
)

// Ptr returns a pointer to v. Handy for building option structs.
func Ptr[T any](v T) *T {
	return &v
}

// Nullable is an option value that can be sent as an explicit JSON null.
// A nil *Nullable field is omitted from the payload entirely; Null() clears
// the value on the server.
type Nullable[T any] struct {
	value T
	valid bool
}

// NullableOf wraps v as a non-null value.
func NullableOf[T any](v T) *Nullable[T] {
	return &Nullable[T]{value: v, valid: true}
}

// Null returns a value that encodes as JSON null.
func Null[T any]() *Nullable[T] {
	return &Nullable[T]{}
}

// Get returns the wrapped value and whether it is non-null.
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.valid
}

// IsNull reports whether the value encodes as null.
func (n Nullable[T]) IsNull() bool {
	return !n.valid
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}

	return json.Marshal(n.value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.value, n.valid = zero, false

		return nil
	}

	if err := json.Unmarshal(data, &n.value); err != nil {
		return err
	}

	n.valid = true

	return nil
}

// SensitiveValue is the value of a field the server may redact. A redacted
// value is distinct from both an empty string and an absent value.
type SensitiveValue struct {
	value    string
	set      bool
	redacted bool
}

// Redacted is the value of a field the server withheld.
var Redacted = SensitiveValue{redacted: true}

// RedactedPlaceholder is how a redacted value renders as text.
const RedactedPlaceholder = "<redacted>"

// NewSensitiveValue wraps a value that was returned by the server.
func NewSensitiveValue(v string) SensitiveValue {
	return SensitiveValue{value: v, set: true}
}

// IsRedacted reports whether the server withheld the value.
func (v SensitiveValue) IsRedacted() bool {
	return v.redacted
}

// Get returns the value and true when it is known.
func (v SensitiveValue) Get() (string, bool) {
	return v.value, v.set && !v.redacted
}

func (v SensitiveValue) String() string {
	if v.redacted {
		return RedactedPlaceholder
	}

	return v.value
}

func (v SensitiveValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.redacted:
		return json.Marshal(RedactedPlaceholder)
	case !v.set:
		return []byte("null"), nil
	default:
		return json.Marshal(v.value)
	}
}

func (v *SensitiveValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = SensitiveValue{}

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*v = NewSensitiveValue(s)

	return nil
}
