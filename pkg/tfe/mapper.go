package tfe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	errNilResource    = errors.New("missing resource object")
	errMissingID      = errors.New("resource object has no id")
	errUnexpectedType = errors.New("unexpected resource type")
)

// FieldMapping is one row of a mapping table: a semantic field name, the wire
// key it is read from, and how to decode it.
type FieldMapping[T any] struct {
	Name         string
	Wire         string
	Relationship bool

	decodeAttr func(*T, json.RawMessage) error
	decodeRel  func(*T, Relationship)
}

// Attr maps a wire attribute onto a field. The field should be a pointer,
// slice, map or Nullable so an absent attribute stays distinguishable from a
// zero value.
func Attr[T, V any](name, wire string, field func(*T) *V) FieldMapping[T] {
	return FieldMapping[T]{
		Name: name,
		Wire: wire,
		decodeAttr: func(m *T, raw json.RawMessage) error {
			return json.Unmarshal(raw, field(m))
		},
	}
}

// ToOneRel maps a to-one relationship onto a reference field.
func ToOneRel[T any](name, wire string, field func(*T) **ResourceRef) FieldMapping[T] {
	return FieldMapping[T]{
		Name:         name,
		Wire:         wire,
		Relationship: true,
		decodeRel: func(m *T, rel Relationship) {
			if rel.One != nil {
				ref := *rel.One
				*field(m) = &ref
			}
		},
	}
}

// ToManyRel maps a to-many relationship onto a reference slice.
func ToManyRel[T any](name, wire string, field func(*T) *[]ResourceRef) FieldMapping[T] {
	return FieldMapping[T]{
		Name:         name,
		Wire:         wire,
		Relationship: true,
		decodeRel: func(m *T, rel Relationship) {
			if rel.ToMany {
				*field(m) = slices.Clone(rel.Many)
			}
		},
	}
}

// Mapping decodes resource objects of one type into domain models.
type Mapping[T any] struct {
	Type string

	id     func(*T) *string
	fields []FieldMapping[T]
	after  []func(*T)
}

// NewMapping builds the mapping table for a resource type.
func NewMapping[T any](resourceType string, id func(*T) *string, fields ...FieldMapping[T]) *Mapping[T] {
	return &Mapping[T]{Type: resourceType, id: id, fields: fields}
}

// AfterDecode registers a hook run on every decoded model.
func (m *Mapping[T]) AfterDecode(fn func(*T)) *Mapping[T] {
	m.after = append(m.after, fn)

	return m
}

// Fields returns the mapping table rows.
func (m *Mapping[T]) Fields() []FieldMapping[T] {
	return slices.Clone(m.fields)
}

// WireKey returns the wire key for a semantic field name.
func (m *Mapping[T]) WireKey(name string) (string, bool) {
	for _, f := range m.fields {
		if f.Name == name {
			return f.Wire, true
		}
	}

	return "", false
}

// Decode builds a new model from a resource object. Every call returns a
// fresh value.
func (m *Mapping[T]) Decode(obj *ResourceObject) (*T, error) {
	if obj == nil {
		return nil, &DecodeError{Resource: m.Type, Err: errNilResource}
	}

	if obj.Type != "" && obj.Type != m.Type {
		return nil, &DecodeError{
			Resource: m.Type,
			ID:       obj.ID,
			Err:      fmt.Errorf("%w: got %q", errUnexpectedType, obj.Type),
		}
	}

	if obj.ID == "" {
		return nil, &DecodeError{Resource: m.Type, Err: errMissingID}
	}

	out := new(T)
	*m.id(out) = obj.ID

	for _, f := range m.fields {
		if f.Relationship {
			if rel, ok := obj.Relationships[f.Wire]; ok {
				f.decodeRel(out, rel)
			}

			continue
		}

		raw, ok := obj.Attributes[f.Wire]
		if !ok {
			continue
		}

		if err := f.decodeAttr(out, raw); err != nil {
			return nil, &DecodeError{Resource: m.Type, ID: obj.ID, Field: f.Wire, Err: err}
		}
	}

	for _, fn := range m.after {
		fn(out)
	}

	return out, nil
}

// DecodeBody decodes a single-resource response body.
func (m *Mapping[T]) DecodeBody(body []byte) (*T, error) {
	obj, err := DecodeDocument(m.Type, body)
	if err != nil {
		return nil, err
	}

	return m.Decode(obj)
}

// EncodeField is one row of an options encoding table.
type EncodeField[O any] struct {
	Wire string

	attr func(*O) (any, bool)
	rel  func(*O) (Relationship, bool)
}

// Opt emits an attribute only when the option field is non-nil.
func Opt[O, V any](wire string, field func(*O) *V) EncodeField[O] {
	return EncodeField[O]{
		Wire: wire,
		attr: func(o *O) (any, bool) {
			v := field(o)
			if v == nil {
				return nil, false
			}

			return *v, true
		},
	}
}

// OptSlice emits an attribute only when the slice is non-nil. An empty,
// non-nil slice is sent as [].
func OptSlice[O, V any](wire string, field func(*O) []V) EncodeField[O] {
	return EncodeField[O]{
		Wire: wire,
		attr: func(o *O) (any, bool) {
			v := field(o)
			if v == nil {
				return nil, false
			}

			return v, true
		},
	}
}

// Always emits an attribute unconditionally.
func Always[O, V any](wire string, field func(*O) V) EncodeField[O] {
	return EncodeField[O]{
		Wire: wire,
		attr: func(o *O) (any, bool) {
			return field(o), true
		},
	}
}

// Rel emits a relationship when fn reports one is set.
func Rel[O any](wire string, fn func(*O) (Relationship, bool)) EncodeField[O] {
	return EncodeField[O]{Wire: wire, rel: fn}
}

// Encoder turns an options struct into a request document, emitting only the
// fields the caller set.
type Encoder[O any] struct {
	Type   string
	fields []EncodeField[O]
}

// NewEncoder builds the encoding table for a resource type.
func NewEncoder[O any](resourceType string, fields ...EncodeField[O]) *Encoder[O] {
	return &Encoder[O]{Type: resourceType, fields: fields}
}

// Encode builds the request document. id is empty for create requests.
func (e *Encoder[O]) Encode(id string, opts *O) (*Document, error) {
	obj := &ResourceObject{ID: id, Type: e.Type}

	if opts == nil {
		return &Document{Data: obj}, nil
	}

	for _, f := range e.fields {
		if f.rel != nil {
			rel, ok := f.rel(opts)
			if !ok {
				continue
			}

			if obj.Relationships == nil {
				obj.Relationships = make(map[string]Relationship)
			}

			obj.Relationships[f.Wire] = rel

			continue
		}

		value, ok := f.attr(opts)
		if !ok {
			continue
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s attribute %q: %w", e.Type, f.Wire, err)
		}

		if obj.Attributes == nil {
			obj.Attributes = make(map[string]json.RawMessage)
		}

		obj.Attributes[f.Wire] = raw
	}

	return &Document{Data: obj}, nil
}

// decodeEnum maps a JSON string onto a closed set of values. Values the
// client does not know decode to unknown rather than failing.
func decodeEnum[E ~string](data []byte, unknown E, known ...E) (E, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}

	if slices.Contains(known, E(s)) {
		return E(s), nil
	}

	return unknown, nil
}
