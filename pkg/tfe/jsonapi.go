package tfe

import (
	"bytes"
	"encoding/json"
	"errors"
)

// MediaType is the JSON:API content type spoken by the API.
const MediaType = "application/vnd.api+json"

var errUnexpectedDataShape = errors.New("unexpected shape for data member")

// ResourceObject is the id/type/attributes/relationships unit of a document.
type ResourceObject struct {
	ID            string                     `json:"id,omitempty"`
	Type          string                     `json:"type"`
	Attributes    map[string]json.RawMessage `json:"attributes,omitempty"`
	Relationships map[string]Relationship    `json:"relationships,omitempty"`
}

// ResourceRef identifies another resource by ID. Following it requires an
// explicit read.
type ResourceRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Relationship is a to-one or to-many linkage.
type Relationship struct {
	One    *ResourceRef
	Many   []ResourceRef
	ToMany bool
}

func (r Relationship) MarshalJSON() ([]byte, error) {
	if r.ToMany {
		many := r.Many
		if many == nil {
			many = []ResourceRef{}
		}

		return json.Marshal(struct {
			Data []ResourceRef `json:"data"`
		}{many})
	}

	return json.Marshal(struct {
		Data *ResourceRef `json:"data"`
	}{r.One})
}

func (r *Relationship) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	raw := bytes.TrimSpace(envelope.Data)

	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		*r = Relationship{}
	case raw[0] == '[':
		*r = Relationship{ToMany: true}

		return json.Unmarshal(raw, &r.Many)
	case raw[0] == '{':
		var ref ResourceRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return err
		}

		*r = Relationship{One: &ref}
	default:
		return errUnexpectedDataShape
	}

	return nil
}

// ToOne builds a to-one relationship.
func ToOne(resourceType, id string) Relationship {
	return Relationship{One: &ResourceRef{ID: id, Type: resourceType}}
}

// ToMany builds a to-many relationship.
func ToMany(resourceType string, ids ...string) Relationship {
	refs := make([]ResourceRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, ResourceRef{ID: id, Type: resourceType})
	}

	return Relationship{Many: refs, ToMany: true}
}

// Pagination is the meta.pagination member of a list response.
type Pagination struct {
	CurrentPage  int  `json:"current-page"`
	PreviousPage *int `json:"prev-page"`
	NextPage     *int `json:"next-page"`
	TotalPages   int  `json:"total-pages"`
	TotalCount   int  `json:"total-count"`
}

// Meta is the top-level meta member.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Document is a single-resource document, used for requests and responses.
type Document struct {
	Data *ResourceObject `json:"data"`
}

// ListDocument is a collection document.
type ListDocument struct {
	Data []ResourceObject `json:"data"`
	Meta *Meta            `json:"meta,omitempty"`
}

// Page is one decoded page of a list response.
type Page[T any] struct {
	Items      []*T
	Pagination *Pagination
}

// DecodeDocument parses a single-resource response body.
func DecodeDocument(resource string, body []byte) (*ResourceObject, error) {
	var raw struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Resource: resource, Err: err}
	}

	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 || data[0] != '{' {
		return nil, &DecodeError{Resource: resource, Err: errUnexpectedDataShape}
	}

	var obj ResourceObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &DecodeError{Resource: resource, Err: err}
	}

	return &obj, nil
}

// DecodeListDocument parses a collection response body.
func DecodeListDocument(resource string, body []byte) (*ListDocument, error) {
	var raw struct {
		Data json.RawMessage `json:"data"`
		Meta *Meta           `json:"meta"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Resource: resource, Err: err}
	}

	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, &DecodeError{Resource: resource, Err: errUnexpectedDataShape}
	}

	doc := &ListDocument{Meta: raw.Meta}
	if err := json.Unmarshal(data, &doc.Data); err != nil {
		return nil, &DecodeError{Resource: resource, Err: err}
	}

	return doc, nil
}

// DecodePage decodes a collection body through a mapping.
func DecodePage[T any](mapping *Mapping[T], body []byte) (*Page[T], error) {
	doc, err := DecodeListDocument(mapping.Type, body)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{Items: make([]*T, 0, len(doc.Data))}
	if doc.Meta != nil {
		page.Pagination = doc.Meta.Pagination
	}

	for i := range doc.Data {
		item, err := mapping.Decode(&doc.Data[i])
		if err != nil {
			return nil, err
		}

		page.Items = append(page.Items, item)
	}

	return page, nil
}
