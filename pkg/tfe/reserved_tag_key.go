package tfe

import "time"

// TypeReservedTagKeys is the JSON:API type of reserved tag keys.
const TypeReservedTagKeys = "reserved-tag-keys"

// ReservedTagKey is a tag key reserved at organization level.
type ReservedTagKey struct {
	ID               string     `json:"id"                          yaml:"id"`
	Key              *string    `json:"key,omitempty"               yaml:"key,omitempty"`
	DisableOverrides *bool      `json:"disable_overrides,omitempty" yaml:"disable_overrides,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"        yaml:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"        yaml:"updated_at,omitempty"`
}

// ReservedTagKeyMapping decodes reserved tag key resource objects.
var ReservedTagKeyMapping = NewMapping(TypeReservedTagKeys,
	func(k *ReservedTagKey) *string { return &k.ID },
	Attr("key", "key", func(k *ReservedTagKey) **string { return &k.Key }),
	Attr("disable_overrides", "disable-overrides", func(k *ReservedTagKey) **bool { return &k.DisableOverrides }),
	Attr("created_at", "created-at", func(k *ReservedTagKey) **time.Time { return &k.CreatedAt }),
	Attr("updated_at", "updated-at", func(k *ReservedTagKey) **time.Time { return &k.UpdatedAt }),
)

// ReservedTagKeyCreateOptions are the options for reserving a tag key.
type ReservedTagKeyCreateOptions struct {
	Key              string
	DisableOverrides *bool
}

// Validate checks the options.
func (o *ReservedTagKeyCreateOptions) Validate() error {
	if o == nil {
		return newValidationError("reserved tag key", "", "", ErrMissingOptions)
	}

	return requireString("reserved tag key", "key", &o.Key, ErrRequiredKey)
}

var reservedTagKeyCreateEncoder = NewEncoder(TypeReservedTagKeys,
	Always("key", func(o *ReservedTagKeyCreateOptions) string { return o.Key }),
	Opt("disable-overrides", func(o *ReservedTagKeyCreateOptions) *bool { return o.DisableOverrides }),
)

// Document encodes the options as a request document.
func (o *ReservedTagKeyCreateOptions) Document() (*Document, error) {
	return reservedTagKeyCreateEncoder.Encode("", o)
}

// ReservedTagKeyUpdateOptions are the options for updating a reserved tag key.
type ReservedTagKeyUpdateOptions struct {
	Key              *string
	DisableOverrides *bool
}

// Validate checks the options.
func (o *ReservedTagKeyUpdateOptions) Validate() error {
	if o == nil {
		return newValidationError("reserved tag key", "", "", ErrMissingOptions)
	}

	if o.Key != nil {
		return requireString("reserved tag key", "key", o.Key, ErrRequiredKey)
	}

	return nil
}

var reservedTagKeyUpdateEncoder = NewEncoder(TypeReservedTagKeys,
	Opt("key", func(o *ReservedTagKeyUpdateOptions) *string { return o.Key }),
	Opt("disable-overrides", func(o *ReservedTagKeyUpdateOptions) *bool { return o.DisableOverrides }),
)

// Document encodes the options as a request document.
func (o *ReservedTagKeyUpdateOptions) Document(id string) (*Document, error) {
	return reservedTagKeyUpdateEncoder.Encode(id, o)
}
