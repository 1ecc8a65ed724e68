package client

import (
	"context"

	"github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// ReservedTagKeysClient implements tfe.ReservedTagKeysClient.
type ReservedTagKeysClient struct {
	base resourceBase[tfe.ReservedTagKey]
}

// NewReservedTagKeysClient creates a new reserved tag keys client.
func NewReservedTagKeysClient(httpClient *http.Client, pagination *tfe.PaginationOptions) *ReservedTagKeysClient {
	return &ReservedTagKeysClient{
		base: newResourceBase(httpClient, tfe.ReservedTagKeyMapping, "reserved tag key", pagination),
	}
}

// List implements tfe.ReservedTagKeysClient.List.
func (c *ReservedTagKeysClient) List(ctx context.Context, organization string, opts *tfe.ListOptions) (*tfe.Iterator[tfe.ReservedTagKey], error) {
	err := tfe.ValidateIdentifier(organization, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	err = validateList("reserved tag key", opts, nil)
	if err != nil {
		return nil, err
	}

	return c.base.list(ctx, resourcePath("organizations", organization, "reserved-tag-keys"), opts), nil
}

// Create implements tfe.ReservedTagKeysClient.Create.
func (c *ReservedTagKeysClient) Create(ctx context.Context, organization string, opts *tfe.ReservedTagKeyCreateOptions) (*tfe.ReservedTagKey, error) {
	err := tfe.ValidateIdentifier(organization, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document()
	if err != nil {
		return nil, err
	}

	return c.base.create(ctx, resourcePath("organizations", organization, "reserved-tag-keys"), doc)
}

// Update implements tfe.ReservedTagKeysClient.Update.
func (c *ReservedTagKeysClient) Update(ctx context.Context, reservedTagKeyID string, opts *tfe.ReservedTagKeyUpdateOptions) (*tfe.ReservedTagKey, error) {
	err := tfe.ValidateIdentifier(reservedTagKeyID, tfe.KindReservedTagKey)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document(reservedTagKeyID)
	if err != nil {
		return nil, err
	}

	return c.base.update(ctx, resourcePath("reserved-tag-keys", reservedTagKeyID), doc)
}

// Delete implements tfe.ReservedTagKeysClient.Delete.
func (c *ReservedTagKeysClient) Delete(ctx context.Context, reservedTagKeyID string) error {
	err := tfe.ValidateIdentifier(reservedTagKeyID, tfe.KindReservedTagKey)
	if err != nil {
		return err
	}

	return c.base.delete(ctx, resourcePath("reserved-tag-keys", reservedTagKeyID))
}
