package client

import (
	"context"

	"github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// OrganizationsClient implements tfe.OrganizationsClient.
type OrganizationsClient struct {
	base resourceBase[tfe.Organization]
}

// NewOrganizationsClient creates a new organizations client.
func NewOrganizationsClient(httpClient *http.Client, pagination *tfe.PaginationOptions) *OrganizationsClient {
	return &OrganizationsClient{
		base: newResourceBase(httpClient, tfe.OrganizationMapping, "organization", pagination),
	}
}

// List implements tfe.OrganizationsClient.List.
func (c *OrganizationsClient) List(ctx context.Context, opts *tfe.ListOptions) (*tfe.Iterator[tfe.Organization], error) {
	err := validateList("organization", opts, nil)
	if err != nil {
		return nil, err
	}

	return c.base.list(ctx, "organizations", opts), nil
}

// Read implements tfe.OrganizationsClient.Read.
func (c *OrganizationsClient) Read(ctx context.Context, name string) (*tfe.Organization, error) {
	err := tfe.ValidateIdentifier(name, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	return c.base.read(ctx, resourcePath("organizations", name), nil)
}

// Create implements tfe.OrganizationsClient.Create.
func (c *OrganizationsClient) Create(ctx context.Context, opts *tfe.OrganizationCreateOptions) (*tfe.Organization, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document()
	if err != nil {
		return nil, err
	}

	return c.base.create(ctx, "organizations", doc)
}

// Update implements tfe.OrganizationsClient.Update.
func (c *OrganizationsClient) Update(ctx context.Context, name string, opts *tfe.OrganizationUpdateOptions) (*tfe.Organization, error) {
	err := tfe.ValidateIdentifier(name, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document(name)
	if err != nil {
		return nil, err
	}

	return c.base.update(ctx, resourcePath("organizations", name), doc)
}

// Delete implements tfe.OrganizationsClient.Delete.
func (c *OrganizationsClient) Delete(ctx context.Context, name string) error {
	err := tfe.ValidateIdentifier(name, tfe.KindOrganization)
	if err != nil {
		return err
	}

	return c.base.delete(ctx, resourcePath("organizations", name))
}
