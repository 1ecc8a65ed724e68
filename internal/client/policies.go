package client

import (
	"context"
	"fmt"
	"net/http"
	"reflect"

	"github.com/fivetwenty-io/tfe-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// PoliciesClient implements tfe.PoliciesClient.
type PoliciesClient struct {
	base resourceBase[tfe.Policy]
}

// NewPoliciesClient creates a new policies client.
func NewPoliciesClient(httpClient *internalhttp.Client, pagination *tfe.PaginationOptions) *PoliciesClient {
	return &PoliciesClient{
		base: newResourceBase(httpClient, tfe.PolicyMapping, "policy", pagination),
	}
}

// List implements tfe.PoliciesClient.List.
func (c *PoliciesClient) List(ctx context.Context, organization string, opts *tfe.ListOptions) (*tfe.Iterator[tfe.Policy], error) {
	err := tfe.ValidateIdentifier(organization, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	err = validateList("policy", opts, nil)
	if err != nil {
		return nil, err
	}

	return c.base.list(ctx, resourcePath("organizations", organization, "policies"), opts), nil
}

// Read implements tfe.PoliciesClient.Read.
func (c *PoliciesClient) Read(ctx context.Context, policyID string) (*tfe.Policy, error) {
	err := tfe.ValidateIdentifier(policyID, tfe.KindPolicy)
	if err != nil {
		return nil, err
	}

	return c.base.read(ctx, resourcePath("policies", policyID), nil)
}

// Create implements tfe.PoliciesClient.Create.
func (c *PoliciesClient) Create(ctx context.Context, organization string, opts tfe.PolicyCreateOptions) (*tfe.Policy, error) {
	err := tfe.ValidateIdentifier(organization, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	if opts == nil || reflect.ValueOf(opts).IsNil() {
		return nil, &tfe.ValidationError{Resource: "policy", Err: tfe.ErrMissingOptions}
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document()
	if err != nil {
		return nil, err
	}

	return c.base.create(ctx, resourcePath("organizations", organization, "policies"), doc)
}

// Update implements tfe.PoliciesClient.Update.
func (c *PoliciesClient) Update(ctx context.Context, policyID string, opts *tfe.PolicyUpdateOptions) (*tfe.Policy, error) {
	err := tfe.ValidateIdentifier(policyID, tfe.KindPolicy)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document(policyID)
	if err != nil {
		return nil, err
	}

	return c.base.update(ctx, resourcePath("policies", policyID), doc)
}

// Delete implements tfe.PoliciesClient.Delete.
func (c *PoliciesClient) Delete(ctx context.Context, policyID string) error {
	err := tfe.ValidateIdentifier(policyID, tfe.KindPolicy)
	if err != nil {
		return err
	}

	return c.base.delete(ctx, resourcePath("policies", policyID))
}

// Upload implements tfe.PoliciesClient.Upload.
func (c *PoliciesClient) Upload(ctx context.Context, policyID string, content []byte) error {
	err := tfe.ValidateIdentifier(policyID, tfe.KindPolicy)
	if err != nil {
		return err
	}

	if content == nil {
		content = []byte{}
	}

	_, err = c.base.httpClient.Do(ctx, &internalhttp.Request{
		Method:      http.MethodPut,
		Path:        resourcePath("policies", policyID, "upload"),
		RawBody:     content,
		ContentType: constants.OctetStream,
	})
	if err != nil {
		return fmt.Errorf("uploading policy: %w", err)
	}

	return nil
}

// Download implements tfe.PoliciesClient.Download.
func (c *PoliciesClient) Download(ctx context.Context, policyID string) ([]byte, error) {
	err := tfe.ValidateIdentifier(policyID, tfe.KindPolicy)
	if err != nil {
		return nil, err
	}

	resp, err := c.base.httpClient.Get(ctx, resourcePath("policies", policyID, "download"), nil)
	if err != nil {
		return nil, fmt.Errorf("downloading policy: %w", err)
	}

	return resp.Body, nil
}
