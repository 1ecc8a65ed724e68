package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// WorkspacesClient implements tfe.WorkspacesClient.
type WorkspacesClient struct {
	base resourceBase[tfe.Workspace]
}

// NewWorkspacesClient creates a new workspaces client.
func NewWorkspacesClient(httpClient *internalhttp.Client, pagination *tfe.PaginationOptions) *WorkspacesClient {
	return &WorkspacesClient{
		base: newResourceBase(httpClient, tfe.WorkspaceMapping, "workspace", pagination),
	}
}

// List implements tfe.WorkspacesClient.List.
func (c *WorkspacesClient) List(ctx context.Context, organization string, opts *tfe.ListOptions) (*tfe.Iterator[tfe.Workspace], error) {
	err := tfe.ValidateIdentifier(organization, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	err = validateList("workspace", opts, tfe.WorkspaceIncludes)
	if err != nil {
		return nil, err
	}

	return c.base.list(ctx, resourcePath("organizations", organization, "workspaces"), opts), nil
}

// Read implements tfe.WorkspacesClient.Read.
func (c *WorkspacesClient) Read(ctx context.Context, organization, name string) (*tfe.Workspace, error) {
	path, err := workspaceNamePath(organization, name)
	if err != nil {
		return nil, err
	}

	return c.base.read(ctx, path, nil)
}

// ReadByID implements tfe.WorkspacesClient.ReadByID.
func (c *WorkspacesClient) ReadByID(ctx context.Context, workspaceID string) (*tfe.Workspace, error) {
	err := tfe.ValidateIdentifier(workspaceID, tfe.KindWorkspace)
	if err != nil {
		return nil, err
	}

	return c.base.read(ctx, resourcePath("workspaces", workspaceID), nil)
}

// Create implements tfe.WorkspacesClient.Create.
func (c *WorkspacesClient) Create(ctx context.Context, organization string, opts *tfe.WorkspaceCreateOptions) (*tfe.Workspace, error) {
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

	return c.base.create(ctx, resourcePath("organizations", organization, "workspaces"), doc)
}

// Update implements tfe.WorkspacesClient.Update.
func (c *WorkspacesClient) Update(ctx context.Context, organization, name string, opts *tfe.WorkspaceUpdateOptions) (*tfe.Workspace, error) {
	path, err := workspaceNamePath(organization, name)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document("")
	if err != nil {
		return nil, err
	}

	return c.base.update(ctx, path, doc)
}

// UpdateByID implements tfe.WorkspacesClient.UpdateByID.
func (c *WorkspacesClient) UpdateByID(ctx context.Context, workspaceID string, opts *tfe.WorkspaceUpdateOptions) (*tfe.Workspace, error) {
	err := tfe.ValidateIdentifier(workspaceID, tfe.KindWorkspace)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document(workspaceID)
	if err != nil {
		return nil, err
	}

	return c.base.update(ctx, resourcePath("workspaces", workspaceID), doc)
}

// Delete implements tfe.WorkspacesClient.Delete.
func (c *WorkspacesClient) Delete(ctx context.Context, organization, name string) error {
	path, err := workspaceNamePath(organization, name)
	if err != nil {
		return err
	}

	return c.base.delete(ctx, path)
}

// DeleteByID implements tfe.WorkspacesClient.DeleteByID.
func (c *WorkspacesClient) DeleteByID(ctx context.Context, workspaceID string) error {
	err := tfe.ValidateIdentifier(workspaceID, tfe.KindWorkspace)
	if err != nil {
		return err
	}

	return c.base.delete(ctx, resourcePath("workspaces", workspaceID))
}

// Lock implements tfe.WorkspacesClient.Lock.
func (c *WorkspacesClient) Lock(ctx context.Context, workspaceID string, opts *tfe.WorkspaceLockOptions) (*tfe.Workspace, error) {
	err := tfe.ValidateIdentifier(workspaceID, tfe.KindWorkspace)
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &tfe.WorkspaceLockOptions{}
	}

	return c.action(ctx, workspaceID, "lock", opts)
}

// Unlock implements tfe.WorkspacesClient.Unlock.
func (c *WorkspacesClient) Unlock(ctx context.Context, workspaceID string) (*tfe.Workspace, error) {
	err := tfe.ValidateIdentifier(workspaceID, tfe.KindWorkspace)
	if err != nil {
		return nil, err
	}

	return c.action(ctx, workspaceID, "unlock", nil)
}

func (c *WorkspacesClient) action(ctx context.Context, workspaceID, action string, body interface{}) (*tfe.Workspace, error) {
	resp, err := c.base.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   resourcePath("workspaces", workspaceID, "actions", action),
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("%sing workspace: %w", action, err)
	}

	return c.base.decode(resp.Body)
}

func workspaceNamePath(organization, name string) (string, error) {
	err := tfe.ValidateIdentifier(organization, tfe.KindOrganization)
	if err != nil {
		return "", err
	}

	err = tfe.ValidateIdentifier(name, tfe.KindWorkspaceName)
	if err != nil {
		return "", err
	}

	return resourcePath("organizations", organization, "workspaces", name), nil
}
