package client

import (
	"context"

	"github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// VariablesClient implements tfe.VariablesClient. Sensitive values come back
// as tfe.Redacted.
type VariablesClient struct {
	base resourceBase[tfe.Variable]
}

// NewVariablesClient creates a new variables client.
func NewVariablesClient(httpClient *http.Client, pagination *tfe.PaginationOptions) *VariablesClient {
	return &VariablesClient{
		base: newResourceBase(httpClient, tfe.VariableMapping, "variable", pagination),
	}
}

// List implements tfe.VariablesClient.List.
func (c *VariablesClient) List(ctx context.Context, workspaceID string, opts *tfe.ListOptions) (*tfe.Iterator[tfe.Variable], error) {
	err := tfe.ValidateIdentifier(workspaceID, tfe.KindWorkspace)
	if err != nil {
		return nil, err
	}

	err = validateList("variable", opts, nil)
	if err != nil {
		return nil, err
	}

	return c.base.list(ctx, resourcePath("workspaces", workspaceID, "vars"), opts), nil
}

// Read implements tfe.VariablesClient.Read.
func (c *VariablesClient) Read(ctx context.Context, workspaceID, variableID string) (*tfe.Variable, error) {
	path, err := variablePath(workspaceID, variableID)
	if err != nil {
		return nil, err
	}

	return c.base.read(ctx, path, nil)
}

// Create implements tfe.VariablesClient.Create.
func (c *VariablesClient) Create(ctx context.Context, workspaceID string, opts *tfe.VariableCreateOptions) (*tfe.Variable, error) {
	err := tfe.ValidateIdentifier(workspaceID, tfe.KindWorkspace)
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

	return c.base.create(ctx, resourcePath("workspaces", workspaceID, "vars"), doc)
}

// Update implements tfe.VariablesClient.Update.
func (c *VariablesClient) Update(ctx context.Context, workspaceID, variableID string, opts *tfe.VariableUpdateOptions) (*tfe.Variable, error) {
	path, err := variablePath(workspaceID, variableID)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document(variableID)
	if err != nil {
		return nil, err
	}

	return c.base.update(ctx, path, doc)
}

// Delete implements tfe.VariablesClient.Delete.
func (c *VariablesClient) Delete(ctx context.Context, workspaceID, variableID string) error {
	path, err := variablePath(workspaceID, variableID)
	if err != nil {
		return err
	}

	return c.base.delete(ctx, path)
}

func variablePath(workspaceID, variableID string) (string, error) {
	err := tfe.ValidateIdentifier(workspaceID, tfe.KindWorkspace)
	if err != nil {
		return "", err
	}

	err = tfe.ValidateIdentifier(variableID, tfe.KindVariable)
	if err != nil {
		return "", err
	}

	return resourcePath("workspaces", workspaceID, "vars", variableID), nil
}
