package client

import (
	"context"

	"github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// ProjectsClient implements tfe.ProjectsClient.
type ProjectsClient struct {
	base resourceBase[tfe.Project]
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client, pagination *tfe.PaginationOptions) *ProjectsClient {
	return &ProjectsClient{
		base: newResourceBase(httpClient, tfe.ProjectMapping, "project", pagination),
	}
}

// List implements tfe.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context, organization string, opts *tfe.ListOptions) (*tfe.Iterator[tfe.Project], error) {
	err := tfe.ValidateIdentifier(organization, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	err = validateList("project", opts, nil)
	if err != nil {
		return nil, err
	}

	return c.base.list(ctx, resourcePath("organizations", organization, "projects"), opts), nil
}

// Read implements tfe.ProjectsClient.Read.
func (c *ProjectsClient) Read(ctx context.Context, projectID string) (*tfe.Project, error) {
	err := tfe.ValidateIdentifier(projectID, tfe.KindProject)
	if err != nil {
		return nil, err
	}

	return c.base.read(ctx, resourcePath("projects", projectID), nil)
}

// Create implements tfe.ProjectsClient.Create.
func (c *ProjectsClient) Create(ctx context.Context, organization string, opts *tfe.ProjectCreateOptions) (*tfe.Project, error) {
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

	return c.base.create(ctx, resourcePath("organizations", organization, "projects"), doc)
}

// Update implements tfe.ProjectsClient.Update.
func (c *ProjectsClient) Update(ctx context.Context, projectID string, opts *tfe.ProjectUpdateOptions) (*tfe.Project, error) {
	err := tfe.ValidateIdentifier(projectID, tfe.KindProject)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document(projectID)
	if err != nil {
		return nil, err
	}

	return c.base.update(ctx, resourcePath("projects", projectID), doc)
}

// Delete implements tfe.ProjectsClient.Delete.
func (c *ProjectsClient) Delete(ctx context.Context, projectID string) error {
	err := tfe.ValidateIdentifier(projectID, tfe.KindProject)
	if err != nil {
		return err
	}

	return c.base.delete(ctx, resourcePath("projects", projectID))
}
